package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kinetic-flow-backend/internal/domain/model"
)

type createVisionRequest struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	TimeHorizon string  `json:"time_horizon"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type visionResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	TimeHorizon string  `json:"time_horizon"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func toVisionResponse(v *model.Vision) visionResponse {
	return visionResponse{
		ID:          v.ID,
		Title:       v.Title,
		Category:    v.Category,
		TimeHorizon: v.TimeHorizon,
		Description: v.Description,
		ImageURL:    v.ImageURL,
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleCreateVision(w http.ResponseWriter, r *http.Request) {
	var req createVisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	v, err := s.visions.Create(r.Context(), userIDFrom(r.Context()), req.Title, req.Category, req.TimeHorizon, req.Description, req.ImageURL)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVisionResponse(v))
}

func (s *Server) handleListVisions(w http.ResponseWriter, r *http.Request) {
	visions, err := s.visions.List(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]visionResponse, 0, len(visions))
	for _, v := range visions {
		out = append(out, toVisionResponse(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteVision(w http.ResponseWriter, r *http.Request) {
	if err := s.visions.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createMilestoneRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

type milestoneResponse struct {
	ID          string     `json:"id"`
	VisionID    string     `json:"vision_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
}

func toMilestoneResponse(m *model.Milestone) milestoneResponse {
	return milestoneResponse{
		ID:          m.ID,
		VisionID:    m.VisionID,
		Title:       m.Title,
		Description: m.Description,
		Deadline:    m.Deadline,
		Status:      string(m.Status),
	}
}

func (s *Server) handleCreateMilestone(w http.ResponseWriter, r *http.Request) {
	var req createMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	m, err := s.milestones.Create(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), req.Title, req.Description, req.Deadline)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMilestoneResponse(m))
}

func (s *Server) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	milestones, err := s.milestones.ListByVision(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]milestoneResponse, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, toMilestoneResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteMilestone(w http.ResponseWriter, r *http.Request) {
	if err := s.milestones.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createTaskRequest struct {
	Title            string     `json:"title"`
	MilestoneID      *string    `json:"milestone_id"`
	Priority         string     `json:"priority"`
	EstimatedMinutes *int       `json:"estimated_minutes"`
	DueDate          *time.Time `json:"due_date"`
}

type taskResponse struct {
	ID               string     `json:"id"`
	MilestoneID      *string    `json:"milestone_id,omitempty"`
	Title            string     `json:"title"`
	Priority         string     `json:"priority"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	PlannedDate      *time.Time `json:"planned_date,omitempty"`
	IsDailyPriority  bool       `json:"is_daily_priority"`
	IsCompleted      bool       `json:"is_completed"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func toTaskResponse(t *model.Task) taskResponse {
	return taskResponse{
		ID:               t.ID,
		MilestoneID:      t.MilestoneID,
		Title:            t.Title,
		Priority:         string(t.Priority),
		EstimatedMinutes: t.EstimatedMinutes,
		DueDate:          t.DueDate,
		PlannedDate:      t.PlannedDate,
		IsDailyPriority:  t.IsDailyPriority,
		IsCompleted:      t.IsCompleted,
		CompletedAt:      t.CompletedAt,
	}
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	t, err := s.tasks.Create(r.Context(), userIDFrom(r.Context()), req.Title, req.MilestoneID, model.TaskPriority(req.Priority), req.EstimatedMinutes, req.DueDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskResponse(t))
}

type toggleTaskRequest struct {
	Completed bool `json:"completed"`
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	var req toggleTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := s.tasks.ToggleCompletion(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), req.Completed); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type taskPriorityRequest struct {
	Date       string `json:"date"`
	IsPriority bool   `json:"is_priority"`
}

func (s *Server) handleTaskPriority(w http.ResponseWriter, r *http.Request) {
	var req taskPriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}
	if err := s.tasks.SetDailyPriority(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id"), date, req.IsPriority); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.Context(), userIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type plannerResponse struct {
	Date           string         `json:"date"`
	Tasks          []taskResponse `json:"tasks"`
	ReflectionNote string         `json:"reflection_note"`
}

func (s *Server) handlePlannerDay(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}

	tasks, log, err := s.tasks.PlannerDay(r.Context(), userIDFrom(r.Context()), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := plannerResponse{Date: date.Format("2006-01-02"), Tasks: make([]taskResponse, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(t))
	}
	if log != nil {
		resp.ReflectionNote = log.ReflectionNote
	}
	writeJSON(w, http.StatusOK, resp)
}

type saveReflectionRequest struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

func (s *Server) handleSaveReflection(w http.ResponseWriter, r *http.Request) {
	var req saveReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date")
		return
	}
	if err := s.tasks.SaveReflection(r.Context(), userIDFrom(r.Context()), date, req.Note); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.progress.Snapshot(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type coachChatRequest struct {
	Message string `json:"message"`
}

type coachChatResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleCoachChat(w http.ResponseWriter, r *http.Request) {
	var req coachChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	reply, err := s.coach.Chat(r.Context(), userIDFrom(r.Context()), req.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coachChatResponse{Reply: reply})
}
