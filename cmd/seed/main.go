package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"kinetic-flow-backend/internal/config"
	pg "kinetic-flow-backend/internal/infra/db/postgres"
)

// Seeds a handful of coupon codes for manual testing of the redemption flow.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	expiry := time.Now().AddDate(0, 3, 0)
	seed := []struct {
		Code    string
		Plan    string
		MaxUses int
		Expires *time.Time
	}{
		{"LAUNCH50", "elite", 50, &expiry},
		{"FOUNDER", "ai_ultimate", 10, nil},
		{"TEAMTRIAL", "elite", 100, &expiry},
	}

	const q = `
		INSERT INTO coupons (id, code, plan_id, is_active, uses, max_uses, expires_at)
		VALUES ($1, $2, $3, TRUE, 0, $4, $5)
		ON CONFLICT (code) DO NOTHING`

	for _, s := range seed {
		tag, err := pool.Exec(ctx, q, ulid.Make().String(), s.Code, s.Plan, s.MaxUses, s.Expires)
		if err != nil {
			log.Fatalf("seed coupon %q: %v", s.Code, err)
		}
		if tag.RowsAffected() == 0 {
			fmt.Printf("coupon %s already present. No changes.\n", s.Code)
			continue
		}
		fmt.Printf("seeded: %s (plan=%s, max_uses=%d)\n", s.Code, s.Plan, s.MaxUses)
	}

	fmt.Println("Seeding complete.")
}
