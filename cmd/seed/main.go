// Command seed populates the database with a demo admin user and a set of
// sample leads, notes, and follow-ups. It is idempotent for the admin user
// and skips lead seeding when leads already exist.
package main

import (
	"context"
	"time"

	"leadtracker_backend/internal/auth/password"
	"leadtracker_backend/platform/config"
	"leadtracker_backend/platform/db"
	"leadtracker_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedLead struct {
	name            string
	email           string
	phone           *string
	source          string
	status          string
	lastContactedAt *time.Time

	notes     []string
	followUps []seedFollowUp
}

type seedFollowUp struct {
	dueIn     time.Duration
	note      string
	completed bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	log := logger.New(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.RunMigrations(ctx, cfg, "migrations"); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	if err := seedAdmin(ctx, pool, cfg); err != nil {
		log.Error("failed to seed admin user", "error", err)
		panic("failed to seed admin user: " + err.Error())
	}
	log.Info("admin user ready", "email", cfg.AdminEmail)

	seeded, err := seedLeads(ctx, pool)
	if err != nil {
		log.Error("failed to seed leads", "error", err)
		panic("failed to seed leads: " + err.Error())
	}
	if seeded == 0 {
		log.Info("leads already present, skipping lead seed")
	} else {
		log.Info("sample data created", "leads", seeded)
	}
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig) error {
	hash, err := password.Hash(cfg.GetAdminPassword())
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`, cfg.GetAdminEmail(), hash, "Admin")
	return err
}

func seedLeads(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var existing int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&existing); err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	now := time.Now()
	for _, lead := range sampleLeads(now) {
		var leadID uuid.UUID
		err := pool.QueryRow(ctx, `
			INSERT INTO leads (name, email, phone, source, status, last_contacted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, lead.name, lead.email, lead.phone, lead.source, lead.status, lead.lastContactedAt).Scan(&leadID)
		if err != nil {
			return 0, err
		}

		for _, body := range lead.notes {
			if _, err := pool.Exec(ctx, `
				INSERT INTO notes (lead_id, body) VALUES ($1, $2)
			`, leadID, body); err != nil {
				return 0, err
			}
		}

		for _, followUp := range lead.followUps {
			var completedAt *time.Time
			if followUp.completed {
				done := now.Add(-24 * time.Hour)
				completedAt = &done
			}
			if _, err := pool.Exec(ctx, `
				INSERT INTO follow_ups (lead_id, due_at, note, completed_at)
				VALUES ($1, $2, $3, $4)
			`, leadID, now.Add(followUp.dueIn), followUp.note, completedAt); err != nil {
				return 0, err
			}
		}
	}

	return len(sampleLeads(now)), nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func sampleLeads(now time.Time) []seedLead {
	day := 24 * time.Hour

	return []seedLead{
		{
			name: "Sarah Mitchell", email: "sarah.mitchell@example.com",
			phone: strPtr("+12125550143"), source: "Website Contact Form", status: "NEW",
			notes:     []string{"Interested in the premium plan, asked for a pricing sheet."},
			followUps: []seedFollowUp{{dueIn: -day, note: "Send pricing sheet"}},
		},
		{
			name: "James Okafor", email: "james.okafor@example.com",
			phone: strPtr("+12125550178"), source: "Referral", status: "CONTACTED",
			lastContactedAt: timePtr(now.Add(-3 * day)),
			notes:           []string{"Referred by an existing customer.", "Prefers email over phone."},
			followUps:       []seedFollowUp{{dueIn: 4 * time.Hour, note: "Check if the proposal landed"}},
		},
		{
			name: "Elena Petrova", email: "elena.petrova@example.com",
			source: "LinkedIn", status: "CONTACTED",
			lastContactedAt: timePtr(now.Add(-7 * day)),
			notes:           []string{"Evaluating two competitors, decision expected this quarter."},
			followUps: []seedFollowUp{
				{dueIn: -3 * day, note: "First outreach call", completed: true},
				{dueIn: 2 * day, note: "Schedule the demo"},
			},
		},
		{
			name: "Marcus Lee", email: "marcus.lee@example.com",
			phone: strPtr("+14155550122"), source: "Website Contact Form", status: "CONVERTED",
			lastContactedAt: timePtr(now.Add(-14 * day)),
			notes:           []string{"Signed the annual contract.", "Wants onboarding in early September."},
		},
		{
			name: "Priya Nair", email: "priya.nair@example.com",
			source: "Trade Show", status: "NEW",
			notes:     []string{"Collected at the spring expo booth."},
			followUps: []seedFollowUp{{dueIn: day, note: "Intro call"}},
		},
		{
			name: "Tom Baker", email: "tom.baker@example.com",
			phone: strPtr("+13125550167"), source: "Cold Outreach", status: "NEW",
		},
		{
			name: "Aisha Rahman", email: "aisha.rahman@example.com",
			source: "Website Contact Form", status: "CONTACTED",
			lastContactedAt: timePtr(now.Add(-1 * day)),
			followUps:       []seedFollowUp{{dueIn: 30 * time.Minute, note: "Follow up on trial questions"}},
		},
		{
			name: "Daniel Costa", email: "daniel.costa@example.com",
			phone: strPtr("+16175550190"), source: "Referral", status: "CONVERTED",
			lastContactedAt: timePtr(now.Add(-30 * day)),
			notes:           []string{"Smooth close, good candidate for a case study."},
		},
	}
}
