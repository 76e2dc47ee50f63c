package seed

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Simplici0/calhas/internal/auth"
)

const (
	defaultMaterialName = "Alumínio"
	defaultServiceName  = "Calha"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

type section struct {
	page, key, contentType, value string
}

// defaultSections is the starter text of the public pages.
var defaultSections = []section{
	{"inicio", "hero_title", "text", "Calhas e rufos sob medida"},
	{"inicio", "hero_subtitle", "text", "Fabricação e instalação em alumínio e galvalume"},
	{"inicio", "cta_title", "text", "Peça seu orçamento"},
	{"sobre", "info_title", "text", "Quem somos"},
	{"servicos", "aluminio_title", "text", "Alumínio"},
	{"contato", "phone", "text", ""},
	{"contato", "email", "text", ""},
	{"contato", "address", "text", ""},
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	steps := []func(context.Context, *sql.Tx, *Stats) error{
		func(ctx context.Context, tx *sql.Tx, s *Stats) error {
			return seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, s)
		},
		ensureMaterial,
		ensureService,
		ensurePageContent,
	}
	for _, step := range steps {
		if err := step(ctx, tx, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, hash); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

// ensureMaterial adds the starter material when the catalog has none.
func ensureMaterial(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM materials LIMIT 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check material existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO materials (name, density, cost_per_kg, active)
		VALUES (?, ?, ?, ?)
	`, defaultMaterialName, 2.7, 30.0, true); err != nil {
		return fmt.Errorf("insert default material: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureService(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM service_types LIMIT 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check service type existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO service_types (name, description, difficulty_factor_normal, difficulty_factor_medium, difficulty_factor_hard, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, defaultServiceName, "Fabricação e instalação de calhas", 2.1, 2.7, 3.5, true); err != nil {
		return fmt.Errorf("insert default service type: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensurePageContent(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	for i, s := range defaultSections {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO page_content (page_name, section_key, content_type, content_value, order_index)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(page_name, section_key) DO NOTHING
		`, s.page, s.key, s.contentType, s.value, i)
		if err != nil {
			return fmt.Errorf("insert page content %s/%s: %w", s.page, s.key, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("page content rows affected: %w", err)
		}
		stats.Inserts += int(n)
	}
	return nil
}
