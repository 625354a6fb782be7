// Package database provides connection setup for PostgreSQL and Redis.
// This file seeds the administrator account and development sample data.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/docesmara/etiquetas/internal/config"
	"github.com/docesmara/etiquetas/internal/nutrition"
)

// bcryptCost matches the cost the original seed data was hashed with, so
// existing password hashes keep verifying.
const bcryptCost = 10

// Seed provisions the administrator account (when ADMIN_EMAIL/ADMIN_PASSWORD
// are configured) and, in development, inserts example labels into an empty
// etiquetas table. Users are only ever created here — there is no public
// registration endpoint.
//
// Seeding is idempotent: existing users and non-empty tables are left alone.
func Seed(ctx context.Context, db *sql.DB, cfg *config.Config) error {
	if err := seedAdmin(ctx, db, cfg.Admin); err != nil {
		return err
	}

	if cfg.IsDevelopment() {
		if err := seedEtiquetas(ctx, db); err != nil {
			return err
		}
	}

	return nil
}

// seedAdmin creates the administrator user if it does not already exist.
func seedAdmin(ctx context.Context, db *sql.DB, admin config.AdminConfig) error {
	if admin.Email == "" || admin.Password == "" {
		slog.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(admin.Email))

	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking admin existence: %w", err)
	}
	if exists {
		slog.Info("admin user already exists, skipping seed", slog.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO users (email, password, is_admin) VALUES ($1, $2, true)`,
		email, string(hash),
	)
	if err != nil {
		return fmt.Errorf("inserting admin user: %w", err)
	}

	slog.Info("admin user created", slog.String("email", email))
	return nil
}

// seedEtiqueta mirrors the example labels shipped with the original system.
type seedEtiqueta struct {
	nome              string
	descricao         string
	diasValidade      int
	valorEnergetico   float64
	carboidratos      float64
	acucares          float64
	proteinas         float64
	gordurasTotais    float64
	gordurasSaturadas float64
	sodio             float64
	fibras            float64
	adicionais        []map[string]any
}

// seedEtiquetas inserts the three example cakes when the table is empty.
// Manufacture date is today; expiry is derived the same way the form does.
func seedEtiquetas(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM etiquetas`).Scan(&count); err != nil {
		return fmt.Errorf("counting etiquetas: %w", err)
	}
	if count > 0 {
		slog.Info("etiquetas table already populated, skipping seed", slog.Int("count", count))
		return nil
	}

	exemplos := []seedEtiqueta{
		{
			nome:            "Bolo de Chocolate",
			descricao:       "Delicioso bolo de chocolate com recheio de brigadeiro e cobertura de ganache",
			diasValidade:    5,
			valorEnergetico: 320, carboidratos: 42, acucares: 28, proteinas: 5,
			gordurasTotais: 15, gordurasSaturadas: 8, sodio: 150, fibras: 1.8,
			adicionais: []map[string]any{{"nome": "Cálcio", "valor": 120.0, "unidade": "mg"}},
		},
		{
			nome:            "Bolo de Cenoura",
			descricao:       "Bolo de cenoura tradicional com cobertura de chocolate",
			diasValidade:    5,
			valorEnergetico: 280, carboidratos: 38, acucares: 24, proteinas: 4.5,
			gordurasTotais: 12, gordurasSaturadas: 5.5, sodio: 130, fibras: 2.2,
			adicionais: []map[string]any{{"nome": "Vitamina A", "valor": 320.0, "unidade": "µg"}},
		},
		{
			nome:            "Bolo de Morango",
			descricao:       "Bolo branco com recheio e cobertura de morangos frescos",
			diasValidade:    4,
			valorEnergetico: 260, carboidratos: 35, acucares: 20, proteinas: 4.2,
			gordurasTotais: 11, gordurasSaturadas: 5, sodio: 120, fibras: 1.5,
			adicionais: []map[string]any{{"nome": "Vitamina C", "valor": 28.0, "unidade": "mg"}},
		},
	}

	fabricacao := time.Now().Format("2006-01-02")

	for _, e := range exemplos {
		validade, err := nutrition.CalcularDataValidade(fabricacao, e.diasValidade)
		if err != nil {
			return fmt.Errorf("deriving expiry date: %w", err)
		}

		adicionais, err := json.Marshal(e.adicionais)
		if err != nil {
			return fmt.Errorf("marshaling additional nutrients: %w", err)
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO etiquetas
			     (nome, descricao, data_fabricacao, data_validade,
			      porcao, unidade_porcao, valor_energetico, unidade_energetico,
			      carboidratos, acucares, proteinas, gorduras_totais,
			      gorduras_saturadas, sodio, fibras, nutrientes_adicionais)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			e.nome, e.descricao, fabricacao, validade,
			100.0, "g", e.valorEnergetico, "kcal",
			e.carboidratos, e.acucares, e.proteinas, e.gordurasTotais,
			e.gordurasSaturadas, e.sodio, e.fibras, adicionais,
		)
		if err != nil {
			return fmt.Errorf("inserting example etiqueta %q: %w", e.nome, err)
		}
	}

	slog.Info("example etiquetas seeded", slog.Int("count", len(exemplos)))
	return nil
}
