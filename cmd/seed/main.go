// seed crea los datos mínimos para desarrollo local: una cuenta demo y un
// usuario uber-admin asociado. Es idempotente: si el usuario ya existe no
// hace nada.
//
// Uso: go run ./cmd/seed <email-del-uber-admin>
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
	"github.com/overdrive-app/overdrive-api/internal/infrastructure/postgres"
	"github.com/overdrive-app/overdrive-api/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed <email-del-uber-admin>")
		os.Exit(1)
	}
	email := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	users := postgres.NewUserRepository(pool)
	accounts := postgres.NewAccountRepository(pool)

	existing, err := users.GetByEmail(email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Consultar usuario: %v\n", err)
		os.Exit(1)
	}
	if existing != nil {
		fmt.Printf("El usuario %s ya existe (rol %s), nada que hacer\n", email, existing.Role)
		return
	}

	now := time.Now().UTC()
	account := &entity.Account{
		ID:              uuid.New().String(),
		Name:            "Demo",
		Status:          entity.AccountActive,
		MasterPriceUnit: entity.PricingMonthly,
		MasterPrice:     decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := accounts.Create(account); err != nil {
		fmt.Fprintf(os.Stderr, "Crear cuenta demo: %v\n", err)
		os.Exit(1)
	}

	user := &entity.User{
		ID:          uuid.New().String(),
		AccountID:   &account.ID,
		Email:       email,
		Preferences: entity.Preferences{},
		Role:        entity.RoleUberAdmin,
		Status:      entity.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := users.Create(user); err != nil {
		fmt.Fprintf(os.Stderr, "Crear usuario uber-admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Creada cuenta %s y usuario uber-admin %s\n", account.ID, email)
}
