package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus estado de una cuenta.
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountInactive  AccountStatus = "inactive"
)

// Unidades de precio para la tarifa maestra de la cuenta.
type PricingUnit string

const (
	PricingMonthly PricingUnit = "monthly"
	PricingYearly  PricingUnit = "yearly"
	PricingPerSeat PricingUnit = "per-seat"
)

// Valid indica si la unidad de precio es una de las conocidas.
func (p PricingUnit) Valid() bool {
	switch p {
	case PricingMonthly, PricingYearly, PricingPerSeat:
		return true
	}
	return false
}

// Account representa una organización/tenant. Posee cero o más usuarios
// (users.account_id). No se crea implícitamente: solo via CRUD directo.
type Account struct {
	ID              string
	Name            string
	Avatar          string
	Status          AccountStatus
	MasterPriceUnit PricingUnit
	MasterPrice     decimal.Decimal // NUMERIC en la DB
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
