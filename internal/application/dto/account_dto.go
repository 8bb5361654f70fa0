package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
)

// CreateAccountRequest entrada para crear una cuenta.
type CreateAccountRequest struct {
	Name            string           `json:"name"`
	Avatar          string           `json:"avatar"`
	MasterPriceUnit string           `json:"master_price_unit"`
	MasterPrice     *decimal.Decimal `json:"master_price"`
}

// AccountUpdateRequest parche parcial de una cuenta. Un campo nil se deja
// como está.
type AccountUpdateRequest struct {
	Name            *string          `json:"name"`
	Avatar          *string          `json:"avatar"`
	Status          *string          `json:"status"`
	MasterPriceUnit *string          `json:"master_price_unit"`
	MasterPrice     *decimal.Decimal `json:"master_price"`
}

// AccountResponse salida de una cuenta.
type AccountResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Avatar          string          `json:"avatar,omitempty"`
	Status          string          `json:"status"`
	MasterPriceUnit string          `json:"master_price_unit,omitempty"`
	MasterPrice     decimal.Decimal `json:"master_price"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// AccountListResponse listado de cuentas.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Page     PageResponse      `json:"page"`
}

// ToAccountResponse convierte la entidad a DTO de salida.
func ToAccountResponse(a *entity.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:              a.ID,
		Name:            a.Name,
		Avatar:          a.Avatar,
		Status:          string(a.Status),
		MasterPriceUnit: string(a.MasterPriceUnit),
		MasterPrice:     a.MasterPrice,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
