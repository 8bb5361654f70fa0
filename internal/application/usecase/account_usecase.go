package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/domain"
	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
	"github.com/overdrive-app/overdrive-api/internal/domain/repository"
)

// AccountUseCase casos de uso CRUD para cuentas. El resolver de sesión
// nunca crea cuentas; solo existen via estas operaciones.
type AccountUseCase struct {
	accounts repository.AccountRepository
	users    repository.UserRepository
}

// NewAccountUseCase construye el caso de uso con los puertos de persistencia.
func NewAccountUseCase(accounts repository.AccountRepository, users repository.UserRepository) *AccountUseCase {
	return &AccountUseCase{accounts: accounts, users: users}
}

// Create crea una cuenta nueva en estado active.
func (uc *AccountUseCase) Create(in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	if in.Name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	unit := entity.PricingUnit(in.MasterPriceUnit)
	if in.MasterPriceUnit != "" && !unit.Valid() {
		return nil, domain.NewValidationError("invalid master_price_unit")
	}
	price := decimal.Zero
	if in.MasterPrice != nil {
		price = *in.MasterPrice
	}
	now := time.Now()
	account := &entity.Account{
		ID:              uuid.New().String(),
		Name:            in.Name,
		Avatar:          in.Avatar,
		Status:          entity.AccountActive,
		MasterPriceUnit: unit,
		MasterPrice:     price,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.accounts.Create(account); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// GetByID obtiene una cuenta por ID.
func (uc *AccountUseCase) GetByID(id string) (*dto.AccountResponse, error) {
	account, err := uc.accounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.NewNotFoundError("Account", id)
	}
	return dto.ToAccountResponse(account), nil
}

// List lista todas las cuentas con paginación.
func (uc *AccountUseCase) List(limit, offset int) (*dto.AccountListResponse, error) {
	list, err := uc.accounts.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *dto.ToAccountResponse(a))
	}
	return &dto.AccountListResponse{
		Accounts: items,
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica un parche parcial: solo los campos presentes se tocan y
// solo se persiste si algo cambió.
func (uc *AccountUseCase) Update(id string, in dto.AccountUpdateRequest) (*dto.AccountResponse, error) {
	account, err := uc.accounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.NewNotFoundError("Account", id)
	}

	dirty := false
	if in.Name != nil && *in.Name != "" {
		account.Name = *in.Name
		dirty = true
	}
	if in.Avatar != nil && *in.Avatar != "" {
		account.Avatar = *in.Avatar
		dirty = true
	}
	if in.Status != nil && *in.Status != "" {
		account.Status = entity.AccountStatus(*in.Status)
		dirty = true
	}
	if in.MasterPriceUnit != nil && *in.MasterPriceUnit != "" {
		unit := entity.PricingUnit(*in.MasterPriceUnit)
		if !unit.Valid() {
			return nil, domain.NewValidationError("invalid master_price_unit")
		}
		account.MasterPriceUnit = unit
		dirty = true
	}
	if in.MasterPrice != nil {
		account.MasterPrice = *in.MasterPrice
		dirty = true
	}

	if dirty {
		account.UpdatedAt = time.Now()
		if err := uc.accounts.Update(account); err != nil {
			return nil, err
		}
	}
	return dto.ToAccountResponse(account), nil
}

// Delete elimina una cuenta. Los usuarios quedan desvinculados por el
// ON DELETE SET NULL de la FK, no por código.
func (uc *AccountUseCase) Delete(id string) error {
	account, err := uc.accounts.GetByID(id)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.NewNotFoundError("Account", id)
	}
	return uc.accounts.Delete(id)
}

// LinkUser asocia un usuario a una cuenta (membresía persistida).
func (uc *AccountUseCase) LinkUser(accountID, userID string) (*dto.AccountResponse, error) {
	account, err := uc.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.NewNotFoundError("Account", accountID)
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User", userID)
	}

	user.AccountID = &account.ID
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	return dto.ToAccountResponse(account), nil
}

// UnlinkUser desvincula un usuario de una cuenta. Si el usuario no
// pertenecía a esa cuenta ya estamos en el estado deseado: no es error.
func (uc *AccountUseCase) UnlinkUser(accountID, userID string) error {
	account, err := uc.accounts.GetByID(accountID)
	if err != nil {
		return err
	}
	if account == nil {
		return domain.NewNotFoundError("Account", accountID)
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFoundError("User", userID)
	}

	if user.AccountID != nil && *user.AccountID == account.ID {
		user.AccountID = nil
		user.UpdatedAt = time.Now()
		return uc.users.Update(user)
	}
	return nil
}
