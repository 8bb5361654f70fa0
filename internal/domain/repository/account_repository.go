package repository

import "github.com/overdrive-app/overdrive-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para Account (DIP).
// La implementación vive en infrastructure.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	Update(account *entity.Account) error
	List(limit, offset int) ([]*entity.Account, error)
	Delete(id string) error
}
