package repository

import "github.com/overdrive-app/overdrive-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos devuelven (nil, nil) cuando no hay fila; la unicidad del
// email la garantiza la DB, no el llamador.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByEmailWithAccount carga además la Account asociada (join).
	// La cuenta es nil si el usuario no pertenece a ninguna.
	GetByEmailWithAccount(email string) (*entity.User, *entity.Account, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	ListByAccount(accountID string, limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
