package usecase

import (
	"time"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/domain"
	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
	"github.com/overdrive-app/overdrive-api/internal/domain/repository"
)

// UserUseCase casos de uso sobre el directorio de usuarios. La creación
// perezosa NO vive aquí: eso es del resolver de sesión.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User", id)
	}
	return dto.ToUserResponse(user), nil
}

// Search lista todos los usuarios del sistema (solo uber-admin).
func (uc *UserUseCase) Search(limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.users.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toUserList(list, limit, offset), nil
}

// ListByAccount lista los usuarios de una cuenta.
func (uc *UserUseCase) ListByAccount(accountID string, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.users.ListByAccount(accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toUserList(list, limit, offset), nil
}

// Update aplica un parche parcial sobre los campos actualizables
// (preferences, name, role, avatar, status). Solo persiste si algo cambió.
func (uc *UserUseCase) Update(id string, in dto.UserUpdateRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User", id)
	}

	dirty := false
	if in.Preferences != nil {
		user.Preferences = in.Preferences
		dirty = true
	}
	if in.Name != nil && *in.Name != "" {
		user.Name = *in.Name
		dirty = true
	}
	if in.Role != nil && *in.Role != "" {
		role := entity.Role(*in.Role)
		if !role.Valid() {
			return nil, domain.NewValidationError("invalid role")
		}
		user.Role = role
		dirty = true
	}
	if in.Avatar != nil && *in.Avatar != "" {
		user.Avatar = *in.Avatar
		dirty = true
	}
	if in.Status != nil && *in.Status != "" {
		status := entity.UserStatus(*in.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("invalid status")
		}
		user.Status = status
		dirty = true
	}

	if dirty {
		user.UpdatedAt = time.Now()
		if err := uc.users.Update(user); err != nil {
			return nil, err
		}
	}
	return dto.ToUserResponse(user), nil
}

// Delete es un borrado blando: transiciona el estado a deleted. La fila
// no se elimina por esta ruta.
func (uc *UserUseCase) Delete(id string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("User", id)
	}
	user.Status = entity.StatusDeleted
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

func toUserList(list []*entity.User, limit, offset int) *dto.UserListResponse {
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Users: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}
