package dto

import (
	"time"

	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
)

// UserUpdateRequest parche parcial de un usuario. Solo estos campos son
// actualizables por la API; un campo nil se deja como está.
type UserUpdateRequest struct {
	Preferences entity.Preferences `json:"preferences"`
	Name        *string            `json:"name"`
	Role        *string            `json:"role"`
	Avatar      *string            `json:"avatar"`
	Status      *string            `json:"status"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID          string             `json:"id"`
	AccountID   *string            `json:"account_id"`
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Avatar      string             `json:"avatar,omitempty"`
	Preferences entity.Preferences `json:"preferences,omitempty"`
	Role        string             `json:"role"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// UserListResponse listado de usuarios.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Page  PageResponse   `json:"page"`
}

// SessionResponse salida de /users/me: el usuario resuelto más la cuenta
// efectiva de la sesión (que puede ser un override de uber-admin).
type SessionResponse struct {
	User    UserResponse     `json:"user"`
	Account *AccountResponse `json:"account"`
}

// ToUserResponse convierte la entidad a DTO de salida.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		AccountID:   u.AccountID,
		Email:       u.Email,
		Name:        u.Name,
		Avatar:      u.Avatar,
		Preferences: u.Preferences,
		Role:        string(u.Role),
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
