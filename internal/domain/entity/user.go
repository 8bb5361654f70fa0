package entity

import "time"

// Role rol de un usuario, con jerarquía numérica explícita.
// user < admin < uber-admin; comparar siempre con AtLeast, nunca con
// igualdad duplicada por guard.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleUberAdmin Role = "uber-admin"
)

// rank devuelve el nivel de privilegio del rol. Un rol desconocido vale -1
// y nunca pasa ningún guard.
func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 0
	case RoleAdmin:
		return 1
	case RoleUberAdmin:
		return 2
	default:
		return -1
	}
}

// AtLeast indica si el rol tiene al menos el privilegio de min.
func (r Role) AtLeast(min Role) bool {
	return r.rank() >= 0 && r.rank() >= min.rank()
}

// Valid indica si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	return r.rank() >= 0
}

// UserStatus estado del ciclo de vida de un usuario.
type UserStatus string

const (
	StatusPending   UserStatus = "pending"
	StatusInvited   UserStatus = "invited"
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
	StatusDeleted   UserStatus = "deleted"
)

// Valid indica si el estado es uno de los conocidos.
func (s UserStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInvited, StatusActive, StatusSuspended, StatusDeleted:
		return true
	}
	return false
}

// Preferences bolsa libre de preferencias del usuario (jsonb en la DB).
type Preferences map[string]any

// User representa un usuario del sistema. Pertenece como máximo a una
// Account (AccountID nulo = sin cuenta). El email es la clave de
// correlación con el proveedor de identidad y es único.
type User struct {
	ID          string
	AccountID   *string // FK nullable hacia accounts
	Email       string
	Name        string
	Avatar      string
	Preferences Preferences
	Role        Role
	Status      UserStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
