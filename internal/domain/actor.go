package domain

import "errors"

// Role of an authenticated caller.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCarrier Role = "carrier"
)

// ErrInvalidRole возвращается при неизвестной роли
var ErrInvalidRole = errors.New("invalid role")

// ParseRole validates and converts a raw role value.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCarrier:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// Actor идентифицирует вызывающего. Аутентификация выполняется снаружи,
// сервис доверяет заголовкам шлюза.
type Actor struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
