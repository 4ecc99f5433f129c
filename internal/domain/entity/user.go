package entity

import "time"

// Roles válidos para User. Enumeración cerrada: cualquier otro valor
// es denegado por el motor de políticas (fail-closed).
const (
	RoleAdmin       = "ADMIN"
	RoleSaleManager = "SALE_MANAGER"
	RoleUser        = "USER"
)

// ValidRole indica si el rol pertenece a la enumeración cerrada.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSaleManager, RoleUser:
		return true
	}
	return false
}

// User representa una identidad del sistema.
type User struct {
	ID           string
	Name         string
	Email        string // único, comparación exacta sensible a mayúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, SALE_MANAGER, USER
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
