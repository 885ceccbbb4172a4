package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleOperator    = "operator"
	RoleStorekeeper = "storekeeper"
	RoleManager     = "manager"
	RoleDriver      = "driver"
)

// User representa un usuario del sistema (operador, bodeguero, conductor, etc.).
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, operator, storekeeper, manager, driver
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
