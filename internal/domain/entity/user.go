package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleBuyer   = "buyer"   // compras: órdenes de compra y RFQs
	RolePlanner = "planner" // producción: BOMs y órdenes de trabajo
	RoleViewer  = "viewer"
)

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBuyer, RolePlanner, RoleViewer:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
