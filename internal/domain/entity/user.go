package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin      = "admin"
	RoleProduction = "production"
	RoleSales      = "sales"
)

// User identidad de actor para atribución en el ledger. La administración
// de usuarios vive fuera de este núcleo; aquí solo login y lookup.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}
