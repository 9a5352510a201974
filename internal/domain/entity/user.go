package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User representa al tendero: dueño del catálogo y de las cuentas de su tienda.
type User struct {
	ID             string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	ShopName       string
	ShopkeeperName string
	Phone          string
	Address        string
	Status         string // active, disabled
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
