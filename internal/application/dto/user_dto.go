package dto

import "time"

// RegisterRequest entrada para registro del tendero (la tienda queda creada con el usuario).
type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	ShopName       string `json:"shop_name" validate:"required,min=1,max=200"`
	ShopkeeperName string `json:"shopkeeper_name" validate:"omitempty,max=200"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
	Address        string `json:"address" validate:"omitempty,max=500"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	ShopName       string    `json:"shop_name"`
	ShopkeeperName string    `json:"shopkeeper_name,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
