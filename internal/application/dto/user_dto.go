package dto

import "time"

// RegisterRequest entrada para cadastro de usuário (feito por um admin do tenant).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nome     string `json:"nome" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin gestor escola entregador"`
	EscolaID string `json:"escola_id,omitempty"`
}

// UserResponse saída de um usuário (sem senha).
type UserResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	EscolaID  string    `json:"escola_id,omitempty"`
	Email     string    `json:"email"`
	Nome      string    `json:"nome"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada de login: o slug identifica o tenant.
type LoginRequest struct {
	Tenant   string `json:"tenant" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT, usuário e branding do tenant para os apps.
type LoginResponse struct {
	Token    string           `json:"token"`
	User     UserResponse     `json:"user"`
	Branding BrandingResponse `json:"branding"`
}
