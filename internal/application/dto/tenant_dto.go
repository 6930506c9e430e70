package dto

import "time"

// BrandingRequest identidade visual do tenant.
type BrandingRequest struct {
	CorPrimaria   string `json:"cor_primaria"`
	CorSecundaria string `json:"cor_secundaria"`
	LogoURL       string `json:"logo_url"`
}

// CreateTenantRequest entrada para criar um tenant.
type CreateTenantRequest struct {
	Nome     string          `json:"nome" validate:"required,min=1,max=200"`
	Slug     string          `json:"slug" validate:"required"`
	CNPJ     string          `json:"cnpj"`
	Branding BrandingRequest `json:"branding"`
}

// UpdateBrandingRequest atualização parcial do branding.
type UpdateBrandingRequest struct {
	CorPrimaria   *string `json:"cor_primaria"`
	CorSecundaria *string `json:"cor_secundaria"`
	LogoURL       *string `json:"logo_url"`
}

// BrandingResponse branding público (usado na tela de login dos apps).
type BrandingResponse struct {
	TenantNome    string `json:"tenant_nome"`
	Slug          string `json:"slug"`
	CorPrimaria   string `json:"cor_primaria"`
	CorSecundaria string `json:"cor_secundaria"`
	LogoURL       string `json:"logo_url"`
}

// TenantResponse saída de um tenant.
type TenantResponse struct {
	ID        string           `json:"id"`
	Nome      string           `json:"nome"`
	Slug      string           `json:"slug"`
	CNPJ      string           `json:"cnpj"`
	Status    string           `json:"status"`
	Branding  BrandingResponse `json:"branding"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SetModuleRequest ativa ou desativa um módulo do tenant.
type SetModuleRequest struct {
	Module    string `json:"module" validate:"required,oneof=estoque entregas faturamento demandas"`
	Active    bool   `json:"active"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
