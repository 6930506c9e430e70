package entity

import "time"

// Tenant representa uma organização cliente (secretaria/prefeitura) cujos dados são isolados.
type Tenant struct {
	ID        string
	Nome      string
	Slug      string // identificador público usado no login e no branding
	CNPJ      string
	Status    string // active, suspended, inactive
	Branding  Branding
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branding identidade visual do tenant exibida pelos apps.
type Branding struct {
	CorPrimaria   string
	CorSecundaria string
	LogoURL       string
}

// Status de tenant.
const (
	TenantStatusActive    = "active"
	TenantStatusSuspended = "suspended"
	TenantStatusInactive  = "inactive"
)

// Módulos disponíveis (devem coincidir com o CHECK da tabela tenant_modules).
const (
	ModuleEstoque     = "estoque"
	ModuleEntregas    = "entregas"
	ModuleFaturamento = "faturamento"
	ModuleDemandas    = "demandas"
)

// TenantModule ativação de um módulo para um tenant.
type TenantModule struct {
	ID          string
	TenantID    string
	ModuleName  string
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sem vencimento
}
