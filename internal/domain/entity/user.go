package entity

import "time"

// Perfis de acesso.
const (
	RoleAdmin      = "admin"      // console web, todos os módulos
	RoleGestor     = "gestor"     // console web sem administração de usuários
	RoleEscola     = "escola"     // app de estoque escolar, restrito à própria escola
	RoleEntregador = "entregador" // app de entregas
)

// ValidRole informa se o perfil é conhecido.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleGestor, RoleEscola, RoleEntregador:
		return true
	}
	return false
}

// User usuário do sistema, sempre vinculado a um tenant.
type User struct {
	ID           string
	TenantID     string
	EscolaID     string // obrigatório para RoleEscola
	Email        string
	PasswordHash string
	Nome         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PodeAcessarEscola informa se o perfil pode operar os dados da escola.
// Usuários de escola ficam restritos à própria escola; os demais perfis acessam todas.
func PodeAcessarEscola(role, escolaDoUsuario, escolaID string) bool {
	if role != RoleEscola {
		return true
	}
	return escolaDoUsuario != "" && escolaDoUsuario == escolaID
}
