package entity

import "time"

// Status de demanda.
const (
	DemandaPendente      = "pendente"
	DemandaEnviadoSemead = "enviado_semead"
	DemandaAtendido      = "atendido"
	DemandaNaoAtendido   = "nao_atendido"
)

// ValidDemandaStatus informa se o status é conhecido.
func ValidDemandaStatus(s string) bool {
	switch s {
	case DemandaPendente, DemandaEnviadoSemead, DemandaAtendido, DemandaNaoAtendido:
		return true
	}
	return false
}

// Demanda solicitação formal (ofício) de uma escola à secretaria.
type Demanda struct {
	ID              string
	TenantID        string
	EscolaID        string
	NumeroOficio    string
	Objeto          string
	Descricao       string
	DataSolicitacao time.Time
	DataResposta    *time.Time
	Status          string
	Observacoes     string
	CriadoPor       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
