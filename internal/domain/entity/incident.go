package entity

import "time"

// Estados válidos para Incident.
const (
	IncidentStatusOpen       = "open"
	IncidentStatusInProgress = "in_progress"
	IncidentStatusResolved   = "resolved"
	IncidentStatusClosed     = "closed"
)

// ValidIncidentStatus verifica que el estado pertenezca al catálogo.
func ValidIncidentStatus(s string) bool {
	switch s {
	case IncidentStatusOpen, IncidentStatusInProgress, IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

// IncidentTerminal indica si el estado marca el incidente como atendido.
// La primera transición a un estado terminal estampa ResolvedAt; las
// siguientes no lo modifican.
func IncidentTerminal(s string) bool {
	return s == IncidentStatusResolved || s == IncidentStatusClosed
}

// Incident novedad reportada sobre un activo.
type Incident struct {
	ID          string
	AssetID     string
	Description string
	PhotoURL    string
	Status      string
	ReportedBy  string
	ReportedAt  time.Time
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
