package repository

import "github.com/issaqr/inventory-qr-api/internal/domain/entity"

// IncidentRepository puerto de persistencia para Incident.
type IncidentRepository interface {
	Create(incident *entity.Incident) error
	GetByID(id string) (*entity.Incident, error)
	List(limit, offset int) ([]*entity.Incident, error)
	ListByAsset(assetID string, limit, offset int) ([]*entity.Incident, error)
	Update(incident *entity.Incident) error
	Delete(id string) error
}
