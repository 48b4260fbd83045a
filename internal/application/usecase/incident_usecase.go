package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
	"github.com/issaqr/inventory-qr-api/pkg/logger"
)

// IncidentUseCase casos de uso de incidencias sobre activos. Cada mutación
// deja rastro en la bitácora del activo.
type IncidentUseCase struct {
	repo      repository.IncidentRepository
	assetRepo repository.AssetRepository
	eventRepo repository.AssetEventRepository
	log       *logger.Logger
}

// NewIncidentUseCase construye el caso de uso.
func NewIncidentUseCase(
	repo repository.IncidentRepository,
	assetRepo repository.AssetRepository,
	eventRepo repository.AssetEventRepository,
	log *logger.Logger,
) *IncidentUseCase {
	return &IncidentUseCase{repo: repo, assetRepo: assetRepo, eventRepo: eventRepo, log: log}
}

// Create reporta una incidencia sobre un activo vigente. Nace open y
// registra incident_reported en la bitácora del activo.
func (uc *IncidentUseCase) Create(reportedBy string, in dto.CreateIncidentRequest) (*dto.IncidentResponse, error) {
	asset, err := uc.assetRepo.GetByID(in.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	incident := &entity.Incident{
		ID:          uuid.New().String(),
		AssetID:     in.AssetID,
		Description: in.Description,
		PhotoURL:    in.PhotoURL,
		Status:      entity.IncidentStatusOpen,
		ReportedBy:  reportedBy,
		ReportedAt:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(incident); err != nil {
		return nil, err
	}
	uc.appendAssetEvent(in.AssetID, reportedBy, entity.AssetEventIncidentReported)
	return toIncidentResponse(incident), nil
}

// GetByID obtiene una incidencia por ID.
func (uc *IncidentUseCase) GetByID(id string) (*dto.IncidentResponse, error) {
	incident, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, domain.ErrNotFound
	}
	return toIncidentResponse(incident), nil
}

// List lista incidencias, opcionalmente por activo.
func (uc *IncidentUseCase) List(assetID string, page dto.PageRequest) (*dto.IncidentListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Incident
		err  error
	)
	if assetID != "" {
		list, err = uc.repo.ListByAsset(assetID, page.Limit, page.Offset)
	} else {
		list, err = uc.repo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.IncidentResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toIncidentResponse(i))
	}
	return &dto.IncidentListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update actualización parcial. La primera transición a resolved/closed
// estampa resolved_at; transiciones posteriores entre estados terminales no
// lo tocan.
func (uc *IncidentUseCase) Update(actorID, id string, in dto.UpdateIncidentRequest) (*dto.IncidentResponse, error) {
	incident, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if incident == nil {
		return nil, domain.ErrNotFound
	}
	if in.Description != nil {
		incident.Description = *in.Description
	}
	if in.PhotoURL != nil {
		incident.PhotoURL = *in.PhotoURL
	}
	if in.Status != nil {
		if !entity.ValidIncidentStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		if entity.IncidentTerminal(*in.Status) && incident.ResolvedAt == nil {
			now := time.Now()
			incident.ResolvedAt = &now
		}
		incident.Status = *in.Status
	}
	incident.UpdatedAt = time.Now()
	if err := uc.repo.Update(incident); err != nil {
		return nil, err
	}
	uc.appendAssetEvent(incident.AssetID, actorID, entity.AssetEventIncidentUpdated)
	return toIncidentResponse(incident), nil
}

// Delete elimina la incidencia y lo deja anotado en la bitácora del activo.
func (uc *IncidentUseCase) Delete(actorID, id string) error {
	incident, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if incident == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.appendAssetEvent(incident.AssetID, actorID, entity.AssetEventIncidentDeleted)
	return nil
}

func (uc *IncidentUseCase) appendAssetEvent(assetID, actorID, eventType string) {
	event := &entity.AssetEvent{
		ID:         uuid.New().String(),
		AssetID:    assetID,
		EventType:  eventType,
		OccurredAt: time.Now(),
	}
	if actorID != "" {
		event.UserID = &actorID
	}
	if err := uc.eventRepo.Create(event); err != nil {
		uc.log.Error().Err(err).Str("asset_id", assetID).Str("event_type", eventType).Msg("no se pudo registrar el evento de auditoría")
	}
}

func toIncidentResponse(i *entity.Incident) *dto.IncidentResponse {
	return &dto.IncidentResponse{
		ID:          i.ID,
		AssetID:     i.AssetID,
		Description: i.Description,
		PhotoURL:    i.PhotoURL,
		Status:      i.Status,
		ReportedBy:  i.ReportedBy,
		ReportedAt:  i.ReportedAt,
		ResolvedAt:  i.ResolvedAt,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
