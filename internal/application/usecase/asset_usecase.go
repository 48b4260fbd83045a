package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
	"github.com/issaqr/inventory-qr-api/pkg/logger"
)

// AssetUseCase casos de uso de activos: CRUD con soft delete, bitácora de
// auditoría con diff por campo y generación automática de QR al crear.
type AssetUseCase struct {
	repo          repository.AssetRepository
	classroomRepo repository.ClassroomRepository
	templateRepo  repository.AssetTemplateRepository
	eventRepo     repository.AssetEventRepository
	qrRepo        repository.QRCodeRepository
	qrGen         QRGenerator
	log           *logger.Logger
	assetBaseURL  string
}

// NewAssetUseCase construye el caso de uso. assetBaseURL es la base del
// frontend con la que se arman las URLs que codifican los QR.
func NewAssetUseCase(
	repo repository.AssetRepository,
	classroomRepo repository.ClassroomRepository,
	templateRepo repository.AssetTemplateRepository,
	eventRepo repository.AssetEventRepository,
	qrRepo repository.QRCodeRepository,
	qrGen QRGenerator,
	log *logger.Logger,
	assetBaseURL string,
) *AssetUseCase {
	return &AssetUseCase{
		repo:          repo,
		classroomRepo: classroomRepo,
		templateRepo:  templateRepo,
		eventRepo:     eventRepo,
		qrRepo:        qrRepo,
		qrGen:         qrGen,
		log:           log,
		assetBaseURL:  assetBaseURL,
	}
}

// Create crea un activo, registra el evento asset_created y genera su QR.
// El QR es best-effort: si la imagen falla, el activo queda creado y el QR
// puede pedirse después.
func (uc *AssetUseCase) Create(actorID string, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	classroom, err := uc.classroomRepo.GetByID(in.ClassroomID)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, domain.ErrNotFound
	}
	if in.TemplateID != nil {
		template, err := uc.templateRepo.GetByID(*in.TemplateID)
		if err != nil {
			return nil, err
		}
		if template == nil {
			return nil, domain.ErrNotFound
		}
	}
	status := entity.AssetStatusAvailable
	if in.Status != "" {
		normalized, ok := entity.NormalizeAssetStatus(in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		status = normalized
	}
	now := time.Now()
	asset := &entity.Asset{
		ID:            uuid.New().String(),
		TemplateID:    in.TemplateID,
		ClassroomID:   in.ClassroomID,
		SerialNumber:  in.SerialNumber,
		PurchaseDate:  in.PurchaseDate,
		ValueEstimate: in.ValueEstimate,
		ImageURL:      in.ImageURL,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if actorID != "" {
		asset.CreatedByID = &actorID
	}
	if err := uc.repo.Create(asset); err != nil {
		return nil, err
	}
	uc.appendEvent(asset.ID, actorID, entity.AssetEventCreated, nil)
	if _, err := uc.ensureQR(asset.ID); err != nil {
		uc.log.Warn().Err(err).Str("asset_id", asset.ID).Msg("no se pudo generar el QR al crear el activo")
	}
	return toAssetResponse(asset), nil
}

// GetByID obtiene un activo activo (no eliminado).
func (uc *AssetUseCase) GetByID(id string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return toAssetResponse(asset), nil
}

// List lista activos vigentes, opcionalmente por aula.
func (uc *AssetUseCase) List(classroomID string, page dto.PageRequest) (*dto.AssetListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Asset
		err  error
	)
	if classroomID != "" {
		list, err = uc.repo.ListByClassroom(classroomID, page.Limit, page.Offset)
	} else {
		list, err = uc.repo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssetResponse(a))
	}
	return &dto.AssetListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update actualización parcial. Cada campo que efectivamente cambia entra al
// diff {old, new} del evento asset_updated; si nada cambió no hay evento.
func (uc *AssetUseCase) Update(actorID, id string, in dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	diff := map[string]fieldChange{}
	if in.ClassroomID != nil && *in.ClassroomID != asset.ClassroomID {
		classroom, err := uc.classroomRepo.GetByID(*in.ClassroomID)
		if err != nil {
			return nil, err
		}
		if classroom == nil {
			return nil, domain.ErrNotFound
		}
		diff["classroom_id"] = fieldChange{Old: asset.ClassroomID, New: *in.ClassroomID}
		asset.ClassroomID = *in.ClassroomID
	}
	if in.TemplateID != nil && !equalStrPtr(in.TemplateID, asset.TemplateID) {
		template, err := uc.templateRepo.GetByID(*in.TemplateID)
		if err != nil {
			return nil, err
		}
		if template == nil {
			return nil, domain.ErrNotFound
		}
		diff["template_id"] = fieldChange{Old: strPtrValue(asset.TemplateID), New: *in.TemplateID}
		asset.TemplateID = in.TemplateID
	}
	if in.SerialNumber != nil && *in.SerialNumber != asset.SerialNumber {
		diff["serial_number"] = fieldChange{Old: asset.SerialNumber, New: *in.SerialNumber}
		asset.SerialNumber = *in.SerialNumber
	}
	if in.PurchaseDate != nil {
		old := ""
		if asset.PurchaseDate != nil {
			old = asset.PurchaseDate.Format("2006-01-02")
		}
		newDate := in.PurchaseDate.Format("2006-01-02")
		if old != newDate {
			diff["purchase_date"] = fieldChange{Old: old, New: newDate}
			asset.PurchaseDate = in.PurchaseDate
		}
	}
	if in.ValueEstimate != nil {
		old := ""
		if asset.ValueEstimate != nil {
			old = asset.ValueEstimate.String()
		}
		if old != in.ValueEstimate.String() {
			diff["value_estimate"] = fieldChange{Old: old, New: in.ValueEstimate.String()}
			asset.ValueEstimate = in.ValueEstimate
		}
	}
	if in.ImageURL != nil && *in.ImageURL != asset.ImageURL {
		diff["image_url"] = fieldChange{Old: asset.ImageURL, New: *in.ImageURL}
		asset.ImageURL = *in.ImageURL
	}
	if in.Status != nil {
		normalized, ok := entity.NormalizeAssetStatus(*in.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		if normalized != asset.Status {
			diff["status"] = fieldChange{Old: asset.Status, New: normalized}
			asset.Status = normalized
		}
	}
	if len(diff) == 0 {
		return toAssetResponse(asset), nil
	}
	asset.UpdatedAt = time.Now()
	if err := uc.repo.Update(asset); err != nil {
		return nil, err
	}
	uc.appendEvent(asset.ID, actorID, entity.AssetEventUpdated, diff)
	return toAssetResponse(asset), nil
}

// PatchImage actualiza solo la imagen del activo (auditado como update).
func (uc *AssetUseCase) PatchImage(actorID, id string, in dto.PatchAssetImageRequest) (*dto.AssetResponse, error) {
	return uc.Update(actorID, id, dto.UpdateAssetRequest{ImageURL: &in.ImageURL})
}

// Delete soft delete: estampa deleted_at, fuerza decommissioned y registra
// asset_deleted. El historial de eventos sigue consultable.
func (uc *AssetUseCase) Delete(actorID, id string) error {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if asset == nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	diff := map[string]fieldChange{
		"status": {Old: asset.Status, New: entity.AssetStatusDecommissioned},
	}
	asset.Status = entity.AssetStatusDecommissioned
	asset.DeletedAt = &now
	asset.UpdatedAt = now
	if err := uc.repo.Update(asset); err != nil {
		return err
	}
	uc.appendEvent(asset.ID, actorID, entity.AssetEventDeleted, diff)
	return nil
}

// BulkUpdate aplica la misma actualización a varios activos; los que fallen
// se reportan sin abortar el resto.
func (uc *AssetUseCase) BulkUpdate(actorID string, in dto.BulkUpdateAssetsRequest) (*dto.BulkResponse, error) {
	out := &dto.BulkResponse{}
	for _, id := range in.IDs {
		if _, err := uc.Update(actorID, id, in.Update); err != nil {
			out.Failed = append(out.Failed, id)
			continue
		}
		out.Processed++
	}
	return out, nil
}

// BulkDelete soft delete masivo con el mismo contrato que BulkUpdate.
func (uc *AssetUseCase) BulkDelete(actorID string, in dto.BulkDeleteAssetsRequest) (*dto.BulkResponse, error) {
	out := &dto.BulkResponse{}
	for _, id := range in.IDs {
		if err := uc.Delete(actorID, id); err != nil {
			out.Failed = append(out.Failed, id)
			continue
		}
		out.Processed++
	}
	return out, nil
}

// Events historial de auditoría del activo. Disponible también para activos
// ya eliminados, por eso no pasa por GetByID.
func (uc *AssetUseCase) Events(assetID string, page dto.PageRequest) (*dto.AssetEventListResponse, error) {
	page.DefaultPage()
	list, err := uc.eventRepo.ListByAsset(assetID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetEventResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.AssetEventResponse{
			ID:         e.ID,
			AssetID:    e.AssetID,
			UserID:     e.UserID,
			EventType:  e.EventType,
			Metadata:   e.Metadata,
			OccurredAt: e.OccurredAt,
		})
	}
	return &dto.AssetEventListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// fieldChange entrada del diff de auditoría.
type fieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// appendEvent registra un evento de bitácora. La bitácora es best-effort
// respecto del write principal ya comprometido: un fallo se loggea.
func (uc *AssetUseCase) appendEvent(assetID, actorID, eventType string, diff map[string]fieldChange) {
	var metadata json.RawMessage
	if len(diff) > 0 {
		raw, err := json.Marshal(diff)
		if err != nil {
			uc.log.Error().Err(err).Str("asset_id", assetID).Msg("no se pudo serializar el diff de auditoría")
			return
		}
		metadata = raw
	}
	event := &entity.AssetEvent{
		ID:         uuid.New().String(),
		AssetID:    assetID,
		EventType:  eventType,
		Metadata:   metadata,
		OccurredAt: time.Now(),
	}
	if actorID != "" {
		event.UserID = &actorID
	}
	if err := uc.eventRepo.Create(event); err != nil {
		uc.log.Error().Err(err).Str("asset_id", assetID).Str("event_type", eventType).Msg("no se pudo registrar el evento de auditoría")
	}
}

// ensureQR crea el QR 1:1 del activo si aún no existe.
func (uc *AssetUseCase) ensureQR(assetID string) (*entity.QRCode, error) {
	existing, err := uc.qrRepo.GetByAssetID(assetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	qr, err := uc.buildQR(assetID)
	if err != nil {
		return nil, err
	}
	if err := uc.qrRepo.Create(qr); err != nil {
		// Carrera sobre el índice único asset_id: quedarse con la fila ganadora.
		if existing, err2 := uc.qrRepo.GetByAssetID(assetID); err2 == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return qr, nil
}

// buildQR arma la fila de QR: imagen PNG de la URL del activo y payload JSON.
func (uc *AssetUseCase) buildQR(assetID string) (*entity.QRCode, error) {
	assetURL := fmt.Sprintf("%s/assets/%s", uc.assetBaseURL, assetID)
	dataURI, err := uc.qrGen.GenerateDataURI(assetURL)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(entity.QRPayload{AssetID: assetID, AssetURL: assetURL})
	if err != nil {
		return nil, err
	}
	return &entity.QRCode{
		ID:      uuid.New().String(),
		AssetID: assetID,
		QRURL:   dataURI,
		Payload: payload,
	}, nil
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:            a.ID,
		ClassroomID:   a.ClassroomID,
		TemplateID:    a.TemplateID,
		CreatedByID:   a.CreatedByID,
		SerialNumber:  a.SerialNumber,
		PurchaseDate:  a.PurchaseDate,
		ValueEstimate: a.ValueEstimate,
		ImageURL:      a.ImageURL,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
