package usecase

import (
	"github.com/issaqr/inventory-qr-api/internal/application/dto"
	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

// QRUseCase consulta y regeneración del código QR de un activo. La relación
// es 1:1: nunca hay más de una fila de QR por activo.
type QRUseCase struct {
	assetUC *AssetUseCase
	qrRepo  repository.QRCodeRepository
	repo    repository.AssetRepository
}

// NewQRUseCase construye el caso de uso sobre el de activos (comparte la
// generación de imagen y la creación idempotente).
func NewQRUseCase(assetUC *AssetUseCase, qrRepo repository.QRCodeRepository, repo repository.AssetRepository) *QRUseCase {
	return &QRUseCase{assetUC: assetUC, qrRepo: qrRepo, repo: repo}
}

// GetOrCreate devuelve el QR del activo, creándolo si falta (p.ej. si la
// generación falló al crear el activo).
func (uc *QRUseCase) GetOrCreate(assetID string) (*dto.QRCodeResponse, error) {
	asset, err := uc.repo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	qr, err := uc.assetUC.ensureQR(assetID)
	if err != nil {
		return nil, err
	}
	return toQRCodeResponse(qr), nil
}

// Regenerate rehace imagen y payload sobre la fila existente; si no hay
// fila, la crea. En ningún caso aparece una segunda fila para el activo.
func (uc *QRUseCase) Regenerate(assetID string) (*dto.QRCodeResponse, error) {
	asset, err := uc.repo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.qrRepo.GetByAssetID(assetID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		qr, err := uc.assetUC.ensureQR(assetID)
		if err != nil {
			return nil, err
		}
		return toQRCodeResponse(qr), nil
	}
	fresh, err := uc.assetUC.buildQR(assetID)
	if err != nil {
		return nil, err
	}
	existing.QRURL = fresh.QRURL
	existing.Payload = fresh.Payload
	if err := uc.qrRepo.Update(existing); err != nil {
		return nil, err
	}
	return toQRCodeResponse(existing), nil
}

func toQRCodeResponse(qr *entity.QRCode) *dto.QRCodeResponse {
	return &dto.QRCodeResponse{
		ID:      qr.ID,
		AssetID: qr.AssetID,
		QRURL:   qr.QRURL,
		Payload: qr.Payload,
	}
}
