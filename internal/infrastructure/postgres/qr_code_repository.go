package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/issaqr/inventory-qr-api/internal/domain"
	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.QRCodeRepository = (*QRCodeRepo)(nil)

// QRCodeRepo implementación del puerto QRCodeRepository sobre PostgreSQL.
// asset_id lleva índice único: la relación con assets es estrictamente 1:1.
type QRCodeRepo struct {
	q Querier
}

// NewQRCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQRCodeRepository(q Querier) *QRCodeRepo {
	return &QRCodeRepo{q: q}
}

// Create persiste un QR. Si el activo ya tiene uno → ErrDuplicate.
func (r *QRCodeRepo) Create(qr *entity.QRCode) error {
	query := `
		INSERT INTO qr_codes (id, asset_id, qr_url, payload)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, qr.ID, qr.AssetID, qr.QRURL, qr.Payload)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert qr_code: %w", err)
	}
	return nil
}

// GetByAssetID obtiene el QR de un activo, o nil si no tiene.
func (r *QRCodeRepo) GetByAssetID(assetID string) (*entity.QRCode, error) {
	query := `SELECT id, asset_id, qr_url, payload FROM qr_codes WHERE asset_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, assetID))
}

// GetByID obtiene un QR por su id, o nil si no existe.
func (r *QRCodeRepo) GetByID(id string) (*entity.QRCode, error) {
	query := `SELECT id, asset_id, qr_url, payload FROM qr_codes WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update sobrescribe imagen y payload manteniendo id y asset_id
// (regeneración in-place).
func (r *QRCodeRepo) Update(qr *entity.QRCode) error {
	query := `UPDATE qr_codes SET qr_url = $2, payload = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, qr.ID, qr.QRURL, qr.Payload)
	if err != nil {
		return fmt.Errorf("update qr_code: %w", err)
	}
	return nil
}

func (r *QRCodeRepo) scanOne(row pgx.Row) (*entity.QRCode, error) {
	var q entity.QRCode
	err := row.Scan(&q.ID, &q.AssetID, &q.QRURL, &q.Payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan qr_code: %w", err)
	}
	return &q, nil
}
