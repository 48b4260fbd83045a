package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = "id, template_id, classroom_id, created_by_id, serial_number, purchase_date, value_estimate, image_url, status, created_at, updated_at, deleted_at"

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL.
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste un activo.
func (r *AssetRepo) Create(asset *entity.Asset) error {
	query := `
		INSERT INTO assets (id, template_id, classroom_id, created_by_id, serial_number, purchase_date, value_estimate, image_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.TemplateID, asset.ClassroomID, asset.CreatedByID, asset.SerialNumber,
		asset.PurchaseDate, asset.ValueEstimate, asset.ImageURL, asset.Status,
		asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo vigente (excluye soft-deleted).
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM assets WHERE id = $1 AND deleted_at IS NULL`, assetColumns)
	var a entity.Asset
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.TemplateID, &a.ClassroomID, &a.CreatedByID, &a.SerialNumber,
		&a.PurchaseDate, &a.ValueEstimate, &a.ImageURL, &a.Status,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return &a, nil
}

// List activos vigentes con paginación.
func (r *AssetRepo) List(limit, offset int) ([]*entity.Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM assets
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, assetColumns)
	return r.scanMany(query, limit, offset)
}

// ListByClassroom activos vigentes de un aula.
func (r *AssetRepo) ListByClassroom(classroomID string, limit, offset int) ([]*entity.Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM assets
		WHERE classroom_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, assetColumns)
	return r.scanMany(query, classroomID, limit, offset)
}

// Update persiste todos los campos mutables, incluidos status y deleted_at
// (el soft delete pasa por aquí).
func (r *AssetRepo) Update(asset *entity.Asset) error {
	query := `
		UPDATE assets
		SET template_id = $2, classroom_id = $3, serial_number = $4, purchase_date = $5,
		    value_estimate = $6, image_url = $7, status = $8, updated_at = $9, deleted_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.TemplateID, asset.ClassroomID, asset.SerialNumber, asset.PurchaseDate,
		asset.ValueEstimate, asset.ImageURL, asset.Status, asset.UpdatedAt, asset.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return nil
}

func (r *AssetRepo) scanMany(query string, args ...any) ([]*entity.Asset, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []*entity.Asset
	for rows.Next() {
		var a entity.Asset
		if err := rows.Scan(
			&a.ID, &a.TemplateID, &a.ClassroomID, &a.CreatedByID, &a.SerialNumber,
			&a.PurchaseDate, &a.ValueEstimate, &a.ImageURL, &a.Status,
			&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, &a)
	}
	return assets, rows.Err()
}
