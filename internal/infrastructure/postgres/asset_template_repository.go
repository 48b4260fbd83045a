package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.AssetTemplateRepository = (*AssetTemplateRepo)(nil)

const templateColumns = "id, name, description, category_id, manufacturer, model_number, created_at, updated_at"

// AssetTemplateRepo implementación del puerto AssetTemplateRepository sobre PostgreSQL.
type AssetTemplateRepo struct {
	q Querier
}

// NewAssetTemplateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetTemplateRepository(q Querier) *AssetTemplateRepo {
	return &AssetTemplateRepo{q: q}
}

// Create persiste una plantilla.
func (r *AssetTemplateRepo) Create(template *entity.AssetTemplate) error {
	query := `
		INSERT INTO asset_templates (id, name, description, category_id, manufacturer, model_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		template.ID, template.Name, template.Description, template.CategoryID,
		template.Manufacturer, template.ModelNumber, template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert asset_template: %w", err)
	}
	return nil
}

// GetByID obtiene una plantilla por ID.
func (r *AssetTemplateRepo) GetByID(id string) (*entity.AssetTemplate, error) {
	query := fmt.Sprintf(`SELECT %s FROM asset_templates WHERE id = $1`, templateColumns)
	var t entity.AssetTemplate
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.CategoryID, &t.Manufacturer, &t.ModelNumber,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset_template: %w", err)
	}
	return &t, nil
}

// List lista plantillas con paginación.
func (r *AssetTemplateRepo) List(limit, offset int) ([]*entity.AssetTemplate, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM asset_templates
		ORDER BY name
		LIMIT $1 OFFSET $2`, templateColumns)
	return r.scanMany(query, limit, offset)
}

// ListByCategory plantillas de una categoría.
func (r *AssetTemplateRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.AssetTemplate, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM asset_templates
		WHERE category_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`, templateColumns)
	return r.scanMany(query, categoryID, limit, offset)
}

func (r *AssetTemplateRepo) scanMany(query string, args ...any) ([]*entity.AssetTemplate, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list asset_templates: %w", err)
	}
	defer rows.Close()

	var templates []*entity.AssetTemplate
	for rows.Next() {
		var t entity.AssetTemplate
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.CategoryID, &t.Manufacturer, &t.ModelNumber,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset_template: %w", err)
		}
		templates = append(templates, &t)
	}
	return templates, rows.Err()
}
