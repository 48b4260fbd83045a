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

var _ repository.AssetCategoryRepository = (*AssetCategoryRepo)(nil)

// AssetCategoryRepo implementación del puerto AssetCategoryRepository sobre PostgreSQL.
type AssetCategoryRepo struct {
	q Querier
}

// NewAssetCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetCategoryRepository(q Querier) *AssetCategoryRepo {
	return &AssetCategoryRepo{q: q}
}

// Create persiste una categoría. Nombre repetido → ErrDuplicate.
func (r *AssetCategoryRepo) Create(category *entity.AssetCategory) error {
	query := `
		INSERT INTO asset_categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset_category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *AssetCategoryRepo) GetByID(id string) (*entity.AssetCategory, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM asset_categories WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByName obtiene una categoría por nombre exacto.
func (r *AssetCategoryRepo) GetByName(name string) (*entity.AssetCategory, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM asset_categories WHERE name = $1`
	return r.scanOne(query, name)
}

// List lista categorías con paginación.
func (r *AssetCategoryRepo) List(limit, offset int) ([]*entity.AssetCategory, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM asset_categories
		ORDER BY name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list asset_categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.AssetCategory
	for rows.Next() {
		var c entity.AssetCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan asset_category: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *AssetCategoryRepo) scanOne(query string, args ...any) (*entity.AssetCategory, error) {
	var c entity.AssetCategory
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset_category: %w", err)
	}
	return &c, nil
}
