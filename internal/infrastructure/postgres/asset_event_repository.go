package postgres

import (
	"context"
	"fmt"

	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.AssetEventRepository = (*AssetEventRepo)(nil)

// AssetEventRepo bitácora append-only de activos sobre PostgreSQL.
type AssetEventRepo struct {
	q Querier
}

// NewAssetEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetEventRepository(q Querier) *AssetEventRepo {
	return &AssetEventRepo{q: q}
}

// Create persiste un evento. Las filas nunca se actualizan ni se borran.
func (r *AssetEventRepo) Create(event *entity.AssetEvent) error {
	query := `
		INSERT INTO asset_events (id, asset_id, user_id, event_type, metadata, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.AssetID, event.UserID, event.EventType, event.Metadata, event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert asset_event: %w", err)
	}
	return nil
}

// ListByAsset historial de un activo, más reciente primero. No filtra por
// deleted_at del activo: el historial sobrevive al soft delete.
func (r *AssetEventRepo) ListByAsset(assetID string, limit, offset int) ([]*entity.AssetEvent, error) {
	query := `
		SELECT id, asset_id, user_id, event_type, metadata, occurred_at
		FROM asset_events
		WHERE asset_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, assetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list asset_events: %w", err)
	}
	defer rows.Close()

	var events []*entity.AssetEvent
	for rows.Next() {
		var e entity.AssetEvent
		if err := rows.Scan(&e.ID, &e.AssetID, &e.UserID, &e.EventType, &e.Metadata, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan asset_event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
