package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
	"github.com/issaqr/inventory-qr-api/internal/domain/repository"
)

var _ repository.IncidentRepository = (*IncidentRepo)(nil)

const incidentColumns = "id, asset_id, description, photo_url, status, reported_by, reported_at, resolved_at, created_at, updated_at"

// IncidentRepo implementación del puerto IncidentRepository sobre PostgreSQL.
type IncidentRepo struct {
	q Querier
}

// NewIncidentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIncidentRepository(q Querier) *IncidentRepo {
	return &IncidentRepo{q: q}
}

func (r *IncidentRepo) Create(incident *entity.Incident) error {
	query := `
		INSERT INTO incidents (id, asset_id, description, photo_url, status, reported_by, reported_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		incident.ID, incident.AssetID, incident.Description, incident.PhotoURL, incident.Status,
		incident.ReportedBy, incident.ReportedAt, incident.CreatedAt, incident.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert incident: %w", err)
	}
	return nil
}

func (r *IncidentRepo) GetByID(id string) (*entity.Incident, error) {
	query := fmt.Sprintf(`SELECT %s FROM incidents WHERE id = $1`, incidentColumns)
	var i entity.Incident
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.AssetID, &i.Description, &i.PhotoURL, &i.Status,
		&i.ReportedBy, &i.ReportedAt, &i.ResolvedAt, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get incident: %w", err)
	}
	return &i, nil
}

// List incidentes más recientes primero.
func (r *IncidentRepo) List(limit, offset int) ([]*entity.Incident, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM incidents
		ORDER BY reported_at DESC
		LIMIT $1 OFFSET $2`, incidentColumns)
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	return r.scanMany(rows)
}

func (r *IncidentRepo) ListByAsset(assetID string, limit, offset int) ([]*entity.Incident, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM incidents
		WHERE asset_id = $1
		ORDER BY reported_at DESC
		LIMIT $2 OFFSET $3`, incidentColumns)
	rows, err := r.q.Query(context.Background(), query, assetID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list incidents by asset: %w", err)
	}
	return r.scanMany(rows)
}

// Update persiste descripción, foto, estado y resolved_at. reported_by y
// reported_at son inmutables.
func (r *IncidentRepo) Update(incident *entity.Incident) error {
	query := `
		UPDATE incidents
		SET description = $2, photo_url = $3, status = $4, resolved_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		incident.ID, incident.Description, incident.PhotoURL, incident.Status,
		incident.ResolvedAt, incident.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update incident: %w", err)
	}
	return nil
}

// Delete borra el incidente de forma definitiva (hard delete).
func (r *IncidentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM incidents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete incident: %w", err)
	}
	return nil
}

func (r *IncidentRepo) scanMany(rows pgx.Rows) ([]*entity.Incident, error) {
	defer rows.Close()
	var incidents []*entity.Incident
	for rows.Next() {
		var i entity.Incident
		if err := rows.Scan(
			&i.ID, &i.AssetID, &i.Description, &i.PhotoURL, &i.Status,
			&i.ReportedBy, &i.ReportedAt, &i.ResolvedAt, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		incidents = append(incidents, &i)
	}
	return incidents, rows.Err()
}
