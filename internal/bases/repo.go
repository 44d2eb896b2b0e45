package bases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siege-works/garrison/internal/shared"
)

// Repository defines persistence operations for base records.
type Repository interface {
	Create(ctx context.Context, base *Base) (*Base, error)
	List(ctx context.Context) ([]Base, error)
	Get(ctx context.Context, id int64) (*Base, error)
	Update(ctx context.Context, base *Base) (*Base, error)
	Delete(ctx context.Context, id int64) error
	SetAlerts(ctx context.Context, id int64, alerts []string, updatedAt time.Time) error
}

// PGRepository implements Repository using PostgreSQL. The checklist is
// stored as jsonb, alerts as a text array.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const baseColumns = `id, name, region, region_key, sub_region, landmark, notes, checklist, alerts, alerts_updated_at, created_by, created_at, updated_at`

// Create inserts a new base record.
func (r *PGRepository) Create(ctx context.Context, base *Base) (*Base, error) {
	checklist, err := marshalChecklist(base.Checklist)
	if err != nil {
		return nil, err
	}
	const query = `
		INSERT INTO bases (name, region, region_key, sub_region, landmark, notes, checklist, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING ` + baseColumns
	return scanBase(r.pool.QueryRow(ctx, query,
		base.Name, base.Region, base.RegionKey, base.SubRegion, base.Landmark, base.Notes, checklist, base.CreatedBy))
}

// List returns all bases, newest first.
func (r *PGRepository) List(ctx context.Context) ([]Base, error) {
	const query = `SELECT ` + baseColumns + ` FROM bases ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Base
	for rows.Next() {
		base, err := scanBase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *base)
	}
	return out, rows.Err()
}

// Get fetches one base by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Base, error) {
	const query = `SELECT ` + baseColumns + ` FROM bases WHERE id = $1`
	base, err := scanBase(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return base, nil
}

// Update rewrites the mutable columns of a base record.
func (r *PGRepository) Update(ctx context.Context, base *Base) (*Base, error) {
	checklist, err := marshalChecklist(base.Checklist)
	if err != nil {
		return nil, err
	}
	const query = `
		UPDATE bases
		SET name = $2, region = $3, region_key = $4, sub_region = $5, landmark = $6, notes = $7, checklist = $8, updated_at = now()
		WHERE id = $1
		RETURNING ` + baseColumns
	updated, err := scanBase(r.pool.QueryRow(ctx, query,
		base.ID, base.Name, base.Region, base.RegionKey, base.SubRegion, base.Landmark, base.Notes, checklist))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a base record.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetAlerts replaces the cached alert strings for a base.
func (r *PGRepository) SetAlerts(ctx context.Context, id int64, alerts []string, updatedAt time.Time) error {
	const query = `UPDATE bases SET alerts = $2, alerts_updated_at = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, alerts, updatedAt.UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func marshalChecklist(items []ChecklistItem) ([]byte, error) {
	if items == nil {
		items = []ChecklistItem{}
	}
	return json.Marshal(items)
}

func scanBase(row pgx.Row) (*Base, error) {
	var (
		base      Base
		checklist []byte
	)
	err := row.Scan(&base.ID, &base.Name, &base.Region, &base.RegionKey, &base.SubRegion, &base.Landmark,
		&base.Notes, &checklist, &base.Alerts, &base.AlertsUpdatedAt, &base.CreatedBy, &base.CreatedAt, &base.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &base.Checklist); err != nil {
			return nil, err
		}
	}
	if base.Checklist == nil {
		base.Checklist = []ChecklistItem{}
	}
	if base.Alerts == nil {
		base.Alerts = []string{}
	}
	return &base, nil
}

var _ Repository = (*PGRepository)(nil)
