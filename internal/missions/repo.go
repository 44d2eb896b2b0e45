package missions

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siege-works/garrison/internal/shared"
)

// Repository defines persistence operations for mission records.
type Repository interface {
	Create(ctx context.Context, mission *Mission) (*Mission, error)
	List(ctx context.Context) ([]Mission, error)
	Get(ctx context.Context, id int64) (*Mission, error)
	Update(ctx context.Context, mission *Mission) (*Mission, error)
	Delete(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const missionColumns = `id, title, description, status, checklist, assigned_to, created_by, created_at, updated_at`

// Create inserts a new mission record.
func (r *PGRepository) Create(ctx context.Context, mission *Mission) (*Mission, error) {
	checklist, err := marshalChecklist(mission.Checklist)
	if err != nil {
		return nil, err
	}
	const query = `
		INSERT INTO missions (title, description, status, checklist, assigned_to, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING ` + missionColumns
	return scanMission(r.pool.QueryRow(ctx, query,
		mission.Title, mission.Description, string(mission.Status), checklist, assigned(mission.AssignedTo), mission.CreatedBy))
}

// List returns all missions, newest first.
func (r *PGRepository) List(ctx context.Context) ([]Mission, error) {
	const query = `SELECT ` + missionColumns + ` FROM missions ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Mission
	for rows.Next() {
		mission, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *mission)
	}
	return out, rows.Err()
}

// Get fetches one mission by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Mission, error) {
	const query = `SELECT ` + missionColumns + ` FROM missions WHERE id = $1`
	mission, err := scanMission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return mission, nil
}

// Update rewrites the mutable columns of a mission record.
func (r *PGRepository) Update(ctx context.Context, mission *Mission) (*Mission, error) {
	checklist, err := marshalChecklist(mission.Checklist)
	if err != nil {
		return nil, err
	}
	const query = `
		UPDATE missions
		SET title = $2, description = $3, status = $4, checklist = $5, assigned_to = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + missionColumns
	updated, err := scanMission(r.pool.QueryRow(ctx, query,
		mission.ID, mission.Title, mission.Description, string(mission.Status), checklist, assigned(mission.AssignedTo)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a mission record.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM missions WHERE id = $1`, id)
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

func assigned(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func scanMission(row pgx.Row) (*Mission, error) {
	var (
		mission   Mission
		status    string
		checklist []byte
	)
	err := row.Scan(&mission.ID, &mission.Title, &mission.Description, &status, &checklist,
		&mission.AssignedTo, &mission.CreatedBy, &mission.CreatedAt, &mission.UpdatedAt)
	if err != nil {
		return nil, err
	}
	mission.Status = Status(status)
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &mission.Checklist); err != nil {
			return nil, err
		}
	}
	if mission.Checklist == nil {
		mission.Checklist = []ChecklistItem{}
	}
	if mission.AssignedTo == nil {
		mission.AssignedTo = []int64{}
	}
	return &mission, nil
}

var _ Repository = (*PGRepository)(nil)
