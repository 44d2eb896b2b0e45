package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/siege-works/garrison/internal/roles"
	"github.com/siege-works/garrison/internal/shared"
)

// Repository defines persistence operations for user management.
type Repository interface {
	Create(ctx context.Context, username, passwordHash string, role roles.Role) (*User, error)
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (*User, error)
	UpdateRole(ctx context.Context, id int64, role roles.Role) (*User, error)
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

const uniqueViolation = "23505"

// Create inserts a new user, mapping the username uniqueness conflict to
// shared.ErrDuplicate.
func (r *PGRepository) Create(ctx context.Context, username, passwordHash string, role roles.Role) (*User, error) {
	const query = `
		INSERT INTO users (username, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id, username, role, created_at, updated_at`
	user, err := scanUser(r.pool.QueryRow(ctx, query, username, passwordHash, string(role)))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, shared.ErrDuplicate
		}
		return nil, err
	}
	return user, nil
}

// List returns all users, newest first.
func (r *PGRepository) List(ctx context.Context) ([]User, error) {
	const query = `SELECT id, username, role, created_at, updated_at FROM users ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var (
			user User
			role string
		)
		if err := rows.Scan(&user.ID, &user.Username, &role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		user.Role = roles.Role(role)
		users = append(users, user)
	}
	return users, rows.Err()
}

// Get fetches one user by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*User, error) {
	const query = `SELECT id, username, role, created_at, updated_at FROM users WHERE id = $1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateRole replaces the user's role.
func (r *PGRepository) UpdateRole(ctx context.Context, id int64, role roles.Role) (*User, error) {
	const query = `
		UPDATE users SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, username, role, created_at, updated_at`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Returns shared.ErrNotFound when nothing was deleted.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		user User
		role string
	)
	if err := row.Scan(&user.ID, &user.Username, &role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	user.Role = roles.Role(role)
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
