package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-auth-service/internal/model"
	"go-auth-service/pkg/apierror"
)

const uniqueViolation = "23505"

const userColumns = `id, username, email, COALESCE(phone, ''), password_hash, status,
	        created_at, updated_at, last_login_at`

// UserRepository is the sole mutator of user rows. Timestamps are stamped
// here, not on the entity.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Insert persists a new user, assigning its id and timestamps. A lost
// uniqueness race surfaces as a typed duplicate-resource error, never as a
// raw constraint leak.
func (r *UserRepository) Insert(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Status == "" {
		u.Status = model.StatusActive
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, phone, password_hash, status, created_at, updated_at)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
		 RETURNING id`,
		u.Username, u.Email, u.Phone, u.PasswordHash, u.Status, u.CreatedAt, u.UpdatedAt).
		Scan(&u.ID)

	if err != nil {
		if dup, ok := r.duplicate(err, u); ok {
			return dup
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	u, err := r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.NotFound("User", id)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.NotFoundMessage("User not found: " + username)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apierror.NotFoundMessage("User not found: " + email)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// Update writes the mutable fields and stamps updated_at.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	u.UpdatedAt = time.Now().UTC()

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $2, phone = NULLIF($3, ''), status = $4, updated_at = $5
		 WHERE id = $1`,
		u.ID, u.Email, u.Phone, u.Status, u.UpdatedAt)
	if err != nil {
		if dup, ok := r.duplicate(err, u); ok {
			return dup
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFound("User", u.ID)
	}
	return nil
}

// UpdateLastLogin is a last-writer-wins bookkeeping write.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login_at = $2, updated_at = $2 WHERE username = $1`,
		username, at.UTC())
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.NotFoundMessage("User not found: " + username)
	}
	return nil
}

// ListPage returns the requested 0-indexed page sorted by id descending,
// with the total row count for paging metadata.
func (r *UserRepository) ListPage(ctx context.Context, page int, size int) ([]model.User, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id DESC LIMIT $1 OFFSET $2`,
		size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, size)
	for rows.Next() {
		u, err := r.scanOne(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) scanOne(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.PasswordHash, &u.Status,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

// duplicate translates a unique-index violation into the typed
// duplicate-resource error, naming the field from the violated index.
func (r *UserRepository) duplicate(err error, u *model.User) (*apierror.APIError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil, false
	}

	if strings.Contains(pgErr.ConstraintName, "username") {
		return apierror.Duplicate("User", "username", u.Username), true
	}
	return apierror.Duplicate("User", "email", u.Email), true
}
