package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusportal/backend/internal/database"
	"github.com/campusportal/backend/internal/models"
	"github.com/campusportal/backend/pkg/auth"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = "id, user_type, full_name, cid, email, phone, password_hash, is_active, created_at"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool}
}

// rowScanner lets scanUserRow serve both QueryRow and Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User

	err := scanner.Scan(
		&user.ID, &user.UserType, &user.FullName, &user.CID,
		&user.Email, &user.Phone, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &user, nil
}

func scanUserRows(rows pgx.Rows) ([]*models.User, error) {
	defer rows.Close()

	users := make([]*models.User, 0)

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetByCID(ctx context.Context, cid string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE cid = $1`

	return scanUserRow(r.pool.QueryRow(ctx, query, cid))
}

// GetByEmailOrCID returns the first user matching either key. Used at
// registration to detect identity collisions against active and inactive
// accounts alike.
func (r *UserRepository) GetByEmailOrCID(ctx context.Context, email, cid string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR cid = $2 LIMIT 1`

	return scanUserRow(r.pool.QueryRow(ctx, query, email, cid))
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return scanUserRows(rows)
}

// Create persists a new user, hashing the plaintext password on the way in.
// The unique indexes on email and cid make concurrent registrations with the
// same identity resolve to exactly one success; the losers surface as
// ErrDuplicateIdentity.
func (r *UserRepository) Create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `
		INSERT INTO users (user_type, full_name, cid, email, phone, password_hash, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	return scanUserRow(r.pool.QueryRow(ctx, query,
		user.UserType, user.FullName, user.CID,
		user.Email, user.Phone, hashed, true,
	))
}

// Update applies the allow-listed partial update. Fields outside
// models.UserUpdate simply do not exist at this layer; an update carrying no
// fields fails with ErrNoOpUpdate.
func (r *UserRepository) Update(ctx context.Context, id int64, update models.UserUpdate) (*models.User, error) {
	if update.Empty() {
		return nil, models.ErrNoOpUpdate
	}

	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)

	if update.FullName != nil {
		args = append(args, *update.FullName)
		sets = append(sets, fmt.Sprintf("full_name = $%d", len(args)))
	}
	if update.Phone != nil {
		args = append(args, *update.Phone)
		sets = append(sets, fmt.Sprintf("phone = $%d", len(args)))
	}
	if update.IsActive != nil {
		args = append(args, *update.IsActive)
		sets = append(sets, fmt.Sprintf("is_active = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), userColumns,
	)

	return scanUserRow(r.pool.QueryRow(ctx, query, args...))
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
