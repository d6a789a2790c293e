package repositories

import (
	"context"
	"fmt"

	"github.com/campusportal/backend/internal/database"
	"github.com/campusportal/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = "id, name, email, subject, message, status, created_at"

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(db *database.DB) *ContactRepository {
	return &ContactRepository{pool: db.Pool}
}

func scanContactRow(scanner rowScanner) (*models.Contact, error) {
	var contact models.Contact

	err := scanner.Scan(
		&contact.ID, &contact.Name, &contact.Email,
		&contact.Subject, &contact.Message,
		&contact.Status, &contact.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &contact, nil
}

func scanContactRows(rows pgx.Rows) ([]*models.Contact, error) {
	defer rows.Close()

	contacts := make([]*models.Contact, 0)

	for rows.Next() {
		contact, err := scanContactRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return contacts, nil
}

// Create persists a submitted message. Status always starts at "new"
// regardless of what the caller set.
func (r *ContactRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	query := `
		INSERT INTO contacts (name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + contactColumns

	return scanContactRow(r.pool.QueryRow(ctx, query,
		contact.Name, contact.Email, contact.Subject, contact.Message,
		models.ContactStatusNew,
	))
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	return scanContactRow(r.pool.QueryRow(ctx, query, id))
}

// List returns every message, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return scanContactRows(rows)
}

func (r *ContactRepository) ListByStatus(ctx context.Context, status string) ([]*models.Contact, error) {
	if !models.ValidContactStatus(status) {
		return nil, models.ErrInvalidArgument
	}

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE status = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return scanContactRows(rows)
}

// UpdateStatus moves a message to any of the three valid statuses; no
// directionality is enforced between them.
func (r *ContactRepository) UpdateStatus(ctx context.Context, id int64, status string) (*models.Contact, error) {
	if !models.ValidContactStatus(status) {
		return nil, models.ErrInvalidArgument
	}

	query := `UPDATE contacts SET status = $1 WHERE id = $2 RETURNING ` + contactColumns

	return scanContactRow(r.pool.QueryRow(ctx, query, status, id))
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contacts WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
