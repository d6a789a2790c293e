package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusportal/backend/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapPostgresError translates driver-level failures into the store's error
// taxonomy. Anything unrecognized is wrapped as ErrStoreUnavailable so
// transient I/O failures surface to callers with a stable kind.
func MapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return models.ErrDuplicateIdentity
		case pgerrcode.ForeignKeyViolation, pgerrcode.NotNullViolation, pgerrcode.CheckViolation:
			return models.ErrInvalidArgument
		}
	}

	return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
}

func (db *DB) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}
