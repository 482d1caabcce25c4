// Package psql implements the repositories on PostgreSQL with pgx.
package psql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tendant/learning-tracks/internal/domain"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// TxBeginner is a DBTX that can open a transaction. Both *pgxpool.Pool and
// pgx.Tx satisfy it; on a pgx.Tx, Begin creates a savepoint.
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db DBTX
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db DBTX) BaseRepository {
	return BaseRepository{
		db: db,
	}
}

// Constraint names from the schema, used to classify unique violations.
const (
	constraintContentVideoID = "uq_contents_video_id"
	constraintTrackName      = "uq_tracks_name"
	constraintUserName       = "uq_users_name"
	constraintUserEmail      = "uq_users_email"
	constraintLinkContent    = "fk_contents_tracks_content"
	constraintLinkTrack      = "fk_contents_tracks_track"
)

// handlePostgresError maps a pgx error onto the domain error kinds
func handlePostgresError(operation string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", operation, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			switch pgErr.ConstraintName {
			case constraintContentVideoID:
				return domain.ErrContentExists
			case constraintTrackName:
				return domain.ErrTrackExists
			case constraintUserName, constraintUserEmail:
				return domain.ErrUserExists
			}
			return fmt.Errorf("%w: duplicate entry (%s)", domain.ErrConflict, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			switch pgErr.ConstraintName {
			case constraintLinkContent:
				return fmt.Errorf("%s: %w", operation, domain.ErrContentNotFound)
			case constraintLinkTrack:
				return fmt.Errorf("%s: %w", operation, domain.ErrTrackNotFound)
			}
			return fmt.Errorf("%s: referenced record %w", operation, domain.ErrNotFound)
		case "23502": // not_null_violation
			return fmt.Errorf("%w: required field %s is missing", domain.ErrInvalidInput, pgErr.ColumnName)
		case "42P01": // undefined_table
			return &domain.StorageError{Op: operation, Err: fmt.Errorf("table does not exist - database migration required")}
		}
		return &domain.StorageError{Op: operation, Err: fmt.Errorf("%s (code: %s)", pgErr.Message, pgErr.Code)}
	}

	return &domain.StorageError{Op: operation, Err: err}
}

// searchClause renders a filter as a WHERE clause over sanitized column
// identifiers. The pattern is bound as parameter $argPos.
func searchClause(filter domain.SearchFilter, argPos int) (string, []any) {
	if filter.IsBlank() {
		return "", nil
	}
	conds := make([]string, 0, len(filter.Fields))
	for _, f := range filter.Fields {
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", pgx.Identifier{f}.Sanitize(), argPos))
	}
	return "WHERE (" + strings.Join(conds, " OR ") + ")", []any{filter.LikePattern()}
}
