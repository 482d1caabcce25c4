package psql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/tendant/learning-tracks/internal/domain"
)

func TestHandlePostgresError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"duplicate video id", &pgconn.PgError{Code: "23505", ConstraintName: constraintContentVideoID}, domain.ErrContentExists},
		{"duplicate track", &pgconn.PgError{Code: "23505", ConstraintName: constraintTrackName}, domain.ErrTrackExists},
		{"duplicate email", &pgconn.PgError{Code: "23505", ConstraintName: constraintUserEmail}, domain.ErrUserExists},
		{"other unique", &pgconn.PgError{Code: "23505", ConstraintName: "x"}, domain.ErrConflict},
		{"missing content", &pgconn.PgError{Code: "23503", ConstraintName: constraintLinkContent}, domain.ErrContentNotFound},
		{"missing track", &pgconn.PgError{Code: "23503", ConstraintName: constraintLinkTrack}, domain.ErrTrackNotFound},
		{"not null", &pgconn.PgError{Code: "23502", ColumnName: "title"}, domain.ErrInvalidInput},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, domain.ErrStorage},
		{"wrapped pg error", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40001"}), domain.ErrStorage},
		{"plain error", errors.New("connection reset"), domain.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, handlePostgresError("op", tt.err), tt.want)
		})
	}
}

func TestSearchClause(t *testing.T) {
	where, args := searchClause(domain.SearchFilter{}, 1)
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = searchClause(domain.NewSearchFilter("go", "title", "description"), 1)
	assert.Equal(t, `WHERE ("title" ILIKE $1 OR "description" ILIKE $1)`, where)
	assert.Equal(t, []any{"%go%"}, args)
}
