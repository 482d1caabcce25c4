package psql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/tendant/learning-tracks/internal/domain"
)

// PSQLUserRepository implements the UserRepository interface
type PSQLUserRepository struct {
	BaseRepository
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DBTX) *PSQLUserRepository {
	return &PSQLUserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *PSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.Password).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return handlePostgresError("create user", err)
	}
	return nil
}

func (r *PSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `SELECT id, name, email, password, created_at FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, handlePostgresError("get user", err)
	}
	return &u, nil
}
