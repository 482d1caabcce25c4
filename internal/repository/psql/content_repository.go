package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tendant/learning-tracks/internal/domain"
)

// PSQLContentRepository implements the ContentRepository interface
type PSQLContentRepository struct {
	BaseRepository
}

// NewContentRepository creates a new PostgreSQL content repository
func NewContentRepository(db DBTX) *PSQLContentRepository {
	return &PSQLContentRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

const contentColumns = `id, video_id, title, COALESCE(description, ''), COALESCE(duration, 0), completed, created_at`

func scanContent(row pgx.Row) (*domain.Content, error) {
	var c domain.Content
	if err := row.Scan(&c.ID, &c.VideoID, &c.Title, &c.Description, &c.Duration, &c.Completed, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create implements ContentRepository.Create
func (r *PSQLContentRepository) Create(ctx context.Context, content *domain.Content) error {
	query := `
		INSERT INTO contents (video_id, title, description, duration, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		content.VideoID,
		content.Title,
		content.Description,
		content.Duration,
		content.Completed,
	).Scan(&content.ID, &content.CreatedAt)
	if err != nil {
		return handlePostgresError("create content", err)
	}
	return nil
}

// Get implements ContentRepository.Get
func (r *PSQLContentRepository) Get(ctx context.Context, id int64) (*domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1`

	c, err := scanContent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContentNotFound
		}
		return nil, handlePostgresError("get content", err)
	}
	return c, nil
}

// SetCompleted implements ContentRepository.SetCompleted
func (r *PSQLContentRepository) SetCompleted(ctx context.Context, id int64, completed bool) (*domain.Content, error) {
	query := `UPDATE contents SET completed = $2 WHERE id = $1 RETURNING ` + contentColumns

	c, err := scanContent(r.db.QueryRow(ctx, query, id, completed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContentNotFound
		}
		return nil, handlePostgresError("update content", err)
	}
	return c, nil
}

// Delete implements ContentRepository.Delete; links go with the row
func (r *PSQLContentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete content", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

// List implements ContentRepository.List
func (r *PSQLContentRepository) List(ctx context.Context, page domain.PageRequest, filter domain.SearchFilter) ([]*domain.Content, int, error) {
	where, args := searchClause(filter, 1)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM contents `+where, args...).Scan(&total); err != nil {
		return nil, 0, handlePostgresError("count contents", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM contents %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		contentColumns, where, n+1, n+2)
	rows, err := r.db.Query(ctx, query, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return nil, 0, handlePostgresError("list contents", err)
	}
	defer rows.Close()

	contents := []*domain.Content{}
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, 0, handlePostgresError("scan content", err)
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, handlePostgresError("list contents", err)
	}
	return contents, total, nil
}
