package repository

import (
	"context"
	"time"

	"lendly/internal/domain/comment"
	"lendly/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

var _ usecase.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, item_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID(), c.ItemID(), c.AuthorID(), c.Text(), c.Created())
	return wrapPgErr("failed to insert comment", err)
}

func (r *CommentRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]*comment.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_id, author_id, text, created_at FROM comments
		WHERE item_id = $1
		ORDER BY created_at ASC`, itemID)
	if err != nil {
		return nil, wrapPgErr("failed to query comments", err)
	}
	defer rows.Close()
	out := []*comment.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan comment", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read comments", err)
	}
	return out, nil
}

func scanComment(row pgx.Row) (*comment.Comment, error) {
	var (
		id, itemID, authorID uuid.UUID
		text                 string
		created              time.Time
	)
	if err := row.Scan(&id, &itemID, &authorID, &text, &created); err != nil {
		return nil, err
	}
	return comment.Reconstruct(id, itemID, authorID, text, created), nil
}
