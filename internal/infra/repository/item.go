package repository

import (
	"context"
	"time"

	"lendly/internal/domain/item"
	"lendly/internal/infra"
	"lendly/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

var _ usecase.ItemRepository = (*ItemRepository)(nil)

const itemColumns = `id, owner_id, name, description, available, request_id, created_at, updated_at`

func (r *ItemRepository) Create(ctx context.Context, i *item.Item) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO items (id, owner_id, name, description, available, request_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		i.ID(), i.OwnerID(), i.Name(), i.Description(), i.Available(), i.RequestID(), i.CreatedAt(), i.UpdatedAt())
	return wrapPgErr("failed to insert item", err)
}

func (r *ItemRepository) Update(ctx context.Context, i *item.Item) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE items SET name = $2, description = $3, available = $4, updated_at = $5
		WHERE id = $1`,
		i.ID(), i.Name(), i.Description(), i.Available(), i.UpdatedAt())
	if err != nil {
		return wrapPgErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	i, err := scanItem(row)
	if err != nil {
		return nil, wrapPgErr("failed to find item", err)
	}
	return i, nil
}

func (r *ItemRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*item.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE owner_id = $1
		ORDER BY created_at ASC`, ownerID)
	if err != nil {
		return nil, wrapPgErr("failed to query owner items", err)
	}
	return collectItems(rows)
}

func (r *ItemRepository) FindByRequest(ctx context.Context, requestID uuid.UUID) ([]*item.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE request_id = $1
		ORDER BY created_at ASC`, requestID)
	if err != nil {
		return nil, wrapPgErr("failed to query request items", err)
	}
	return collectItems(rows)
}

func (r *ItemRepository) Search(ctx context.Context, text string) ([]*item.Item, error) {
	pattern := "%" + text + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE available AND (name ILIKE $1 OR description ILIKE $1)
		ORDER BY created_at ASC`, pattern)
	if err != nil {
		return nil, wrapPgErr("failed to search items", err)
	}
	return collectItems(rows)
}

func scanItem(row pgx.Row) (*item.Item, error) {
	var (
		id, ownerID          uuid.UUID
		name, description    string
		available            bool
		requestID            *uuid.UUID
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &ownerID, &name, &description, &available, &requestID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return item.Reconstruct(id, ownerID, name, description, available, requestID, createdAt, updatedAt), nil
}

func collectItems(rows pgx.Rows) ([]*item.Item, error) {
	defer rows.Close()
	out := []*item.Item{}
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan item", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read items", err)
	}
	return out, nil
}
