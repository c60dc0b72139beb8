package repository

import (
	"context"
	"time"

	"lendly/internal/domain/request"
	"lendly/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

var _ usecase.RequestRepository = (*RequestRepository)(nil)

func (r *RequestRepository) Create(ctx context.Context, req *request.ItemRequest) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO item_requests (id, description, requestor_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		req.ID(), req.Description(), req.RequestorID(), req.Created())
	return wrapPgErr("failed to insert item request", err)
}

func (r *RequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*request.ItemRequest, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, description, requestor_id, created_at FROM item_requests WHERE id = $1`, id)
	req, err := scanRequest(row)
	if err != nil {
		return nil, wrapPgErr("failed to find item request", err)
	}
	return req, nil
}

func (r *RequestRepository) FindByRequestor(ctx context.Context, requestorID uuid.UUID) ([]*request.ItemRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, description, requestor_id, created_at FROM item_requests
		WHERE requestor_id = $1
		ORDER BY created_at DESC`, requestorID)
	if err != nil {
		return nil, wrapPgErr("failed to query item requests", err)
	}
	return collectRequests(rows)
}

func (r *RequestRepository) FindAllExcept(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*request.ItemRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, description, requestor_id, created_at FROM item_requests
		WHERE requestor_id <> $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`, userID, offset, limit)
	if err != nil {
		return nil, wrapPgErr("failed to query item requests", err)
	}
	return collectRequests(rows)
}

func scanRequest(row pgx.Row) (*request.ItemRequest, error) {
	var (
		id, requestorID uuid.UUID
		description     string
		created         time.Time
	)
	if err := row.Scan(&id, &description, &requestorID, &created); err != nil {
		return nil, err
	}
	return request.Reconstruct(id, requestorID, description, created), nil
}

func collectRequests(rows pgx.Rows) ([]*request.ItemRequest, error) {
	defer rows.Close()
	out := []*request.ItemRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan item request", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read item requests", err)
	}
	return out, nil
}
