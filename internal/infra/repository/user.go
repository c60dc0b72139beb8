package repository

import (
	"context"
	"time"

	"lendly/internal/domain/user"
	"lendly/internal/infra"
	"lendly/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

var _ usecase.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID(), u.Name(), u.Email(), u.CreatedAt(), u.UpdatedAt())
	return wrapPgErr("failed to insert user", err)
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET name = $2, email = $3, updated_at = $4 WHERE id = $1`,
		u.ID(), u.Name(), u.Email(), u.UpdatedAt())
	if err != nil {
		return wrapPgErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, created_at, updated_at FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, wrapPgErr("failed to find user", err)
	}
	return u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, created_at, updated_at FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, wrapPgErr("failed to query users", err)
	}
	defer rows.Close()
	out := []*user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapPgErr("failed to scan user", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read users", err)
	}
	return out, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapPgErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                   uuid.UUID
		name, email          string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &email, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return user.Reconstruct(id, name, email, createdAt, updatedAt), nil
}
