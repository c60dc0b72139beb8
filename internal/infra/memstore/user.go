package memstore

import (
	"context"

	"lendly/internal/domain/user"
	"lendly/internal/infra"
	"lendly/internal/usecase"

	"github.com/google/uuid"
)

type UserStore struct {
	s *Store
}

var _ usecase.UserRepository = (*UserStore)(nil)

func (st *UserStore) Create(ctx context.Context, u *user.User) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for _, existing := range st.s.users {
		if existing.Email() == u.Email() {
			return infra.WrapRepoErr("duplicate email", errNoRows, infra.KindDuplicateKey)
		}
	}
	st.s.users[u.ID()] = u
	st.s.nextSeq(u.ID())
	return nil
}

func (st *UserStore) Update(ctx context.Context, u *user.User) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.users[u.ID()]; !ok {
		return infra.WrapRepoErr("user not found", errNoRows, infra.KindNotFound)
	}
	for id, existing := range st.s.users {
		if id != u.ID() && existing.Email() == u.Email() {
			return infra.WrapRepoErr("duplicate email", errNoRows, infra.KindDuplicateKey)
		}
	}
	st.s.users[u.ID()] = u
	return nil
}

func (st *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	u, ok := st.s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", errNoRows, infra.KindNotFound)
	}
	return u, nil
}

func (st *UserStore) FindAll(ctx context.Context) ([]*user.User, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	out := make([]*user.User, 0, len(st.s.users))
	for _, u := range st.s.users {
		out = append(out, u)
	}
	sortBySeqAsc(st.s, out, func(u *user.User) uuid.UUID { return u.ID() })
	return out, nil
}

// Delete enforces the same referential integrity the database schema does:
// a user still referenced by items, bookings, comments, or requests cannot
// be removed.
func (st *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.users[id]; !ok {
		return infra.WrapRepoErr("user not found", errNoRows, infra.KindNotFound)
	}
	for _, it := range st.s.items {
		if it.OwnerID() == id {
			return infra.WrapRepoErr("user owns items", nil, infra.KindForeignKeyViolated)
		}
	}
	for _, b := range st.s.bookings {
		if b.BookerID() == id {
			return infra.WrapRepoErr("user has bookings", nil, infra.KindForeignKeyViolated)
		}
	}
	for _, c := range st.s.comments {
		if c.AuthorID() == id {
			return infra.WrapRepoErr("user has comments", nil, infra.KindForeignKeyViolated)
		}
	}
	for _, rq := range st.s.requests {
		if rq.RequestorID() == id {
			return infra.WrapRepoErr("user has item requests", nil, infra.KindForeignKeyViolated)
		}
	}
	delete(st.s.users, id)
	return nil
}
