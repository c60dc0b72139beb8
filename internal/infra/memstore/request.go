package memstore

import (
	"context"

	"lendly/internal/domain/request"
	"lendly/internal/infra"
	"lendly/internal/usecase"

	"github.com/google/uuid"
)

type RequestStore struct {
	s *Store
}

var _ usecase.RequestRepository = (*RequestStore)(nil)

func (st *RequestStore) Create(ctx context.Context, r *request.ItemRequest) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.requests[r.ID()] = r
	st.s.nextSeq(r.ID())
	return nil
}

func (st *RequestStore) FindByID(ctx context.Context, id uuid.UUID) (*request.ItemRequest, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	r, ok := st.s.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr("item request not found", errNoRows, infra.KindNotFound)
	}
	return r, nil
}

func (st *RequestStore) FindByRequestor(ctx context.Context, requestorID uuid.UUID) ([]*request.ItemRequest, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	out := []*request.ItemRequest{}
	for _, r := range st.s.requests {
		if r.RequestorID() == requestorID {
			out = append(out, r)
		}
	}
	sortBySeqDesc(st.s, out, func(r *request.ItemRequest) uuid.UUID { return r.ID() })
	return out, nil
}

func (st *RequestStore) FindAllExcept(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*request.ItemRequest, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	all := []*request.ItemRequest{}
	for _, r := range st.s.requests {
		if r.RequestorID() != userID {
			all = append(all, r)
		}
	}
	sortBySeqDesc(st.s, all, func(r *request.ItemRequest) uuid.UUID { return r.ID() })
	if offset >= len(all) {
		return []*request.ItemRequest{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}
