package memstore

import (
	"context"
	"strings"

	"lendly/internal/domain/item"
	"lendly/internal/infra"
	"lendly/internal/usecase"

	"github.com/google/uuid"
)

type ItemStore struct {
	s *Store
}

var _ usecase.ItemRepository = (*ItemStore)(nil)

func (st *ItemStore) Create(ctx context.Context, i *item.Item) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.items[i.ID()] = i
	st.s.nextSeq(i.ID())
	return nil
}

func (st *ItemStore) Update(ctx context.Context, i *item.Item) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if _, ok := st.s.items[i.ID()]; !ok {
		return infra.WrapRepoErr("item not found", errNoRows, infra.KindNotFound)
	}
	st.s.items[i.ID()] = i
	return nil
}

func (st *ItemStore) FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	i, ok := st.s.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("item not found", errNoRows, infra.KindNotFound)
	}
	return i, nil
}

func (st *ItemStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*item.Item, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	out := []*item.Item{}
	for _, i := range st.s.items {
		if i.OwnerID() == ownerID {
			out = append(out, i)
		}
	}
	sortBySeqAsc(st.s, out, func(i *item.Item) uuid.UUID { return i.ID() })
	return out, nil
}

func (st *ItemStore) FindByRequest(ctx context.Context, requestID uuid.UUID) ([]*item.Item, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	out := []*item.Item{}
	for _, i := range st.s.items {
		if i.RequestID() != nil && *i.RequestID() == requestID {
			out = append(out, i)
		}
	}
	sortBySeqAsc(st.s, out, func(i *item.Item) uuid.UUID { return i.ID() })
	return out, nil
}

func (st *ItemStore) Search(ctx context.Context, text string) ([]*item.Item, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	needle := strings.ToLower(text)
	out := []*item.Item{}
	for _, i := range st.s.items {
		if !i.Available() {
			continue
		}
		if strings.Contains(strings.ToLower(i.Name()), needle) ||
			strings.Contains(strings.ToLower(i.Description()), needle) {
			out = append(out, i)
		}
	}
	sortBySeqAsc(st.s, out, func(i *item.Item) uuid.UUID { return i.ID() })
	return out, nil
}
