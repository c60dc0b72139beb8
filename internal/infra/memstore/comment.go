package memstore

import (
	"context"

	"lendly/internal/domain/comment"
	"lendly/internal/usecase"

	"github.com/google/uuid"
)

type CommentStore struct {
	s *Store
}

var _ usecase.CommentRepository = (*CommentStore)(nil)

func (st *CommentStore) Create(ctx context.Context, c *comment.Comment) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	st.s.comments[c.ID()] = c
	st.s.nextSeq(c.ID())
	return nil
}

func (st *CommentStore) FindByItem(ctx context.Context, itemID uuid.UUID) ([]*comment.Comment, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()
	out := []*comment.Comment{}
	for _, c := range st.s.comments {
		if c.ItemID() == itemID {
			out = append(out, c)
		}
	}
	sortBySeqAsc(st.s, out, func(c *comment.Comment) uuid.UUID { return c.ID() })
	return out, nil
}
