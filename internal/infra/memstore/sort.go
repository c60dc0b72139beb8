package memstore

import (
	"sort"

	"github.com/google/uuid"
)

// sortBySeqAsc orders entities by insertion sequence, matching the
// created_at ASC ordering of the SQL repositories.
func sortBySeqAsc[T any](s *Store, items []T, id func(T) uuid.UUID) {
	sort.SliceStable(items, func(i, j int) bool {
		return s.insertSeq[id(items[i])] < s.insertSeq[id(items[j])]
	})
}

func sortBySeqDesc[T any](s *Store, items []T, id func(T) uuid.UUID) {
	sort.SliceStable(items, func(i, j int) bool {
		return s.insertSeq[id(items[i])] > s.insertSeq[id(items[j])]
	})
}
