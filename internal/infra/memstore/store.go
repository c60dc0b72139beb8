// Package memstore is an in-memory implementation of the repository ports.
// It backs unit tests and the STORE_DRIVER=memory mode, and mirrors the
// ordering and uniqueness contracts of the Postgres repositories.
package memstore

import (
	"errors"
	"sync"

	"lendly/internal/domain/booking"
	"lendly/internal/domain/comment"
	"lendly/internal/domain/item"
	"lendly/internal/domain/request"
	"lendly/internal/domain/user"

	"github.com/google/uuid"
)

var errNoRows = errors.New("no rows in result set")

// Store holds all aggregates under one lock so cross-entity reads, such as
// owner booking lookups, see a consistent snapshot.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]*user.User
	items    map[uuid.UUID]*item.Item
	bookings map[uuid.UUID]*booking.Booking
	comments map[uuid.UUID]*comment.Comment
	requests map[uuid.UUID]*request.ItemRequest

	// seq preserves insertion order for stable created_at ties.
	seq       uint64
	insertSeq map[uuid.UUID]uint64
}

func New() *Store {
	return &Store{
		users:     make(map[uuid.UUID]*user.User),
		items:     make(map[uuid.UUID]*item.Item),
		bookings:  make(map[uuid.UUID]*booking.Booking),
		comments:  make(map[uuid.UUID]*comment.Comment),
		requests:  make(map[uuid.UUID]*request.ItemRequest),
		insertSeq: make(map[uuid.UUID]uint64),
	}
}

func (s *Store) Users() *UserStore       { return &UserStore{s: s} }
func (s *Store) Items() *ItemStore       { return &ItemStore{s: s} }
func (s *Store) Bookings() *BookingStore { return &BookingStore{s: s} }
func (s *Store) Comments() *CommentStore { return &CommentStore{s: s} }
func (s *Store) Requests() *RequestStore { return &RequestStore{s: s} }

func (s *Store) nextSeq(id uuid.UUID) {
	s.seq++
	s.insertSeq[id] = s.seq
}
