package comment

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"lendly/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotAllowed  = errs.New("comment not allowed without a completed booking")
	ErrEmptyText   = errs.New("comment text cannot be blank")
	ErrTextTooLong = errs.New("comment text too long")
)

const MaxTextLength = 2000

// Comment is a review left on an item after a completed rental. Created once,
// immutable, never updated.
type Comment struct {
	id       uuid.UUID
	itemID   uuid.UUID
	authorID uuid.UUID
	text     string
	created  time.Time
}

// New checks temporal eligibility through the injected checker and creates
// the comment. Text is trimmed and must be non-blank and within
// MaxTextLength runes.
func New(ctx context.Context, services Services, authorID, itemID uuid.UUID, text string) (*Comment, error) {
	now := services.Clock.Now()
	if err := services.Eligibility.CanComment(ctx, EligibilityInput{
		AuthorID: authorID,
		ItemID:   itemID,
		Now:      now,
	}); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return nil, ErrTextTooLong
	}

	return &Comment{
		id:       uuid.New(),
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  now,
	}, nil
}

func Reconstruct(id, itemID, authorID uuid.UUID, text string, created time.Time) *Comment {
	return &Comment{
		id:       id,
		itemID:   itemID,
		authorID: authorID,
		text:     text,
		created:  created,
	}
}

func (c *Comment) ID() uuid.UUID       { return c.id }
func (c *Comment) ItemID() uuid.UUID   { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID { return c.authorID }
func (c *Comment) Text() string        { return c.text }
func (c *Comment) Created() time.Time  { return c.created }
