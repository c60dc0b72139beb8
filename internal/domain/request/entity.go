package request

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyDescription = errors.New("request description cannot be empty")

// ItemRequest is a want-ad: a user describes an item they are looking for, and
// other users may list items answering the request.
type ItemRequest struct {
	id          uuid.UUID
	description string
	requestorID uuid.UUID
	created     time.Time
}

func New(requestorID uuid.UUID, description string, now time.Time) (*ItemRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	return &ItemRequest{
		id:          uuid.New(),
		description: description,
		requestorID: requestorID,
		created:     now,
	}, nil
}

func Reconstruct(id, requestorID uuid.UUID, description string, created time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		description: description,
		requestorID: requestorID,
		created:     created,
	}
}

func (r *ItemRequest) ID() uuid.UUID          { return r.id }
func (r *ItemRequest) Description() string    { return r.description }
func (r *ItemRequest) RequestorID() uuid.UUID { return r.requestorID }
func (r *ItemRequest) Created() time.Time     { return r.created }
