package response

import (
	"time"

	"lendly/internal/domain/item"
	"lendly/internal/usecase"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	RequestID   *uuid.UUID `json:"requestId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingSummaryResponse `json:"lastBooking"`
	NextBooking *BookingSummaryResponse `json:"nextBooking"`
	Comments    []*CommentResponse      `json:"comments"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	ItemID     uuid.UUID `json:"itemId"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	Created    time.Time `json:"created"`
}

func FromItem(i *item.Item) *ItemResponse {
	return &ItemResponse{
		ID:          i.ID(),
		OwnerID:     i.OwnerID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		RequestID:   i.RequestID(),
		CreatedAt:   i.CreatedAt(),
		UpdatedAt:   i.UpdatedAt(),
	}
}

func FromItems(items []*item.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, FromItem(i))
	}
	return out
}

func FromItemDetails(d *usecase.ItemDetails) *ItemDetailsResponse {
	return &ItemDetailsResponse{
		ItemResponse: *FromItem(d.Item),
		LastBooking:  FromBookingSummary(d.Bookings.Last),
		NextBooking:  FromBookingSummary(d.Bookings.Next),
		Comments:     FromComments(d.Comments),
	}
}

func FromItemDetailsList(ds []*usecase.ItemDetails) []*ItemDetailsResponse {
	out := make([]*ItemDetailsResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromItemDetails(d))
	}
	return out
}

func FromComment(v *usecase.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         v.Comment.ID(),
		ItemID:     v.Comment.ItemID(),
		AuthorID:   v.Comment.AuthorID(),
		AuthorName: v.AuthorName,
		Text:       v.Comment.Text(),
		Created:    v.Comment.Created(),
	}
}

func FromComments(cs []*usecase.CommentView) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromComment(c))
	}
	return out
}
