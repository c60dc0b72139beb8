package response

import (
	"time"

	"lendly/internal/domain/request"
	"lendly/internal/usecase"

	"github.com/google/uuid"
)

type ItemRequestResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	RequestorID uuid.UUID `json:"requestorId"`
	Created     time.Time `json:"created"`
}

type ItemRequestDetailsResponse struct {
	ItemRequestResponse
	Items []*ItemResponse `json:"items"`
}

func FromItemRequest(r *request.ItemRequest) *ItemRequestResponse {
	return &ItemRequestResponse{
		ID:          r.ID(),
		Description: r.Description(),
		RequestorID: r.RequestorID(),
		Created:     r.Created(),
	}
}

func FromRequestDetails(d *usecase.RequestDetails) *ItemRequestDetailsResponse {
	return &ItemRequestDetailsResponse{
		ItemRequestResponse: *FromItemRequest(d.Request),
		Items:               FromItems(d.Items),
	}
}

func FromRequestDetailsList(ds []*usecase.RequestDetails) []*ItemRequestDetailsResponse {
	out := make([]*ItemRequestDetailsResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromRequestDetails(d))
	}
	return out
}
