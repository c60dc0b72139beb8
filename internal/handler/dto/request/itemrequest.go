package request

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}
