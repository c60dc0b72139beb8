package api

import (
	"net/http"

	reqdto "lendly/internal/handler/dto/request"
	resdto "lendly/internal/handler/dto/response"
	"lendly/internal/handler/httperr"
	"lendly/internal/handler/middleware"
	"lendly/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ItemHandler struct {
	items    usecase.ItemUseCase
	comments usecase.CommentUseCase
}

func NewItemHandler(items usecase.ItemUseCase, comments usecase.CommentUseCase) *ItemHandler {
	return &ItemHandler{items: items, comments: comments}
}

// @Summary Create item
// @Description List a new item for rental
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param request body reqdto.CreateItemRequest true "Create item request"
// @Success 201 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	it, err := h.items.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromItem(it))
}

// @Summary Update item
// @Description Edit an owned item; partial fields allowed
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param id path string true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Update item request"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [patch]
func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item id", nil)
		return
	}
	var req reqdto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	it, err := h.items.Update(c.Request.Context(), userID, itemID, req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItem(it))
}

// @Summary Get item
// @Description Get an item with comments; booking summary is included for the owner
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.ItemDetailsResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item id", nil)
		return
	}
	details, err := h.items.GetByID(c.Request.Context(), userID, itemID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemDetails(details))
}

// @Summary List own items
// @Description List the caller's items with booking summaries and comments
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Success 200 {array} resdto.ItemDetailsResponse
// @Failure 404 {object} httperr.Response
// @Router /items [get]
func (h *ItemHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	details, err := h.items.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemDetailsList(details))
}

// @Summary Search items
// @Description Search available items by name or description; blank text returns nothing
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param text query string true "Search text"
// @Success 200 {array} resdto.ItemResponse
// @Router /items/search [get]
func (h *ItemHandler) Search(c *gin.Context) {
	items, err := h.items.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItems(items))
}

// @Summary Add comment
// @Description Comment on an item after a completed approved booking
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param id path string true "Item ID"
// @Param request body reqdto.CreateCommentRequest true "Comment text"
// @Success 201 {object} resdto.CommentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id}/comment [post]
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item id", nil)
		return
	}
	var req reqdto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cm, err := h.comments.AddComment(c.Request.Context(), userID, itemID, req.Text)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromComment(cm))
}
