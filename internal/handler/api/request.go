package api

import (
	"net/http"
	"strconv"

	reqdto "lendly/internal/handler/dto/request"
	resdto "lendly/internal/handler/dto/response"
	"lendly/internal/handler/httperr"
	"lendly/internal/handler/middleware"
	"lendly/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultRequestPageSize = 20

type RequestHandler struct {
	requests usecase.RequestUseCase
}

func NewRequestHandler(requests usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// @Summary Create item request
// @Description Post a want-ad describing an item to borrow
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param request body reqdto.CreateItemRequestRequest true "Request description"
// @Success 201 {object} resdto.ItemRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateItemRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.requests.Create(c.Request.Context(), userID, req.Description)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromItemRequest(r))
}

// @Summary List own item requests
// @Description List the caller's requests with answering items, newest first
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Success 200 {array} resdto.ItemRequestDetailsResponse
// @Failure 404 {object} httperr.Response
// @Router /requests [get]
func (h *RequestHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	ds, err := h.requests.GetOwn(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestDetailsList(ds))
}

// @Summary List other users' item requests
// @Description Page through requests posted by other users, newest first
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param from query int false "Offset" default(0)
// @Param size query int false "Page size" default(20)
// @Success 200 {array} resdto.ItemRequestDetailsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /requests/all [get]
func (h *RequestHandler) ListAll(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	from, err := parseNonNegative(c.DefaultQuery("from", "0"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from parameter", nil)
		return
	}
	size, err := parseNonNegative(c.DefaultQuery("size", strconv.Itoa(defaultRequestPageSize)))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid size parameter", nil)
		return
	}
	if size == 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, strconv.ErrRange, "Invalid size parameter", nil)
		return
	}
	ds, err := h.requests.GetAll(c.Request.Context(), userID, from, size)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestDetailsList(ds))
}

// @Summary Get item request
// @Description Get a request with its answering items
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.ItemRequestDetailsResponse
// @Failure 404 {object} httperr.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request id", nil)
		return
	}
	d, err := h.requests.GetByID(c.Request.Context(), userID, requestID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestDetails(d))
}

func parseNonNegative(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
