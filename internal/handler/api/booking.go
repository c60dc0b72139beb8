package api

import (
	"context"
	"net/http"

	"lendly/internal/domain/booking"
	reqdto "lendly/internal/handler/dto/request"
	resdto "lendly/internal/handler/dto/response"
	"lendly/internal/handler/httperr"
	"lendly/internal/handler/middleware"
	"lendly/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookings usecase.BookingUseCase
}

func NewBookingHandler(bookings usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// @Summary Create booking
// @Description Request a booking for an item; starts in WAITING status
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	b, err := h.bookings.Create(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary Decide booking
// @Description Approve or reject a waiting booking; item owner only
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param id path string true "Booking ID"
// @Param approved query bool true "true to approve, false to reject"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [patch]
func (h *BookingHandler) Decide(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}
	var q struct {
		Approved *bool `form:"approved" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Missing approved parameter", nil)
		return
	}
	b, err := h.bookings.Decide(c.Request.Context(), userID, bookingID, *q.Approved)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Get booking
// @Description Get a booking by ID; visible to the booker and the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}
	b, err := h.bookings.GetByID(c.Request.Context(), userID, bookingID)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary List own bookings
// @Description List the caller's bookings filtered by state, newest start first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListOwn(c *gin.Context) {
	h.list(c, h.bookings.ListByBooker)
}

// @Summary List bookings for owned items
// @Description List bookings on the caller's items filtered by state, newest start first
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "Caller user ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED" default(ALL)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/owner [get]
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	h.list(c, h.bookings.ListByOwner)
}

func (h *BookingHandler) list(
	c *gin.Context,
	query func(ctx context.Context, userID uuid.UUID, state booking.State) ([]*booking.Booking, error),
) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	state, err := booking.ParseState(c.Query("state"))
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	bs, err := query(c.Request.Context(), userID, state)
	if err != nil {
		httperr.AbortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookings(bs))
}
