package httperr

import (
	"errors"
	"net/http"

	"lendly/internal/domain/booking"
	"lendly/internal/domain/comment"
	domitem "lendly/internal/domain/item"
	domrequest "lendly/internal/domain/request"
	domuser "lendly/internal/domain/user"
	"lendly/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError records the original error on the gin context for the error
// middleware and writes the public response body.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithUseCaseError translates business errors into HTTP statuses.
// Unknown errors become 500 so internals never leak as client faults.
func AbortWithUseCaseError(c *gin.Context, err error) {
	AbortWithError(c, StatusOf(err), err, err.Error(), nil)
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrItemNotFound),
		errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrBookingConflict),
		errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrUserInUse):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrItemUnavailable),
		errors.Is(err, booking.ErrInvalidInterval),
		errors.Is(err, booking.ErrStartInPast),
		errors.Is(err, booking.ErrAlreadyDecided),
		errors.Is(err, booking.ErrUnsupportedState),
		errors.Is(err, comment.ErrNotAllowed),
		errors.Is(err, comment.ErrEmptyText),
		errors.Is(err, comment.ErrTextTooLong),
		errors.Is(err, domitem.ErrEmptyName),
		errors.Is(err, domitem.ErrEmptyDescription),
		errors.Is(err, domuser.ErrEmptyName),
		errors.Is(err, domuser.ErrInvalidEmail),
		errors.Is(err, domrequest.ErrEmptyDescription):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
