package usecase

import "lendly/internal/pkg/errs"

var (
	ErrUserNotFound    = errs.New("user not found")
	ErrItemNotFound    = errs.New("item not found")
	ErrBookingNotFound = errs.New("booking not found")
	ErrRequestNotFound = errs.New("item request not found")

	ErrForbidden       = errs.New("access denied")
	ErrItemUnavailable = errs.New("item is not available for booking")
	ErrBookingConflict = errs.New("booking overlaps an approved booking")
	ErrEmailTaken      = errs.New("email is already in use")
	ErrUserInUse       = errs.New("user is referenced by items or bookings")
)
