//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"lendly/internal/domain/booking"
	"lendly/internal/handler/api"
	resdto "lendly/internal/handler/dto/response"
	"lendly/internal/handler/middleware"
	"lendly/internal/pkg/jwt"
	"lendly/internal/usecase"
	"lendly/tests/common/builder"
	"lendly/tests/common/httptest"
	"lendly/tests/common/testutil"
	usecasemock "lendly/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockBookings *usecasemock.MockBookingUseCase
	handler      *api.BookingHandler
	callerID     uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = usecasemock.NewMockBookingUseCase(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockBookings)
	s.callerID = uuid.New()

	identity := middleware.NewIdentityMiddleware(jwt.NewService("test-secret", time.Hour))
	guard := identity.RequireIdentity()

	s.router.POST("/bookings", guard, s.handler.Create)
	s.router.GET("/bookings", guard, s.handler.ListOwn)
	s.router.GET("/bookings/owner", guard, s.handler.ListForOwner)
	s.router.GET("/bookings/:id", guard, s.handler.Get)
	s.router.PATCH("/bookings/:id", guard, s.handler.Decide)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	returned := builder.NewBookingBuilder().WithBooker(s.callerID).MustBuild()
	reqBody := map[string]any{
		"itemId": returned.ItemID().String(),
		"start":  returned.Start().Format(time.RFC3339),
		"end":    returned.End().Format(time.RFC3339),
	}

	s.Run("success: returns 201 Created with the waiting booking", func() {
		s.mockBookings.EXPECT().Create(gomock.Any(), s.callerID, gomock.Any()).
			Return(returned, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.callerID.String())

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returned.ID(), response.ID)
		s.Equal(returned.ItemID(), response.ItemID)
		s.Equal(string(booking.StatusWaiting), response.Status)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: itemId (required)", mutate: testutil.Field("itemId", nil)},
			{name: "missing field: start (required)", mutate: testutil.Field("start", nil)},
			{name: "missing field: end (required)", mutate: testutil.Field("end", nil)},
			{name: "malformed itemId", mutate: testutil.Field("itemId", "not-a-uuid")},
			{name: "malformed start timestamp", mutate: testutil.Field("start", "yesterday")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.callerID.String())
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized without caller identity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "caller identity required")
	})

	s.Run("error: 400 Bad Request for malformed identity header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "not-a-uuid")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, middleware.SharerHeader)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			usecaseError   error
			expectedStatus int
		}{
			{name: "unknown booker", usecaseError: usecase.ErrUserNotFound, expectedStatus: http.StatusNotFound},
			{name: "unknown item", usecaseError: usecase.ErrItemNotFound, expectedStatus: http.StatusNotFound},
			{name: "item unavailable", usecaseError: usecase.ErrItemUnavailable, expectedStatus: http.StatusBadRequest},
			{name: "owner books own item", usecaseError: usecase.ErrForbidden, expectedStatus: http.StatusForbidden},
			{name: "start in the past", usecaseError: booking.ErrStartInPast, expectedStatus: http.StatusBadRequest},
			{name: "overlaps approved booking", usecaseError: usecase.ErrBookingConflict, expectedStatus: http.StatusConflict},
			{name: "internal server error", usecaseError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockBookings.EXPECT().Create(gomock.Any(), s.callerID, gomock.Any()).
					Return(nil, tc.usecaseError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.callerID.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestDecide
// ================================================================================

func (s *BookingHandlerTestSuite) TestDecide() {
	decided := builder.NewBookingBuilder().MustBuildWithStatus(booking.StatusApproved)
	url := "/bookings/" + decided.ID().String()

	s.Run("success: approves with approved=true", func() {
		s.mockBookings.EXPECT().Decide(gomock.Any(), s.callerID, decided.ID(), true).
			Return(decided, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, s.callerID.String())

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(string(booking.StatusApproved), response.Status)
	})

	s.Run("success: rejects with approved=false", func() {
		rejected := builder.NewBookingBuilder().MustBuildWithStatus(booking.StatusRejected)
		s.mockBookings.EXPECT().Decide(gomock.Any(), s.callerID, decided.ID(), false).
			Return(rejected, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=false", nil, s.callerID.String())

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(string(booking.StatusRejected), response.Status)
	})

	s.Run("error: 400 Bad Request when approved parameter missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "approved")
	})

	s.Run("error: 400 Bad Request for invalid booking UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/invalid-uuid?approved=true", nil, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: 401 Unauthorized without caller identity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			usecaseError   error
			expectedStatus int
		}{
			{name: "booking not found", usecaseError: usecase.ErrBookingNotFound, expectedStatus: http.StatusNotFound},
			{name: "caller is not the item owner", usecaseError: usecase.ErrForbidden, expectedStatus: http.StatusForbidden},
			{name: "booking already decided", usecaseError: booking.ErrAlreadyDecided, expectedStatus: http.StatusBadRequest},
			{name: "internal server error", usecaseError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockBookings.EXPECT().Decide(gomock.Any(), s.callerID, decided.ID(), true).
					Return(nil, tc.usecaseError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, s.callerID.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	returned := builder.NewBookingBuilder().WithBooker(s.callerID).MustBuild()
	url := "/bookings/" + returned.ID().String()

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockBookings.EXPECT().GetByID(gomock.Any(), s.callerID, returned.ID()).
			Return(returned, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.callerID.String())

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returned.ID(), response.ID)
		s.Equal(returned.BookerID(), response.BookerID)
	})

	s.Run("error: 400 Bad Request for invalid booking UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/invalid-uuid", nil, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: 403 Forbidden for unrelated caller", func() {
		s.mockBookings.EXPECT().GetByID(gomock.Any(), s.callerID, returned.ID()).
			Return(nil, usecase.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockBookings.EXPECT().GetByID(gomock.Any(), s.callerID, returned.ID()).
			Return(nil, usecase.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestListOwn / TestListForOwner
// ================================================================================

func (s *BookingHandlerTestSuite) TestListOwn() {
	url := "/bookings"

	bookings := []*booking.Booking{
		builder.NewBookingBuilder().WithBooker(s.callerID).MustBuild(),
		builder.NewBookingBuilder().WithBooker(s.callerID).MustBuildWithStatus(booking.StatusApproved),
	}

	s.Run("success: empty state defaults to ALL", func() {
		s.mockBookings.EXPECT().ListByBooker(gomock.Any(), s.callerID, booking.StateAll).
			Return(bookings, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.callerID.String())

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: state filter is parsed case-insensitively", func() {
		s.mockBookings.EXPECT().ListByBooker(gomock.Any(), s.callerID, booking.StateWaiting).
			Return(bookings[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?state=waiting", nil, s.callerID.String())

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 400 Bad Request for unknown state", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?state=SOON", nil, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "unknown state")
	})

	s.Run("error: 404 Not Found for unknown caller", func() {
		s.mockBookings.EXPECT().ListByBooker(gomock.Any(), s.callerID, booking.StateAll).
			Return(nil, usecase.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.callerID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *BookingHandlerTestSuite) TestListForOwner() {
	url := "/bookings/owner"

	bookings := []*booking.Booking{
		builder.NewBookingBuilder().MustBuildWithStatus(booking.StatusApproved),
	}

	s.Run("success: returns bookings on owned items", func() {
		s.mockBookings.EXPECT().ListByOwner(gomock.Any(), s.callerID, booking.StateAll).
			Return(bookings, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.callerID.String())

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: state filter reaches the use case", func() {
		s.mockBookings.EXPECT().ListByOwner(gomock.Any(), s.callerID, booking.StateRejected).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?state=REJECTED", nil, s.callerID.String())

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 401 Unauthorized without caller identity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}
