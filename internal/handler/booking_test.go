package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareit/sharing-service/internal/errs"
	"github.com/shareit/sharing-service/internal/handler"
	service_mocks "github.com/shareit/sharing-service/internal/handler/mocks"
	"github.com/shareit/sharing-service/internal/model"
	"github.com/shareit/sharing-service/pkg/validate"
)

func testBooking() model.Booking {
	b := model.Booking{
		ID:         1,
		ItemID:     3,
		BookerID:   2,
		Start:      time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2030, 1, 4, 0, 0, 0, 0, time.UTC),
		Status:     model.StatusWaiting,
		ItemName:   "drill",
		BookerName: "booker",
	}
	b.BuildRefs()
	return b
}

const testBookingJSON = `{"id":1,"start":"2030-01-02T00:00:00Z","end":"2030-01-04T00:00:00Z","status":"WAITING",` +
	`"booker":{"id":2,"name":"booker"},"item":{"id":3,"name":"drill"}}`

func newBookingEcho(t *testing.T) (*echo.Echo, *service_mocks.MockBookingService) {
	t.Helper()
	c := gomock.NewController(t)
	t.Cleanup(c.Finish)
	svc := service_mocks.NewMockBookingService(c)
	log := zap.NewExample().Named("test")
	h := handler.New(svc, nil, nil, nil, log)

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.POST("/bookings", h.CreateBooking)
	e.PATCH("/bookings/:bookingId", h.SetApproval)
	e.GET("/bookings/:bookingId", h.GetBooking)
	e.GET("/bookings", h.ListBookerBookings)
	e.GET("/bookings/owner", h.ListOwnerBookings)
	return e, svc
}

func TestHandler_CreateBooking(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookingService)

	var tests = []struct {
		name         string
		body         string
		userHeader   string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:       "ok",
			body:       `{"itemId":3,"start":"2030-01-02T00:00:00Z","end":"2030-01-04T00:00:00Z"}`,
			userHeader: "2",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					CreateBooking(context.Background(), model.CreateBookingRequest{
						ItemID: 3,
						Start:  time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
						End:    time.Date(2030, 1, 4, 0, 0, 0, 0, time.UTC),
					}, int64(2)).
					Return(testBooking(), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: testBookingJSON,
		},
		{
			name:         "err. no user header",
			body:         `{"itemId":3,"start":"2030-01-02T00:00:00Z","end":"2030-01-04T00:00:00Z"}`,
			userHeader:   "",
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"X-Sharer-User-Id header is required"}`,
		},
		{
			name:         "err. end before start",
			body:         `{"itemId":3,"start":"2030-01-04T00:00:00Z","end":"2030-01-02T00:00:00Z"}`,
			userHeader:   "2",
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:       "err. item unavailable",
			body:       `{"itemId":3,"start":"2030-01-02T00:00:00Z","end":"2030-01-04T00:00:00Z"}`,
			userHeader: "2",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					CreateBooking(context.Background(), gomock.Any(), int64(2)).
					Return(model.Booking{}, errs.ErrUnavailable)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"not available for booking"}`,
		},
		{
			name:       "err. item not found",
			body:       `{"itemId":3,"start":"2030-01-02T00:00:00Z","end":"2030-01-04T00:00:00Z"}`,
			userHeader: "3",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					CreateBooking(context.Background(), gomock.Any(), int64(3)).
					Return(model.Booking{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"not found"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc := newBookingEcho(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.userHeader != "" {
				r.Header.Set(handler.HeaderUserID, tt.userHeader)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestHandler_SetApproval(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookingService)

	approved := testBooking()
	approved.Status = model.StatusApproved

	var tests = []struct {
		name         string
		target       string
		userHeader   string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:       "ok approve",
			target:     "/bookings/1?approved=true",
			userHeader: "5",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					SetApproval(context.Background(), int64(1), true, int64(5)).
					Return(approved, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: strings.Replace(testBookingJSON, "WAITING", "APPROVED", 1),
		},
		{
			name:         "err. approved param invalid",
			target:       "/bookings/1?approved=maybe",
			userHeader:   "5",
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"approved is invalid"}`,
		},
		{
			name:       "err. already decided",
			target:     "/bookings/1?approved=false",
			userHeader: "5",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					SetApproval(context.Background(), int64(1), false, int64(5)).
					Return(model.Booking{}, errs.ErrUnchangeableStatus)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"booking status can no longer be changed"}`,
		},
		{
			name:       "err. not the owner",
			target:     "/bookings/1?approved=true",
			userHeader: "6",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					SetApproval(context.Background(), int64(1), true, int64(6)).
					Return(model.Booking{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"message":"not found"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc := newBookingEcho(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodPatch, tt.target, http.NoBody)
			r.Header.Set(handler.HeaderUserID, tt.userHeader)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHandler_GetBooking(t *testing.T) {
	t.Parallel()
	e, svc := newBookingEcho(t)
	svc.EXPECT().
		GetBooking(context.Background(), int64(1), int64(2)).
		Return(testBooking(), nil)

	r := httptest.NewRequest(http.MethodGet, "/bookings/1", http.NoBody)
	r.Header.Set(handler.HeaderUserID, "2")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, testBookingJSON, w.Body.String())
}

func TestHandler_ListBookings(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockBookingService)

	var tests = []struct {
		name         string
		target       string
		userHeader   string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name:       "ok booker defaults",
			target:     "/bookings",
			userHeader: "2",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					ListBookings(context.Background(), model.BookingFilter{
						State: model.StateAll, UserID: 2, IsOwner: false, From: 0, Size: 10,
					}).
					Return([]model.Booking{testBooking()}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[` + testBookingJSON + `]`,
		},
		{
			name:       "ok owner waiting paged",
			target:     "/bookings/owner?state=WAITING&from=5&size=1",
			userHeader: "5",
			mockBehavior: func(r *service_mocks.MockBookingService) {
				r.EXPECT().
					ListBookings(context.Background(), model.BookingFilter{
						State: model.StateWaiting, UserID: 5, IsOwner: true, From: 5, Size: 1,
					}).
					Return([]model.Booking{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name:         "err. unknown state",
			target:       "/bookings?state=SOMEDAY",
			userHeader:   "2",
			mockBehavior: func(r *service_mocks.MockBookingService) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Unknown state: SOMEDAY: bad request"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, svc := newBookingEcho(t)
			tt.mockBehavior(svc)

			r := httptest.NewRequest(http.MethodGet, tt.target, http.NoBody)
			r.Header.Set(handler.HeaderUserID, tt.userHeader)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
