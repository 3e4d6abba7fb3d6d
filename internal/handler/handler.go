package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shareit/sharing-service/internal/errs"
	md "github.com/shareit/sharing-service/pkg/middleware"
	"github.com/shareit/sharing-service/pkg/validate"
)

// HeaderUserID carries the caller identity on every authenticated endpoint.
const HeaderUserID = "X-Sharer-User-Id"

type Handler struct {
	bookingSvc BookingService
	itemSvc    ItemService
	userSvc    UserService
	requestSvc RequestService
	log        *zap.Logger
}

func New(booking BookingService, item ItemService, user UserService, request RequestService, log *zap.Logger) *Handler {
	return &Handler{
		bookingSvc: booking,
		itemSvc:    item,
		userSvc:    user,
		requestSvc: request,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/bookings", h.CreateBooking)
	api.PATCH("/bookings/:bookingId", h.SetApproval)
	api.GET("/bookings/owner", h.ListOwnerBookings)
	api.GET("/bookings/:bookingId", h.GetBooking)
	api.GET("/bookings", h.ListBookerBookings)

	api.POST("/items", h.CreateItem)
	api.PATCH("/items/:itemId", h.UpdateItem)
	api.GET("/items/search", h.SearchItems)
	api.GET("/items/:itemId", h.GetItem)
	api.GET("/items", h.ListItems)
	api.DELETE("/items/:itemId", h.DeleteItem)
	api.POST("/items/:itemId/comment", h.AddComment)

	api.POST("/users", h.CreateUser)
	api.GET("/users/:userId", h.GetUser)
	api.GET("/users", h.ListUsers)
	api.PATCH("/users/:userId", h.UpdateUser)
	api.DELETE("/users/:userId", h.DeleteUser)

	api.POST("/requests", h.CreateRequest)
	api.GET("/requests/all", h.ListAllRequests)
	api.GET("/requests/:requestId", h.GetRequest)
	api.GET("/requests", h.ListOwnRequests)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// userID extracts the caller identity from the X-Sharer-User-Id header.
func userID(c echo.Context) (int64, error) {
	v := c.Request().Header.Get(HeaderUserID)
	if v == "" {
		return 0, errors.New("X-Sharer-User-Id header is required")
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("X-Sharer-User-Id header is invalid")
	}
	return id, nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("%s is invalid", name)
	}
	return id, nil
}

// paging parses the from/size query parameters with the original wire
// defaults (from=0, size=10).
func paging(c echo.Context) (from, size int, err error) {
	from, size = 0, 10
	if fromParam := c.QueryParam("from"); fromParam != "" {
		if from, err = strconv.Atoi(fromParam); err != nil || from < 0 {
			return 0, 0, errors.New("from is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if size, err = strconv.Atoi(sizeParam); err != nil || size <= 0 {
			return 0, 0, errors.New("size is invalid")
		}
	}
	return from, size, nil
}

// httpError maps the service error taxonomy onto status codes. Not-found
// and authorization failures are deliberately the same code.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrUnavailable),
		errors.Is(err, errs.ErrUnchangeableStatus),
		errors.Is(err, errs.ErrBadRequest):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
