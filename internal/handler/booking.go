package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shareit/sharing-service/internal/model"
)

func (h *Handler) CreateBooking(c echo.Context) error {
	bookerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var req model.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	booking, err := h.bookingSvc.CreateBooking(c.Request().Context(), req, bookerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) SetApproval(c echo.Context) error {
	ownerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approved is invalid")
	}

	booking, err := h.bookingSvc.SetApproval(c.Request().Context(), bookingID, approved, ownerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) GetBooking(c echo.Context) error {
	callerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookingSvc.GetBooking(c.Request().Context(), bookingID, callerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) ListBookerBookings(c echo.Context) error {
	return h.listBookings(c, false)
}

func (h *Handler) ListOwnerBookings(c echo.Context) error {
	return h.listBookings(c, true)
}

func (h *Handler) listBookings(c echo.Context, isOwner bool) error {
	subjectID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	state, err := model.ParseState(c.QueryParam("state"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	from, size, err := paging(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bookings, err := h.bookingSvc.ListBookings(c.Request().Context(), model.BookingFilter{
		State:   state,
		UserID:  subjectID,
		IsOwner: isOwner,
		From:    from,
		Size:    size,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}
