package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shareit/sharing-service/internal/model"
)

func (h *Handler) CreateRequest(c echo.Context) error {
	requestorID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	var req model.CreateItemRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	created, err := h.requestSvc.CreateRequest(c.Request().Context(), req, requestorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, created)
}

func (h *Handler) ListOwnRequests(c echo.Context) error {
	requestorID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	reqs, err := h.requestSvc.ListOwnRequests(c.Request().Context(), requestorID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reqs)
}

func (h *Handler) ListAllRequests(c echo.Context) error {
	callerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	from, size, err := paging(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reqs, err := h.requestSvc.ListAllRequests(c.Request().Context(), callerID, from, size)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reqs)
}

func (h *Handler) GetRequest(c echo.Context) error {
	callerID, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req, err := h.requestSvc.GetRequest(c.Request().Context(), requestID, callerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, req)
}
