package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/domain"
)

// CreateBooking inserts a pending booking.
// POST /create-booking
func (h *Handler) CreateBooking(c echo.Context) error {
	var req domain.BookingRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.service.CreateBooking(c.Request().Context(), req)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("create booking failed", zap.Error(err))
		}
		return errorJSON(c, status, err.Error())
	}

	return c.JSON(http.StatusOK, domain.DataResponse{Data: booking})
}

// ListDesignerBookings lists a designer's bookings, newest first.
// GET /designers/:id/bookings
func (h *Handler) ListDesignerBookings(c echo.Context) error {
	bookings, err := h.service.ListDesignerBookings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, errorStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, domain.DataResponse{Data: bookings})
}

// UpdateBookingStatus moves a booking to a new status.
// PATCH /bookings/:id
func (h *Handler) UpdateBookingStatus(c echo.Context) error {
	var req domain.BookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.service.UpdateBookingStatus(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		status := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("update booking status failed", zap.Error(err))
		}
		return errorJSON(c, status, err.Error())
	}
	if booking == nil {
		return errorJSON(c, http.StatusNotFound, "booking not found")
	}

	return c.JSON(http.StatusOK, domain.DataResponse{Data: booking})
}
