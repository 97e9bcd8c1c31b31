// Package v1 provides the booking, profile and directory HTTP handlers.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/domain"
	"github.com/xiaot623/neuralthreads/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	logger  *zap.Logger
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers external routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/create-booking", h.CreateBooking)
	e.PATCH("/bookings/:id", h.UpdateBookingStatus)
	e.GET("/designers/:id/bookings", h.ListDesignerBookings)

	e.PUT("/profiles/:user_id", h.SaveProfile)
	e.GET("/profiles/:user_id", h.GetProfile)
	e.GET("/designers", h.SearchDesigners)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var te *service.TransitionError
	if errors.As(err, &te) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, domain.ErrorResponse{Error: msg})
}
