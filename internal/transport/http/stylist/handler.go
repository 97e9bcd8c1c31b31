// Package stylist serves the stylist proxy endpoint.
package stylist

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/xiaot623/neuralthreads/internal/domain"
	"github.com/xiaot623/neuralthreads/internal/service"
)

// CORS headers sent on every stylist response.
const (
	AllowOrigin  = "*"
	AllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// Service is the stylist behaviour the handler needs.
type Service interface {
	Stylist(ctx context.Context, req domain.StylistRequest) (*domain.StylistResponse, error)
}

// Handler handles stylist proxy HTTP requests.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new stylist handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers stylist routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/ai-stylist", h.Ask)
	e.OPTIONS("/ai-stylist", h.Preflight)
}

func setCORS(c echo.Context) {
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, AllowOrigin)
	c.Response().Header().Set(echo.HeaderAccessControlAllowHeaders, AllowHeaders)
}

// Preflight answers CORS preflight requests with headers only.
// OPTIONS /ai-stylist
func (h *Handler) Preflight(c echo.Context) error {
	setCORS(c)
	return c.NoContent(http.StatusOK)
}

// Ask forwards a styling question to the upstream model.
// POST /ai-stylist
func (h *Handler) Ask(c echo.Context) error {
	setCORS(c)

	var req domain.StylistRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("invalid stylist request body", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, service.DegradedStylistResponse(err))
	}

	resp, err := h.service.Stylist(c.Request().Context(), req)
	if err != nil {
		var se *service.StylistError
		if errors.As(err, &se) {
			return c.JSON(http.StatusInternalServerError, domain.StylistResponse{Error: se.Error(), Response: se.Response})
		}
		return c.JSON(http.StatusInternalServerError, service.DegradedStylistResponse(err))
	}

	return c.JSON(http.StatusOK, resp)
}
