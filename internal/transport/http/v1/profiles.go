package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/neuralthreads/internal/domain"
)

// SaveProfile validates and upserts a customer or designer profile.
// PUT /profiles/:user_id
func (h *Handler) SaveProfile(c echo.Context) error {
	userID := c.Param("user_id")

	var req domain.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	profile, session, err := h.service.SaveProfile(c.Request().Context(), userID, req)
	if err != nil {
		return errorJSON(c, errorStatus(err), err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":    profile,
		"session": session,
	})
}

// GetProfile returns a stored profile.
// GET /profiles/:user_id?user_type=customer|designer
func (h *Handler) GetProfile(c echo.Context) error {
	userID := c.Param("user_id")
	userType := domain.UserType(c.QueryParam("user_type"))
	if userType == "" {
		userType = domain.UserTypeCustomer
	}

	profile, err := h.service.GetProfile(c.Request().Context(), userID, userType)
	if err != nil {
		return errorJSON(c, errorStatus(err), err.Error())
	}
	if profile == nil {
		return errorJSON(c, http.StatusNotFound, "profile not found")
	}

	return c.JSON(http.StatusOK, domain.DataResponse{Data: profile})
}

// SearchDesigners lists the designer directory.
// GET /designers?q=&location=&specialization=&limit=
func (h *Handler) SearchDesigners(c echo.Context) error {
	filter := domain.DesignerFilter{
		Query:          c.QueryParam("q"),
		Location:       c.QueryParam("location"),
		Specialization: c.QueryParam("specialization"),
	}
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			filter.Limit = val
		}
	}

	designers, err := h.service.SearchDesigners(c.Request().Context(), filter)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, domain.DataResponse{Data: designers})
}
