package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visitlink/visitation-api/internal/core/ports"
)

type FacilityHandler struct {
	service ports.FacilityService
}

func NewFacilityHandler(service ports.FacilityService) *FacilityHandler {
	return &FacilityHandler{service: service}
}

// Create registers a facility, using default settings when none are given.
//
// @Summary      Create facility
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createFacilityRequest  true  "Facility"
// @Success      201   {object}  domain.Facility
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/facilities [post]
func (h *FacilityHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createFacilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	f, err := h.service.Create(c.Request().Context(), actor, req.Name, req.Settings)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, f)
}

// GetSettings returns a facility with its settings.
//
// @Summary      Get facility settings
// @Tags         facilities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Facility id"
// @Success      200  {object}  domain.Facility
// @Failure      404  {object}  errorResponse
// @Router       /api/facilities/{id}/settings [get]
func (h *FacilityHandler) GetSettings(c echo.Context) error {
	f, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// UpdateSettings applies a partial update. Staff only.
//
// @Summary      Update facility settings
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Facility id"
// @Param        body  body      updateFacilityRequest  true  "Fields to change"
// @Success      200   {object}  domain.Facility
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/facilities/{id}/settings [put]
func (h *FacilityHandler) UpdateSettings(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateFacilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	f, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateFacilityInput{
		Name:     req.Name,
		Settings: req.Settings,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}
