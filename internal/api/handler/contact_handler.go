package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visitlink/visitation-api/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Request asks another user to become a contact.
//
// @Summary      Request contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      contactRequest  true  "Target user and relationship"
// @Success      200   {object}  domain.Contact
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/contacts/request [post]
func (h *ContactHandler) Request(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req contactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Request(c.Request().Context(), user, req.ContactID, req.Relationship)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Approve sets the status and/or relationship of a request addressed to the caller.
//
// @Summary      Review contact request
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Contact id"
// @Param        body  body      reviewContactRequest  true  "Fields to change"
// @Success      200   {object}  domain.Contact
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/contacts/{id}/approve [put]
func (h *ContactHandler) Approve(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req reviewContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Review(c.Request().Context(), user, c.Param("id"), ports.ReviewContactInput{
		Status:       req.Status,
		Relationship: req.Relationship,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contact)
}

// Pending lists requests waiting for the caller's review.
//
// @Summary      Pending contact requests
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Contact
// @Router       /api/contacts/pending [get]
func (h *ContactHandler) Pending(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.ListPending(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contacts)
}
