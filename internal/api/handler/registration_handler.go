package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visitlink/visitation-api/internal/api/metrics"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

// RegistrationHandler serves the public sign-up wizard.
type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// Start opens a registration and returns its email verification token.
//
// @Summary      Start registration
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      registrationStartRequest  true  "Email and user type"
// @Success      200   {object}  registrationStartResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/registration/start [post]
func (h *RegistrationHandler) Start(c echo.Context) error {
	var req registrationStartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Start(c.Request().Context(), req.Email, req.UserType)
	if err != nil {
		return err
	}

	metrics.RegistrationsStartedTotal.WithLabelValues(req.UserType).Inc()
	return c.JSON(http.StatusOK, registrationStartResponse{
		RegistrationID:    res.RegistrationID,
		VerificationToken: res.VerificationToken,
		ExpiresAt:         res.ExpiresAt,
	})
}

// VerifyEmail confirms ownership of the address a registration was started for.
//
// @Summary      Verify registration email
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      verifyEmailRequest  true  "Email and token"
// @Success      200   {object}  verifyEmailResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/registration/verify-email [post]
func (h *RegistrationHandler) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.VerifyEmail(c.Request().Context(), req.Email, req.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, verifyEmailResponse{Verified: true})
}

// PersonalInfo validates the personal details step.
//
// @Summary      Submit personal info
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      personalInfoRequest  true  "Personal details"
// @Success      200   {object}  stepResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/registration/personal-info [post]
func (h *RegistrationHandler) PersonalInfo(c echo.Context) error {
	var req personalInfoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stepResponse{Status: "success"})
}

// VerifyIdentity validates the identity document step.
//
// @Summary      Submit identity document
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      verifyIdentityRequest  true  "Identity document"
// @Success      200   {object}  stepResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/registration/verify-identity [post]
func (h *RegistrationHandler) VerifyIdentity(c echo.Context) error {
	var req verifyIdentityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stepResponse{Status: "success"})
}

// Relationships validates the contacts step; each contact needs a label.
//
// @Summary      Submit relationships
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      relationshipsRequest  true  "Contacts and labels"
// @Success      200   {object}  stepResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/registration/relationships [post]
func (h *RegistrationHandler) Relationships(c echo.Context) error {
	var req relationshipsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if len(req.Contacts) != len(req.Relationships) {
		return echo.NewHTTPError(http.StatusBadRequest, "contacts and relationships must have the same length")
	}
	return c.JSON(http.StatusOK, stepResponse{Status: "success"})
}
