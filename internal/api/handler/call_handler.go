package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/visitlink/visitation-api/internal/api/metrics"
	"github.com/visitlink/visitation-api/internal/core/ports"
)

// CallHandler handles HTTP requests for the video-call lifecycle.
type CallHandler struct {
	service ports.CallService
}

func NewCallHandler(service ports.CallService) *CallHandler {
	return &CallHandler{service: service}
}

// Create handles POST /api/calls/create.
//
// @Summary      Schedule a video call
// @Tags         calls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCallRequest  true  "Call details"
// @Success      200   {object}  createCallResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/calls/create [post]
func (h *CallHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createCallRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), user, ports.CreateCallInput{
		ScheduledStart:    req.ScheduledStart,
		ScheduledDuration: req.ScheduledDuration,
		MaxParticipants:   req.MaxParticipants,
		ParticipantIDs:    req.ParticipantIDs,
		RecordingEnabled:  req.RecordingEnabled,
	})
	if err != nil {
		metrics.CallErrorsTotal.WithLabelValues("create", metrics.Reason(err)).Inc()
		return err
	}

	metrics.CallsCreatedTotal.WithLabelValues(strconv.FormatBool(res.Call.RecordingEnabled)).Inc()
	metrics.TokensIssuedTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusOK, createCallResponse{VideoCall: res.Call, Token: res.Token})
}

// Join handles POST /api/calls/:id/join.
//
// @Summary      Join a video call
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Call id"
// @Success      200  {object}  joinCallResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/calls/{id}/join [post]
func (h *CallHandler) Join(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	res, err := h.service.Join(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		metrics.CallErrorsTotal.WithLabelValues("join", metrics.Reason(err)).Inc()
		return err
	}

	metrics.CallJoinsTotal.WithLabelValues(string(user.Role)).Inc()
	metrics.TokensIssuedTotal.WithLabelValues("join").Inc()

	return c.JSON(http.StatusOK, joinCallResponse{
		RoomName:         res.RoomName,
		RecordingEnabled: res.RecordingEnabled,
		Duration:         res.Duration,
		Token:            res.Token,
	})
}

// Token handles GET /api/calls/token?room=&user=.
//
// @Summary      Issue a room token for the caller
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Param        room  query     string  true  "Room name"
// @Param        user  query     string  true  "User id (must be the caller)"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/calls/token [get]
func (h *CallHandler) Token(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	room, target := c.QueryParam("room"), c.QueryParam("user")
	if room == "" || target == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room and user are required")
	}

	token, err := h.service.IssueToken(c.Request().Context(), user, room, target)
	if err != nil {
		metrics.CallErrorsTotal.WithLabelValues("token", metrics.Reason(err)).Inc()
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("token").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Scheduled handles GET /api/calls/scheduled.
//
// @Summary      List scheduled calls visible to the caller
// @Tags         calls
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.VideoCall
// @Failure      401  {object}  errorResponse
// @Router       /api/calls/scheduled [get]
func (h *CallHandler) Scheduled(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	calls, err := h.service.ListScheduled(c.Request().Context(), user)
	if err != nil {
		metrics.CallErrorsTotal.WithLabelValues("list", metrics.Reason(err)).Inc()
		return err
	}
	return c.JSON(http.StatusOK, calls)
}
