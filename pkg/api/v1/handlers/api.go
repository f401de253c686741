package handlers

import (
	"errors"
	"strconv"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/crewline/crewline/internal/services"
)

// HeaderUserID carries the acting user's id. Session management lives in
// front of this service; the header is the session provider's contract.
const HeaderUserID = "X-User-ID"

// APIHandler bundles the services behind the HTTP surface
type APIHandler struct {
	project   *services.Project
	task      *services.Task
	user      *services.User
	leave     *services.Leave
	dashboard *services.Dashboard
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(project *services.Project, task *services.Task, user *services.User, leave *services.Leave, dashboard *services.Dashboard) *APIHandler {
	return &APIHandler{
		project:   project,
		task:      task,
		user:      user,
		leave:     leave,
		dashboard: dashboard,
	}
}

// actor resolves the acting user from the request headers
func (h *APIHandler) actor(c *fiber.Ctx) (services.Actor, error) {
	raw := c.Get(HeaderUserID)
	if raw == "" {
		return services.Actor{}, errors.New("missing user header")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return services.Actor{}, err
	}
	user, err := h.user.GetUserByID(c.Context(), uint(id))
	if err != nil {
		return services.Actor{}, err
	}
	return services.Actor{ID: user.ID, Role: user.Role}, nil
}

// idParam parses the :id route parameter
func idParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// respondWithError sends a consistent error payload
func respondWithError(c *fiber.Ctx, status int, msg string, details interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   msg,
		"details": details,
	})
}

// respondServiceError maps service-layer sentinel errors onto HTTP statuses
func respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	var rejection *services.RejectionError
	switch {
	case errors.Is(err, services.ErrNotAuthorized):
		return respondWithError(c, fiber.StatusForbidden, ErrMsgForbidden, err.Error())
	case errors.Is(err, services.ErrTimerAlreadyRunning),
		errors.Is(err, services.ErrTimerNotRunning),
		errors.Is(err, services.ErrReasonRequired):
		return respondWithError(c, fiber.StatusConflict, err.Error(), nil)
	case errors.As(err, &rejection):
		return respondWithError(c, fiber.StatusUnprocessableEntity, rejection.Reason, nil)
	default:
		return respondWithError(c, fiber.StatusInternalServerError, fallback, err.Error())
	}
}
