package handlers

import (
	fiber "github.com/gofiber/fiber/v2"
)

// GetSummary handles the executive summary view
func (h *APIHandler) GetSummary(c *fiber.Ctx) error {
	rows, err := h.dashboard.Summary(c.Context())
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgSummaryFailed, err.Error())
	}
	return c.JSON(rows)
}

// GetAnalytics handles the performance analytics view
func (h *APIHandler) GetAnalytics(c *fiber.Ctx) error {
	stats, err := h.dashboard.Analytics(c.Context())
	if err != nil {
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgAnalyticsFailed, err.Error())
	}
	return c.JSON(stats)
}
