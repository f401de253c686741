package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/crewline/crewline/internal/db/models"
)

// getPaginationOptions returns a ListOptions struct built from the page query
// parameter
func getPaginationOptions(c *fiber.Ctx) *models.ListOptions {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return &models.ListOptions{
		Limit:  models.DefaultLimit,
		Offset: (page - 1) * models.DefaultLimit,
	}
}
