package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/lineplanner/pkg/api/stats"
)

func Stats(c *fiber.Ctx) error {
	if stats.CurrentRecordsStats == nil {
		c.SendStatus(fiber.StatusServiceUnavailable)
		return c.JSON(fiber.Map{
			"error": "Stats have not been computed yet",
		})
	}

	return c.JSON(stats.CurrentRecordsStats)
}
