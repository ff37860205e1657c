package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator"
	"github.com/travigo/lineplanner/pkg/dataaggregator/global"
	"github.com/travigo/lineplanner/pkg/dataaggregator/query"
	"github.com/travigo/lineplanner/pkg/gtfsrt"
)

func RealtimeRouter(router fiber.Router) {
	router.Get("/trip_updates", getTripUpdates)
}

func getTripUpdates(c *fiber.Ctx) error {
	delayedTrips, err := dataaggregator.Lookup[[]*ctdf.Trip](query.Trips{
		Status: ctdf.TripStatusDelayed,
	})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	feed := gtfsrt.BuildFeed(delayedTrips, global.Now(), global.Location)

	if c.Query("format") == "json" {
		return c.JSON(feed)
	}

	data, err := gtfsrt.Encode(feed)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "application/x-protobuf")
	return c.Send(data)
}
