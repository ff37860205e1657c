package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator"
	"github.com/travigo/lineplanner/pkg/dataaggregator/query"
)

func FaresRouter(router fiber.Router) {
	router.Get("/", getFareQuote)
}

func TravelTimeRouter(router fiber.Router) {
	router.Get("/", getTravelTime)
}

// getFareQuote takes station identifiers or codes in from/to, or display names in from_name/to_name.
// Unknown stations still produce the fallback fare.
func getFareQuote(c *fiber.Ctx) error {
	fareQuery := query.FareQuote{
		OriginName:      c.Query("from_name"),
		DestinationName: c.Query("to_name"),
	}

	if from := c.Query("from"); from != "" {
		fareQuery.OriginRef = from
		if station, err := lookupStation(from); err == nil {
			fareQuery.OriginRef = station.PrimaryIdentifier
		}
	}
	if to := c.Query("to"); to != "" {
		fareQuery.DestinationRef = to
		if station, err := lookupStation(to); err == nil {
			fareQuery.DestinationRef = station.PrimaryIdentifier
		}
	}

	quote, err := dataaggregator.Lookup[ctdf.FareQuote](fareQuery)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	quoteReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, quote)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce fare quote",
		})
	}

	return c.JSON(quoteReduced)
}

// getTravelTime works on display names, 0 when either is unknown
func getTravelTime(c *fiber.Ctx) error {
	quote, err := dataaggregator.Lookup[ctdf.FareQuote](query.FareQuote{
		OriginName:      c.Query("from"),
		DestinationName: c.Query("to"),
	})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"minutes":  quote.TravelTimeMinutes,
		"duration": ctdf.FormatDuration(quote.TravelTimeMinutes),
	})
}
