package routes

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator"
	"github.com/travigo/lineplanner/pkg/dataaggregator/global"
	"github.com/travigo/lineplanner/pkg/dataaggregator/query"
)

func StationsRouter(router fiber.Router) {
	router.Get("/", listStations)
	router.Get("/nearest", getNearestStation)
	router.Get("/:identifier", getStation)
	router.Get("/:identifier/departures", getStationDepartures)
	router.Get("/:identifier/destinations", getStationDestinations)
}

func listStations(c *fiber.Ctx) error {
	stations, err := dataaggregator.Lookup[[]*ctdf.Station](query.Stations{})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	stationsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, stations)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce stations",
		})
	}

	return c.JSON(stationsReduced)
}

func getStation(c *fiber.Ctx) error {
	station, err := lookupStation(c.Params("identifier"))
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Station matching Station Identifier",
		})
	}

	stationReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, station)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce station",
		})
	}

	return c.JSON(stationReduced)
}

func getNearestStation(c *fiber.Ctx) error {
	latitude, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	longitude, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameters lat and lon should be decimal degrees",
		})
	}

	station, err := dataaggregator.Lookup[*ctdf.Station](query.NearestStation{
		Location: ctdf.NewLocation(latitude, longitude),
	})
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	distance := station.Location.Distance(ctdf.NewLocation(latitude, longitude))

	stationReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, station)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce station",
		})
	}

	return c.JSON(fiber.Map{
		"station":  stationReduced,
		"distance": int(distance),
	})
}

func getStationDepartures(c *fiber.Ctx) error {
	count, err := strconv.Atoi(c.Query("count", "25"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter count should be an integer",
		})
	}

	station, err := lookupStation(c.Params("identifier"))
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Station matching Station Identifier",
		})
	}

	var startDateTime time.Time
	if startDateTimeString := c.Query("datetime"); startDateTimeString == "" {
		startDateTime = global.Now()
	} else {
		startDateTime, err = time.Parse(time.RFC3339, startDateTimeString)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter datetime should be an RFC3339/ISO8601 datetime",
			})
		}
	}

	departures, err := dataaggregator.Lookup[[]*ctdf.Trip](query.Departures{
		StationRef:    station.PrimaryIdentifier,
		Count:         count,
		StartDateTime: startDateTime,
	})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return sendTrips(c, departures)
}

func getStationDestinations(c *fiber.Ctx) error {
	station, err := lookupStation(c.Params("identifier"))
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Station matching Station Identifier",
		})
	}

	destinations, err := dataaggregator.Lookup[[]string](query.Destinations{
		StationRef: station.PrimaryIdentifier,
	})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(destinations)
}

// lookupStation accepts either a primary identifier or a short code
func lookupStation(identifier string) (*ctdf.Station, error) {
	station, err := dataaggregator.Lookup[*ctdf.Station](query.Station{PrimaryIdentifier: identifier})
	if err == nil {
		return station, nil
	}

	return dataaggregator.Lookup[*ctdf.Station](query.Station{ShortCode: identifier})
}
