package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator"
	"github.com/travigo/lineplanner/pkg/dataaggregator/global"
	"github.com/travigo/lineplanner/pkg/dataaggregator/query"
	"github.com/travigo/lineplanner/pkg/timetable"
)

func TripsRouter(router fiber.Router) {
	router.Get("/", getRouteTrips)
	router.Get("/search", searchTrips)
}

func getRouteTrips(c *fiber.Ctx) error {
	origin, destination, err := lookupRoute(c)
	if err != nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	trips, err := dataaggregator.Lookup[[]*ctdf.Trip](query.RouteTrips{
		OriginRef:      origin.PrimaryIdentifier,
		DestinationRef: destination.PrimaryIdentifier,
	})
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return sendTrips(c, trips)
}

func searchTrips(c *fiber.Ctx) error {
	date := ctdf.DateOf(global.Now())
	if dateString := c.Query("date"); dateString != "" {
		var err error
		date, err = ctdf.ParseDate(dateString)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter date should be formatted as YYYY-MM-DD",
			})
		}
	}

	options, err := parseSearchOptions(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	search := query.Search{
		Date:    date,
		Options: options,
	}

	if from := c.Query("from"); from != "" {
		origin, err := lookupStation(from)
		if err != nil {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Could not find origin Station",
			})
		}
		search.OriginRef = origin.PrimaryIdentifier
	}
	if to := c.Query("to"); to != "" {
		destination, err := lookupStation(to)
		if err != nil {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "Could not find destination Station",
			})
		}
		search.DestinationRef = destination.PrimaryIdentifier
	}

	trips, err := dataaggregator.Lookup[[]*ctdf.Trip](search)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return sendTrips(c, trips)
}

func parseSearchOptions(c *fiber.Ctx) (timetable.SearchOptions, error) {
	options := timetable.SearchOptions{
		SortBy:          timetable.SortOrder(c.Query("sort", string(timetable.SortRecommended))),
		EcoFriendlyOnly: c.QueryBool("eco", false),
		Expression:      c.Query("expression"),
	}

	if c.Query("min_price") != "" || c.Query("max_price") != "" {
		minPrice, err := strconv.Atoi(c.Query("min_price", "0"))
		if err != nil {
			return options, errors.New("Parameter min_price should be an integer")
		}
		maxPrice, err := strconv.Atoi(c.Query("max_price", "100"))
		if err != nil {
			return options, errors.New("Parameter max_price should be an integer")
		}

		options.PriceRange = &timetable.PriceRange{Min: minPrice, Max: maxPrice}
	}

	if c.Query("depart_after") != "" || c.Query("depart_before") != "" {
		from, err := ctdf.ParseClockTime(c.Query("depart_after", "00:00"))
		if err != nil {
			return options, errors.New("Parameter depart_after should be formatted as HH:MM")
		}
		to, err := ctdf.ParseClockTime(c.Query("depart_before", "23:59"))
		if err != nil {
			return options, errors.New("Parameter depart_before should be formatted as HH:MM")
		}

		options.DepartureRange = &timetable.TimeRange{From: from, To: to}
	}

	if via := c.Query("via"); via != "" {
		options.ViaStations = strings.Split(via, ",")
	}

	if minimumOnTime := c.Query("min_on_time"); minimumOnTime != "" {
		value, err := strconv.Atoi(minimumOnTime)
		if err != nil {
			return options, errors.New("Parameter min_on_time should be an integer")
		}
		options.MinimumOnTimePerformance = value
	}

	return options, nil
}

func lookupRoute(c *fiber.Ctx) (*ctdf.Station, *ctdf.Station, error) {
	origin, err := lookupStation(c.Query("from"))
	if err != nil {
		return nil, nil, errors.New("Could not find origin Station")
	}

	destination, err := lookupStation(c.Query("to"))
	if err != nil {
		return nil, nil, errors.New("Could not find destination Station")
	}

	return origin, destination, nil
}

func sendTrips(c *fiber.Ctx, trips []*ctdf.Trip) error {
	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	tripsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, trips)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce trips",
		})
	}

	return c.JSON(tripsReduced)
}
