package timetable

import (
	"sort"
	"time"

	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/stations"
	"golang.org/x/exp/slices"
)

// Engine answers queries over a generated trip set.
// Neither the registry nor the trips are modified after construction so queries need no locking.
type Engine struct {
	Registry *stations.Registry
	Trips    []*ctdf.Trip

	MinutesPerStation int
	Location          *time.Location
}

func NewEngine(registry *stations.Registry, trips []*ctdf.Trip) *Engine {
	return &Engine{
		Registry:          registry,
		Trips:             trips,
		MinutesPerStation: 3,
		Location:          time.Local,
	}
}

func (e *Engine) TripsForRoute(fromID string, toID string) []*ctdf.Trip {
	trips := []*ctdf.Trip{}

	for _, trip := range e.Trips {
		if trip.Origin.PrimaryIdentifier == fromID && trip.Destination.PrimaryIdentifier == toID {
			trips = append(trips, trip)
		}
	}

	return trips
}

func (e *Engine) TripsForDate(date ctdf.Date) []*ctdf.Trip {
	trips := []*ctdf.Trip{}

	for _, trip := range e.Trips {
		if trip.DepartureDate == date {
			trips = append(trips, trip)
		}
	}

	return trips
}

// NextDepartures lists departures from a station later today than now, soonest first
func (e *Engine) NextDepartures(stationID string, limit int, now time.Time) []*ctdf.Trip {
	departures := []*ctdf.Trip{}
	if limit <= 0 {
		return departures
	}

	now = now.In(e.TimeZone())
	today := ctdf.DateOf(now)
	currentTime := ctdf.ClockTimeOf(now)

	for _, trip := range e.Trips {
		if trip.Origin.PrimaryIdentifier == stationID && trip.DepartureDate == today && trip.DepartureTime >= currentTime {
			departures = append(departures, trip)
		}
	}

	sort.SliceStable(departures, func(i, j int) bool {
		return departures[i].DepartureTime < departures[j].DepartureTime
	})

	if len(departures) > limit {
		departures = departures[:limit]
	}

	return departures
}

// ReachableDestinations returns the distinct destination names served from a station in alphabetical order
func (e *Engine) ReachableDestinations(stationID string) []string {
	seen := map[string]bool{}
	destinations := []string{}

	for _, trip := range e.Trips {
		if trip.Origin.PrimaryIdentifier == stationID && !seen[trip.Destination.PrimaryName] {
			seen[trip.Destination.PrimaryName] = true
			destinations = append(destinations, trip.Destination.PrimaryName)
		}
	}

	slices.Sort(destinations)

	return destinations
}

// TravelTime is in minutes between two stations looked up by display name, zero if either is unknown
func (e *Engine) TravelTime(fromName string, toName string) int {
	from, ok := e.Registry.ByName(fromName)
	if !ok {
		return 0
	}
	to, ok := e.Registry.ByName(toName)
	if !ok {
		return 0
	}

	distance, _ := e.Registry.Distance(from.PrimaryIdentifier, to.PrimaryIdentifier)

	return distance * e.MinutesPerStation
}

// TimeZone is the zone the line's clock runs in
func (e *Engine) TimeZone() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

// Now is the current time on the line's clock
func (e *Engine) Now() time.Time {
	return time.Now().In(e.TimeZone())
}
