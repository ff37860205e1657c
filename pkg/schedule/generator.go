package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/fares"
	"github.com/travigo/lineplanner/pkg/stations"
	"github.com/travigo/lineplanner/pkg/util"
)

const DefaultDays = 7
const DefaultMinutesPerStation = 3
const DefaultOnTimePerformance = 96

var DefaultPlatforms = map[ctdf.Direction]string{
	ctdf.DirectionForward: "Platform 1",
	ctdf.DirectionReverse: "Platform 2",
}

var DefaultAmenities = []string{"Air Conditioning", "Wi-Fi", "Wheelchair Access", "Bicycle Space"}

type Generator struct {
	Registry *stations.Registry
	Fares    *fares.Calculator
	Patterns Patterns
	Status   StatusPolicy

	Days              int
	MinutesPerStation int
	OnTimePerformance int
	Platforms         map[ctdf.Direction]string
	Amenities         []string

	MaxWorkers int
}

func NewGenerator(registry *stations.Registry, patterns Patterns, status StatusPolicy) *Generator {
	if status == nil {
		status = ScheduledPolicy{}
	}

	return &Generator{
		Registry: registry,
		Fares:    fares.NewCalculator(registry),
		Patterns: patterns,
		Status:   status,

		Days:              DefaultDays,
		MinutesPerStation: DefaultMinutesPerStation,
		OnTimePerformance: DefaultOnTimePerformance,
		Platforms:         DefaultPlatforms,
		Amenities:         DefaultAmenities,

		MaxWorkers: DefaultDays,
	}
}

type generatedDay struct {
	index int
	trips []*ctdf.Trip
}

// Generate materialises every trip departing in the rolling window of days beginning at start.
// Late trains of the day before start that run past midnight come first.
func (g *Generator) Generate(start ctdf.Date) []*ctdf.Trip {
	startTime := time.Now()

	nextDayDuration, _ := iso8601.ParseISO8601("P1D")

	p := pool.NewWithResults[generatedDay]().WithMaxGoroutines(max(g.MaxWorkers, 1))

	p.Go(func() generatedDay {
		return generatedDay{index: -1, trips: g.carriedInto(start)}
	})

	dayDateTime := start.In(time.UTC)
	for i := 0; i < g.Days; i++ {
		date := ctdf.DateOf(dayDateTime)
		p.Go(func() generatedDay {
			return generatedDay{index: i, trips: g.generateDay(date)}
		})

		dayDateTime = nextDayDuration.Shift(dayDateTime)
	}

	days := p.Wait()
	sort.Slice(days, func(i, j int) bool {
		return days[i].index < days[j].index
	})

	total := 0
	for _, day := range days {
		total += len(day.trips)
	}

	trips := make([]*ctdf.Trip, 0, total)
	for _, day := range days {
		trips = append(trips, day.trips...)
	}

	g.applyStatus(trips)

	log.Debug().
		Str("start", start.String()).
		Int("days", g.Days).
		Int("trips", len(trips)).
		Str("Length", time.Since(startTime).String()).
		Msg("Schedule generation")

	return trips
}

// carriedInto returns the trips of the previous service day that depart on or after date
func (g *Generator) carriedInto(date ctdf.Date) []*ctdf.Trip {
	trips := g.generateDay(date.AddDays(-1))

	util.InPlaceFilter(&trips, func(trip *ctdf.Trip) bool {
		return !trip.DepartureDate.Before(date)
	})

	return trips
}

// GenerateDay builds the trips for a single service day
func (g *Generator) GenerateDay(date ctdf.Date) []*ctdf.Trip {
	trips := g.generateDay(date)
	g.applyStatus(trips)

	return trips
}

func (g *Generator) applyStatus(trips []*ctdf.Trip) {
	for _, trip := range trips {
		trip.Status = g.Status.Status(trip)
	}
}

func (g *Generator) generateDay(date ctdf.Date) []*ctdf.Trip {
	dayType := ClassifyDay(date.Weekday())
	pattern, exists := g.Patterns[dayType]
	if !exists {
		log.Warn().Str("daytype", string(dayType)).Msg("No service pattern for day")
		return nil
	}

	lineStations := g.Registry.All()
	refs := make([]ctdf.StationRef, len(lineStations))
	for i, station := range lineStations {
		copier.Copy(&refs[i], station)
	}

	// Every slot produces one trip per ordered station pair in its direction
	pairsPerSlot := len(lineStations) * (len(lineStations) - 1) / 2
	slotCount := 0
	for _, direction := range ctdf.Directions {
		for _, serviceWindow := range pattern.Windows[direction] {
			slotCount += len(Slots(serviceWindow))
		}
	}

	trips := make([]*ctdf.Trip, 0, slotCount*pairsPerSlot)
	for _, direction := range ctdf.Directions {
		for _, serviceWindow := range pattern.Windows[direction] {
			headway := fmt.Sprintf("Every %d min", serviceWindow.HeadwayMinutes)

			for _, slot := range Slots(serviceWindow) {
				trainNumber := TrainNumber(slot, direction)

				for origin := range lineStations {
					for destination := range lineStations {
						if !validPair(direction, origin, destination) {
							continue
						}

						trips = append(trips, g.buildTrip(date, direction, slot, trainNumber, headway, refs, origin, destination))
					}
				}
			}
		}
	}

	return trips
}

func (g *Generator) buildTrip(date ctdf.Date, direction ctdf.Direction, slot ctdf.ClockTime, trainNumber string, headway string, refs []ctdf.StationRef, origin int, destination int) *ctdf.Trip {
	// The train reaches the origin after travelling from its starting terminus
	offset := terminusDistance(direction, origin, len(refs)) * g.MinutesPerStation
	departureTime, departureCarry := slot.Add(offset)
	departureDate := date.AddDays(departureCarry)

	durationMinutes := abs(destination-origin) * g.MinutesPerStation
	arrivalTime, arrivalCarry := departureTime.Add(durationMinutes)
	arrivalDate := departureDate.AddDays(arrivalCarry)

	originRef := refs[origin]
	destinationRef := refs[destination]

	return &ctdf.Trip{
		PrimaryIdentifier: ctdf.TripIdentifier(date, trainNumber, originRef.ShortCode, destinationRef.ShortCode),

		Origin:      originRef,
		Destination: destinationRef,
		Direction:   direction,

		ServiceDate:   date,
		DepartureDate: departureDate,
		DepartureTime: departureTime,
		ArrivalDate:   arrivalDate,
		ArrivalTime:   arrivalTime,

		DurationMinutes: durationMinutes,
		Fare:            g.Fares.FareByID(originRef.PrimaryIdentifier, destinationRef.PrimaryIdentifier),

		LineRef:     g.Registry.Line().PrimaryIdentifier,
		TrainNumber: trainNumber,
		Platform:    g.Platforms[direction],
		Headway:     headway,

		// Shared between trips, the dataset is read only once generated
		Amenities:         g.Amenities,
		EcoFriendly:       true,
		OnTimePerformance: g.OnTimePerformance,

		Status: ctdf.TripStatusUpcoming,
	}
}

func TrainNumber(slot ctdf.ClockTime, direction ctdf.Direction) string {
	return fmt.Sprintf("%02d%02d%s", slot.Hour(), slot.Minute(), direction.Suffix())
}

func validPair(direction ctdf.Direction, origin int, destination int) bool {
	if direction == ctdf.DirectionReverse {
		return origin > destination
	}

	return origin < destination
}

func terminusDistance(direction ctdf.Direction, index int, stationCount int) int {
	if direction == ctdf.DirectionReverse {
		return stationCount - 1 - index
	}

	return index
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
