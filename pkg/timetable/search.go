package timetable

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/util"
	"golang.org/x/exp/slices"
)

type SortOrder string

const (
	SortRecommended SortOrder = "recommended"
	SortPrice       SortOrder = "price"
	SortDuration    SortOrder = "duration"
	SortDeparture   SortOrder = "departure"
)

type PriceRange struct {
	Min int
	Max int
}

type TimeRange struct {
	From ctdf.ClockTime
	To   ctdf.ClockTime
}

// SearchOptions are applied in field order, zero values disable a filter
type SearchOptions struct {
	PriceRange               *PriceRange
	DepartureRange           *TimeRange
	ViaStations              []string
	EcoFriendlyOnly          bool
	MinimumOnTimePerformance int

	// Expression is an optional boolean expr-lang expression evaluated against TripEnvironment
	Expression string

	SortBy SortOrder
}

// TripEnvironment is the set of values a search expression can reference
type TripEnvironment struct {
	Fare              int
	Duration          int
	Departure         string
	DepartureMinutes  int
	Origin            string
	Destination       string
	OriginCode        string
	DestinationCode   string
	Direction         string
	TrainNumber       string
	Status            string
	EcoFriendly       bool
	OnTimePerformance int
}

func newTripEnvironment(trip *ctdf.Trip) TripEnvironment {
	return TripEnvironment{
		Fare:              trip.Fare,
		Duration:          trip.DurationMinutes,
		Departure:         trip.DepartureTime.String(),
		DepartureMinutes:  int(trip.DepartureTime),
		Origin:            trip.Origin.PrimaryName,
		Destination:       trip.Destination.PrimaryName,
		OriginCode:        trip.Origin.ShortCode,
		DestinationCode:   trip.Destination.ShortCode,
		Direction:         string(trip.Direction),
		TrainNumber:       trip.TrainNumber,
		Status:            string(trip.Status),
		EcoFriendly:       trip.EcoFriendly,
		OnTimePerformance: trip.OnTimePerformance,
	}
}

func CompileExpression(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(TripEnvironment{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid search expression: %w", err)
	}

	return program, nil
}

// Search filters and sorts a candidate set of trips. The candidates are never modified.
func (e *Engine) Search(candidates []*ctdf.Trip, options SearchOptions) ([]*ctdf.Trip, error) {
	var program *vm.Program
	if options.Expression != "" {
		var err error
		program, err = CompileExpression(options.Expression)
		if err != nil {
			return nil, err
		}
	}

	results := make([]*ctdf.Trip, len(candidates))
	copy(results, candidates)

	if options.PriceRange != nil {
		priceRange := *options.PriceRange
		util.InPlaceFilter(&results, func(trip *ctdf.Trip) bool {
			return trip.Fare >= priceRange.Min && trip.Fare <= priceRange.Max
		})
	}

	if options.DepartureRange != nil {
		timeRange := *options.DepartureRange
		util.InPlaceFilter(&results, func(trip *ctdf.Trip) bool {
			return trip.DepartureTime >= timeRange.From && trip.DepartureTime <= timeRange.To
		})
	}

	if len(options.ViaStations) > 0 {
		var viaIndexes []int
		for _, stationID := range options.ViaStations {
			if index, ok := e.Registry.IndexOf(stationID); ok {
				viaIndexes = append(viaIndexes, index)
			}
		}

		util.InPlaceFilter(&results, func(trip *ctdf.Trip) bool {
			return e.touchesAny(trip, viaIndexes)
		})
	}

	if options.EcoFriendlyOnly {
		util.InPlaceFilter(&results, func(trip *ctdf.Trip) bool {
			return trip.EcoFriendly
		})
	}

	if options.MinimumOnTimePerformance > 0 {
		util.InPlaceFilter(&results, func(trip *ctdf.Trip) bool {
			return trip.OnTimePerformance >= options.MinimumOnTimePerformance
		})
	}

	if program != nil {
		var runErr error
		util.InPlaceFilter(&results, func(trip *ctdf.Trip) bool {
			if runErr != nil {
				return false
			}

			output, err := expr.Run(program, newTripEnvironment(trip))
			if err != nil {
				runErr = err
				return false
			}

			return output.(bool)
		})

		if runErr != nil {
			return nil, fmt.Errorf("evaluating search expression: %w", runErr)
		}
	}

	SortTrips(results, options.SortBy)

	return results, nil
}

// SortTrips orders trips in place. Unknown orders and SortRecommended leave the order untouched.
func SortTrips(trips []*ctdf.Trip, order SortOrder) {
	switch order {
	case SortPrice:
		sort.SliceStable(trips, func(i, j int) bool {
			return trips[i].Fare < trips[j].Fare
		})
	case SortDuration:
		sort.SliceStable(trips, func(i, j int) bool {
			return trips[i].DurationMinutes < trips[j].DurationMinutes
		})
	case SortDeparture:
		sort.SliceStable(trips, func(i, j int) bool {
			if trips[i].DepartureDate != trips[j].DepartureDate {
				return trips[i].DepartureDate.Before(trips[j].DepartureDate)
			}
			return trips[i].DepartureTime < trips[j].DepartureTime
		})
	}
}

// touchesAny reports whether a trip passes through any of the given station indexes, its ends included
func (e *Engine) touchesAny(trip *ctdf.Trip, indexes []int) bool {
	origin, ok := e.Registry.IndexOf(trip.Origin.PrimaryIdentifier)
	if !ok {
		return false
	}
	destination, ok := e.Registry.IndexOf(trip.Destination.PrimaryIdentifier)
	if !ok {
		return false
	}

	low, high := min(origin, destination), max(origin, destination)

	return slices.ContainsFunc(indexes, func(index int) bool {
		return index >= low && index <= high
	})
}
