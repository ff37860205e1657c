package localtimetable

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator"
	"github.com/travigo/lineplanner/pkg/dataaggregator/query"
	"github.com/travigo/lineplanner/pkg/dataaggregator/source"
	"github.com/travigo/lineplanner/pkg/schedule"
	"github.com/travigo/lineplanner/pkg/stations"
	"github.com/travigo/lineplanner/pkg/timetable"
)

var monday = ctdf.Date{Year: 2026, Month: time.October, Day: 19}

func newTestAggregator(t *testing.T) *dataaggregator.Aggregator {
	t.Helper()

	registry := stations.Default()
	generator := schedule.NewGenerator(registry, schedule.DefaultPatterns(), schedule.ScheduledPolicy{})
	generator.Days = 1

	engine := timetable.NewEngine(registry, generator.Generate(monday))
	engine.Location = time.UTC

	aggregator := &dataaggregator.Aggregator{}
	aggregator.RegisterSource(NewSource(engine))

	return aggregator
}

func TestStationLookup(t *testing.T) {
	aggregator := newTestAggregator(t)

	station, err := dataaggregator.LookupFrom[*ctdf.Station](aggregator, query.Station{PrimaryIdentifier: "LP:STATION:CEN"})
	require.NoError(t, err)
	assert.Equal(t, "Central", station.PrimaryName)

	station, err = dataaggregator.LookupFrom[*ctdf.Station](aggregator, query.Station{ShortCode: "riv"})
	require.NoError(t, err)
	assert.Equal(t, "LP:STATION:RIV", station.PrimaryIdentifier)

	_, err = dataaggregator.LookupFrom[*ctdf.Station](aggregator, query.Station{PrimaryIdentifier: "LP:STATION:XXX"})
	assert.True(t, errors.Is(err, source.NotFoundError))
}

func TestNearestStationLookup(t *testing.T) {
	aggregator := newTestAggregator(t)

	station, err := dataaggregator.LookupFrom[*ctdf.Station](aggregator, query.NearestStation{
		Location: ctdf.NewLocation(51.5194, -0.1207),
	})
	require.NoError(t, err)
	assert.Equal(t, "LP:STATION:CEN", station.PrimaryIdentifier)
}

func TestDeparturesLookup(t *testing.T) {
	aggregator := newTestAggregator(t)

	departures, err := dataaggregator.LookupFrom[[]*ctdf.Trip](aggregator, query.Departures{
		StationRef:    "LP:STATION:CEN",
		Count:         5,
		StartDateTime: time.Date(2026, time.October, 19, 8, 3, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, departures, 5)
}

func TestRouteTripsLookup(t *testing.T) {
	aggregator := newTestAggregator(t)

	trips, err := dataaggregator.LookupFrom[[]*ctdf.Trip](aggregator, query.RouteTrips{
		OriginRef:      "LP:STATION:NTM",
		DestinationRef: "LP:STATION:CEN",
	})
	require.NoError(t, err)
	assert.Len(t, trips, 70)
}

func TestDestinationsLookup(t *testing.T) {
	aggregator := newTestAggregator(t)

	destinations, err := dataaggregator.LookupFrom[[]string](aggregator, query.Destinations{StationRef: "LP:STATION:CEN"})
	require.NoError(t, err)
	assert.Len(t, destinations, 15)
}

func TestFareQuoteLookup(t *testing.T) {
	aggregator := newTestAggregator(t)

	quote, err := dataaggregator.LookupFrom[ctdf.FareQuote](aggregator, query.FareQuote{
		OriginRef:      "LP:STATION:NTM",
		DestinationRef: "LP:STATION:STM",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, quote.Fare)
	assert.Equal(t, 15, quote.Distance)
	assert.Equal(t, 45, quote.TravelTimeMinutes)
	assert.Equal(t, "LP:STATION:NTM", quote.Origin.PrimaryIdentifier)

	quote, err = dataaggregator.LookupFrom[ctdf.FareQuote](aggregator, query.FareQuote{
		OriginName:      "North Terminal",
		DestinationName: "Old Town",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, quote.Fare)
	assert.Equal(t, 9, quote.TravelTimeMinutes)

	quote, err = dataaggregator.LookupFrom[ctdf.FareQuote](aggregator, query.FareQuote{
		OriginName:      "Nowhere",
		DestinationName: "Old Town",
	})
	require.NoError(t, err)
	assert.Equal(t, 20, quote.Fare)
	assert.Zero(t, quote.TravelTimeMinutes)
}

func TestSearchLookup(t *testing.T) {
	aggregator := newTestAggregator(t)

	trips, err := dataaggregator.LookupFrom[[]*ctdf.Trip](aggregator, query.Search{
		Date:      monday,
		OriginRef: "LP:STATION:NTM",
		Options: timetable.SearchOptions{
			PriceRange: &timetable.PriceRange{Min: 0, Max: 20},
			SortBy:     timetable.SortDeparture,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, trips)
	for _, trip := range trips {
		assert.Equal(t, "LP:STATION:NTM", trip.Origin.PrimaryIdentifier)
		assert.LessOrEqual(t, trip.Fare, 20)
	}

	_, err = dataaggregator.LookupFrom[[]*ctdf.Trip](aggregator, query.Search{
		Date:    monday,
		Options: timetable.SearchOptions{Expression: "Fare +"},
	})
	assert.Error(t, err)
}

func TestStationsLookup(t *testing.T) {
	aggregator := newTestAggregator(t)

	stationList, err := dataaggregator.LookupFrom[[]*ctdf.Station](aggregator, query.Stations{})
	require.NoError(t, err)
	require.Len(t, stationList, 16)
	assert.Equal(t, "LP:STATION:NTM", stationList[0].PrimaryIdentifier)
	assert.Equal(t, "LP:STATION:STM", stationList[15].PrimaryIdentifier)
}

func TestTripsLookup(t *testing.T) {
	aggregator := newTestAggregator(t)

	trips, err := dataaggregator.LookupFrom[[]*ctdf.Trip](aggregator, query.Trips{})
	require.NoError(t, err)
	assert.Len(t, trips, 16920)

	delayed, err := dataaggregator.LookupFrom[[]*ctdf.Trip](aggregator, query.Trips{Status: ctdf.TripStatusDelayed})
	require.NoError(t, err)
	assert.Empty(t, delayed)
}
