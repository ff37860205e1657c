package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/lineplanner/pkg/ctdf"
)

func TestSearchPriceRange(t *testing.T) {
	engine := newTestEngine(t)
	candidates := engine.TripsForDate(monday)

	results, err := engine.Search(candidates, SearchOptions{
		PriceRange: &PriceRange{Min: 0, Max: 30},
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, trip := range results {
		assert.LessOrEqual(t, trip.Fare, 30)
	}

	excluded := 0
	for _, trip := range candidates {
		if trip.Fare >= 40 {
			excluded++
		}
	}
	assert.Equal(t, len(candidates)-excluded, len(results))
}

func TestSearchDoesNotModifyCandidates(t *testing.T) {
	engine := newTestEngine(t)
	candidates := engine.TripsForDate(monday)
	first := candidates[0]
	length := len(candidates)

	_, err := engine.Search(candidates, SearchOptions{
		PriceRange: &PriceRange{Min: 100, Max: 100},
		SortBy:     SortDeparture,
	})
	require.NoError(t, err)

	assert.Len(t, candidates, length)
	assert.Same(t, first, candidates[0])
}

func TestSearchDepartureRange(t *testing.T) {
	engine := newTestEngine(t)

	results, err := engine.Search(engine.TripsForDate(monday), SearchOptions{
		DepartureRange: &TimeRange{From: ctdf.NewClockTime(7, 0), To: ctdf.NewClockTime(7, 15)},
		SortBy:         SortDeparture,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, trip := range results {
		assert.GreaterOrEqual(t, trip.DepartureTime, ctdf.NewClockTime(7, 0))
		assert.LessOrEqual(t, trip.DepartureTime, ctdf.NewClockTime(7, 15))
	}
	assert.Equal(t, "07:00", results[0].DepartureTime.String())
}

func TestSearchViaStations(t *testing.T) {
	engine := newTestEngine(t)
	candidates := engine.TripsForDate(monday)

	results, err := engine.Search(candidates, SearchOptions{
		ViaStations: []string{"LP:STATION:CEN"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, trip := range results {
		touched := engine.Registry.Between(trip.Origin.PrimaryIdentifier, trip.Destination.PrimaryIdentifier)

		found := false
		for _, station := range touched {
			if station.PrimaryIdentifier == "LP:STATION:CEN" {
				found = true
			}
		}
		assert.True(t, found, trip.PrimaryIdentifier)
	}

	t.Run("unknown via stations match nothing", func(t *testing.T) {
		results, err := engine.Search(candidates, SearchOptions{
			ViaStations: []string{"LP:STATION:NOPE"},
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearchEcoAndOnTime(t *testing.T) {
	engine := newTestEngine(t)
	candidates := engine.TripsForDate(monday)

	results, err := engine.Search(candidates, SearchOptions{EcoFriendlyOnly: true, MinimumOnTimePerformance: 90})
	require.NoError(t, err)
	assert.Len(t, results, len(candidates))

	results, err = engine.Search(candidates, SearchOptions{MinimumOnTimePerformance: 97})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchExpression(t *testing.T) {
	engine := newTestEngine(t)

	results, err := engine.Search(engine.TripsForDate(monday), SearchOptions{
		Expression: `OriginCode == "CEN" && Direction == "forward" && Duration >= 20`,
		SortBy:     SortPrice,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, trip := range results {
		assert.Equal(t, "CEN", trip.Origin.ShortCode)
		assert.Equal(t, ctdf.DirectionForward, trip.Direction)
		assert.GreaterOrEqual(t, trip.DurationMinutes, 20)
	}

	t.Run("invalid expression", func(t *testing.T) {
		_, err := engine.Search(engine.Trips, SearchOptions{Expression: "Fare +"})
		assert.Error(t, err)
	})

	t.Run("non boolean expression", func(t *testing.T) {
		_, err := engine.Search(engine.Trips, SearchOptions{Expression: "Fare + 1"})
		assert.Error(t, err)
	})
}

func TestSortTrips(t *testing.T) {
	long := &ctdf.Trip{PrimaryIdentifier: "long", DurationMinutes: 65, Fare: 40, DepartureDate: monday, DepartureTime: ctdf.NewClockTime(9, 0)}
	short := &ctdf.Trip{PrimaryIdentifier: "short", DurationMinutes: 45, Fare: 60, DepartureDate: monday, DepartureTime: ctdf.NewClockTime(8, 0)}
	tomorrow := &ctdf.Trip{PrimaryIdentifier: "tomorrow", DurationMinutes: 3, Fare: 20, DepartureDate: monday.AddDays(1), DepartureTime: ctdf.NewClockTime(6, 0)}

	ids := func(trips []*ctdf.Trip) []string {
		var ids []string
		for _, trip := range trips {
			ids = append(ids, trip.PrimaryIdentifier)
		}
		return ids
	}

	tests := []struct {
		order    SortOrder
		expected []string
	}{
		{SortRecommended, []string{"long", "short", "tomorrow"}},
		{"", []string{"long", "short", "tomorrow"}},
		{SortPrice, []string{"tomorrow", "long", "short"}},
		{SortDeparture, []string{"short", "long", "tomorrow"}},
		// "1h 5m" sorts before "45m" as a string, but not as minutes
		{SortDuration, []string{"tomorrow", "short", "long"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			trips := []*ctdf.Trip{long, short, tomorrow}
			SortTrips(trips, tt.order)
			assert.Equal(t, tt.expected, ids(trips))
		})
	}
}
