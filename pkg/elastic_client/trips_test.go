package elastic_client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/travigo/lineplanner/pkg/ctdf"
)

func TestNewTripDocument(t *testing.T) {
	trip := &ctdf.Trip{
		PrimaryIdentifier: "LP:TRIP:2026-10-19:0710F:OLD-CEN",
		Origin:            ctdf.StationRef{PrimaryName: "Old Town", ShortCode: "OLD", City: "Old Town"},
		Destination:       ctdf.StationRef{PrimaryName: "Central", ShortCode: "CEN", City: "City Centre"},
		Direction:         ctdf.DirectionForward,
		ServiceDate:       ctdf.Date{Year: 2026, Month: time.October, Day: 19},
		DepartureTime:     ctdf.NewClockTime(7, 19),
		ArrivalTime:       ctdf.NewClockTime(7, 25),
		DurationMinutes:   6,
		Fare:              20,
		Status:            ctdf.TripStatusUpcoming,
	}

	document := NewTripDocument(trip, time.Time{})

	assert.Equal(t, "OLD-CEN", document.CodeKey)
	assert.Equal(t, "old town-city centre", document.CityKey)
	assert.Equal(t, "2026-10-19", document.ServiceDate)
	assert.Equal(t, "07:19", document.DepartureTime)
	assert.Equal(t, "07:25", document.ArrivalTime)
}

func TestIndexName(t *testing.T) {
	now := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "lineplanner-trips-2026-03", TripIndexer{}.IndexName(now))
	assert.Equal(t, "custom-2026-03", TripIndexer{IndexPrefix: "custom"}.IndexName(now))
}

func TestIndexTripWithoutClient(t *testing.T) {
	assert.NoError(t, TripIndexer{}.IndexTrip(&ctdf.Trip{PrimaryIdentifier: "LP:TRIP:1"}))
}
