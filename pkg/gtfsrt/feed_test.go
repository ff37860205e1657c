package gtfsrt

import (
	"testing"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"google.golang.org/protobuf/proto"
)

func testTrips() []*ctdf.Trip {
	date := ctdf.Date{Year: 2026, Month: time.October, Day: 23}

	return []*ctdf.Trip{
		{
			PrimaryIdentifier: "LP:TRIP:2026-10-23:2340F:APL-STM",
			Origin:            ctdf.StationRef{ShortCode: "APL"},
			Destination:       ctdf.StationRef{ShortCode: "STM"},
			Direction:         ctdf.DirectionForward,
			LineRef:           "LP:LINE:RED",
			ServiceDate:       date,
			DepartureDate:     date.AddDays(1),
			DepartureTime:     ctdf.NewClockTime(0, 19),
			ArrivalDate:       date.AddDays(1),
			ArrivalTime:       ctdf.NewClockTime(0, 25),
			Status:            ctdf.TripStatusDelayed,
		},
		{
			PrimaryIdentifier: "LP:TRIP:2026-10-23:1400F:NTM-STM",
			Direction:         ctdf.DirectionForward,
			DepartureDate:     date,
			DepartureTime:     ctdf.NewClockTime(14, 0),
			Status:            ctdf.TripStatusUpcoming,
		},
		{
			PrimaryIdentifier: "LP:TRIP:2026-10-23:1340R:STM-NTM",
			Origin:            ctdf.StationRef{ShortCode: "STM"},
			Destination:       ctdf.StationRef{ShortCode: "NTM"},
			Direction:         ctdf.DirectionReverse,
			DepartureDate:     date,
			DepartureTime:     ctdf.NewClockTime(13, 40),
			ArrivalDate:       date,
			ArrivalTime:       ctdf.NewClockTime(14, 25),
			Status:            ctdf.TripStatusDelayed,
		},
	}
}

func TestBuildFeedOnlyIncludesDelayedTrips(t *testing.T) {
	now := time.Date(2026, time.October, 23, 12, 0, 0, 0, time.UTC)

	feed := BuildFeed(testTrips(), now, time.UTC)

	assert.Equal(t, "2.0", feed.GetHeader().GetGtfsRealtimeVersion())
	assert.Equal(t, gtfs.FeedHeader_FULL_DATASET, feed.GetHeader().GetIncrementality())
	assert.Equal(t, uint64(now.Unix()), feed.GetHeader().GetTimestamp())

	require.Len(t, feed.GetEntity(), 2)

	first := feed.GetEntity()[0].GetTripUpdate()
	assert.Equal(t, "LP:TRIP:2026-10-23:2340F:APL-STM", first.GetTrip().GetTripId())
	assert.Equal(t, "20261023", first.GetTrip().GetStartDate())
	assert.Equal(t, "24:19:00", first.GetTrip().GetStartTime())
	assert.Equal(t, uint32(0), first.GetTrip().GetDirectionId())
	assert.Equal(t, "LP:LINE:RED", first.GetTrip().GetRouteId())

	require.Len(t, first.GetStopTimeUpdate(), 2)
	assert.Equal(t, "APL", first.GetStopTimeUpdate()[0].GetStopId())
	assert.Equal(t, time.Date(2026, time.October, 24, 0, 19, 0, 0, time.UTC).Unix(), first.GetStopTimeUpdate()[0].GetDeparture().GetTime())
	assert.Equal(t, time.Date(2026, time.October, 24, 0, 25, 0, 0, time.UTC).Unix(), first.GetStopTimeUpdate()[1].GetArrival().GetTime())

	second := feed.GetEntity()[1].GetTripUpdate()
	assert.Equal(t, uint32(1), second.GetTrip().GetDirectionId())
	assert.Equal(t, "20261023", second.GetTrip().GetStartDate())
	assert.Equal(t, "13:40:00", second.GetTrip().GetStartTime())
}

func TestEncodeRoundTrip(t *testing.T) {
	feed := BuildFeed(testTrips(), time.Now(), time.UTC)

	data, err := Encode(feed)
	require.NoError(t, err)

	decoded := &gtfs.FeedMessage{}
	require.NoError(t, proto.Unmarshal(data, decoded))
	assert.Len(t, decoded.GetEntity(), 2)
}

func TestBuildFeedWithoutDelays(t *testing.T) {
	feed := BuildFeed([]*ctdf.Trip{}, time.Now(), time.UTC)

	assert.Empty(t, feed.GetEntity())
}
