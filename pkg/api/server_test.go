package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/lineplanner/pkg/api/stats"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator/global"
	"github.com/travigo/lineplanner/pkg/planner"
	"github.com/travigo/lineplanner/pkg/timetable"
	"google.golang.org/protobuf/proto"
)

var (
	setupOnce  sync.Once
	testEngine *timetable.Engine
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	setupOnce.Do(func() {
		engine, err := planner.Build(planner.Options{
			StartDate:        ctdf.Date{Year: 2026, Month: time.October, Day: 19},
			Days:             1,
			DelayProbability: 0.05,
			DelaySeed:        1,
			Location:         time.UTC,
		})
		require.NoError(t, err)

		testEngine = engine
		global.Setup(engine, nil)
		stats.UpdateRecordsStats(engine.Registry.Len(), engine.Trips)
	})

	return NewApp()
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()

	response, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)

	return response.StatusCode, body
}

func getJSON(t *testing.T, app *fiber.App, target string, value any) int {
	t.Helper()

	status, body := get(t, app, target)
	require.NoError(t, json.Unmarshal(body, value), string(body))

	return status
}

func TestVersion(t *testing.T) {
	app := newTestApp(t)

	var response map[string]string
	status := getJSON(t, app, "/core/version", &response)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "v1.0", response["version"])
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	status, _ := get(t, app, "/core/nothing-here")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListStations(t *testing.T) {
	app := newTestApp(t)

	var stations []map[string]any
	status := getJSON(t, app, "/core/stations", &stations)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, stations, 16)
	assert.Equal(t, "LP:STATION:NTM", stations[0]["PrimaryIdentifier"])
	assert.NotContains(t, stations[0], "Facilities")
}

func TestGetStation(t *testing.T) {
	app := newTestApp(t)

	var station map[string]any
	status := getJSON(t, app, "/core/stations/cen", &station)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "LP:STATION:CEN", station["PrimaryIdentifier"])
	assert.Contains(t, station, "Facilities")

	var missing map[string]any
	status = getJSON(t, app, "/core/stations/LP:STATION:XXX", &missing)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, missing, "error")
}

func TestNearestStation(t *testing.T) {
	app := newTestApp(t)

	var response map[string]any
	status := getJSON(t, app, "/core/stations/nearest?lat=51.5194&lon=-0.1207", &response)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "LP:STATION:CEN", response["station"].(map[string]any)["PrimaryIdentifier"])
	assert.EqualValues(t, 0, response["distance"])

	status, _ = get(t, app, "/core/stations/nearest?lat=north")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStationDepartures(t *testing.T) {
	app := newTestApp(t)

	var departures []map[string]any
	status := getJSON(t, app, "/core/stations/CEN/departures?count=5&datetime=2026-10-19T08:03:00Z", &departures)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, departures, 5)
	assert.Equal(t, "08:05", departures[0]["DepartureTime"])
	assert.NotContains(t, departures[0], "Amenities")

	status, _ = get(t, app, "/core/stations/CEN/departures?count=five")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = get(t, app, "/core/stations/CEN/departures?datetime=yesterday")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStationDestinations(t *testing.T) {
	app := newTestApp(t)

	var destinations []string
	status := getJSON(t, app, "/core/stations/LP:STATION:CEN/destinations", &destinations)

	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, destinations, 15)
	assert.NotContains(t, destinations, "Central")
}

func TestFareQuote(t *testing.T) {
	app := newTestApp(t)

	var quote map[string]any
	status := getJSON(t, app, "/core/fares?from=NTM&to=STM", &quote)

	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 100, quote["Fare"])
	assert.EqualValues(t, 15, quote["Distance"])

	status = getJSON(t, app, "/core/fares?from_name=Nowhere&to_name=Central", &quote)
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 20, quote["Fare"])
}

func TestTravelTime(t *testing.T) {
	app := newTestApp(t)

	var response map[string]any
	status := getJSON(t, app, "/core/travel_time?from=North%20Terminal&to=Old%20Town", &response)

	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 9, response["minutes"])
	assert.Equal(t, "9m", response["duration"])

	getJSON(t, app, "/core/travel_time?from=Nowhere&to=Old%20Town", &response)
	assert.EqualValues(t, 0, response["minutes"])
}

func TestRouteTrips(t *testing.T) {
	app := newTestApp(t)

	var trips []map[string]any
	status := getJSON(t, app, "/core/trips?from=NTM&to=CEN&detailed=true", &trips)

	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, trips, 70)
	assert.Contains(t, trips[0], "Amenities")

	status, _ = get(t, app, "/core/trips?from=NTM&to=XXX")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSearchTrips(t *testing.T) {
	app := newTestApp(t)

	var trips []map[string]any
	status := getJSON(t, app, "/core/trips/search?date=2026-10-19&from=NTM&max_price=20&sort=price", &trips)

	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, trips)
	for _, trip := range trips {
		assert.LessOrEqual(t, trip["Fare"].(float64), float64(20))
		assert.Equal(t, "LP:STATION:NTM", trip["Origin"].(map[string]any)["PrimaryIdentifier"])
	}

	status = getJSON(t, app, "/core/trips/search?date=2026-10-19&from=STM&depart_after=22:00&depart_before=22:30&sort=departure", &trips)
	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, trips)
	assert.Equal(t, "22:00", trips[0]["DepartureTime"])

	status = getJSON(t, app, "/core/trips/search?date=2026-10-19&expression=Fare%20%3E%3D%20100", &trips)
	assert.Equal(t, http.StatusOK, status)
	for _, trip := range trips {
		assert.EqualValues(t, 100, trip["Fare"])
	}
}

func TestSearchTripsBadRequests(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{
		"/core/trips/search?date=19-10-2026",
		"/core/trips/search?max_price=lots",
		"/core/trips/search?depart_after=7am",
		"/core/trips/search?min_on_time=high",
		"/core/trips/search?date=2026-10-19&expression=Fare%20%2B",
	} {
		status, _ := get(t, app, target)
		assert.Equal(t, http.StatusBadRequest, status, target)
	}

	status, _ := get(t, app, "/core/trips/search?from=XXX")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTripUpdatesFeed(t *testing.T) {
	app := newTestApp(t)

	status, body := get(t, app, "/core/realtime/trip_updates")
	assert.Equal(t, http.StatusOK, status)

	feed := &gtfs.FeedMessage{}
	require.NoError(t, proto.Unmarshal(body, feed))

	delayed := 0
	for _, trip := range testEngine.Trips {
		if trip.Status == ctdf.TripStatusDelayed {
			delayed++
		}
	}
	assert.NotZero(t, delayed)
	assert.Len(t, feed.GetEntity(), delayed)
}

func TestStats(t *testing.T) {
	app := newTestApp(t)

	var response stats.RecordsStats
	status := getJSON(t, app, "/core/stats", &response)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 16, response.Stations)
	assert.Equal(t, 16920, response.Trips)
	assert.Equal(t, 1, response.ServiceDays)
}

// useLineEngine swaps the global timetable for one running in zone, restoring the shared one afterwards
func useLineEngine(t *testing.T, zone *time.Location, start ctdf.Date) *timetable.Engine {
	t.Helper()

	engine, err := planner.Build(planner.Options{
		StartDate:        start,
		Days:             1,
		DelayProbability: 0.05,
		DelaySeed:        1,
		Location:         zone,
	})
	require.NoError(t, err)

	global.Setup(engine, nil)
	t.Cleanup(func() {
		global.Setup(testEngine, nil)
	})

	return engine
}

func TestSearchTripsDefaultsToLineDate(t *testing.T) {
	app := newTestApp(t)

	// A zone a full day ahead of the host so the line's date never matches the host's
	_, hostOffset := time.Now().Zone()
	zone := time.FixedZone("Line", hostOffset+24*60*60)
	lineDate := ctdf.DateOf(time.Now().In(zone))
	require.NotEqual(t, ctdf.DateOf(time.Now()), lineDate)

	useLineEngine(t, zone, lineDate)

	var trips []map[string]any
	status := getJSON(t, app, "/core/trips/search?from=NTM&to=STM", &trips)

	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, trips)
	for _, trip := range trips {
		assert.Equal(t, lineDate.String(), trip["DepartureDate"])
	}
}

func TestTripUpdatesFeedUsesLineZone(t *testing.T) {
	app := newTestApp(t)

	zone := time.FixedZone("Line", 10*60*60)
	engine := useLineEngine(t, zone, ctdf.Date{Year: 2026, Month: time.October, Day: 19})

	status, body := get(t, app, "/core/realtime/trip_updates")
	assert.Equal(t, http.StatusOK, status)

	feed := &gtfs.FeedMessage{}
	require.NoError(t, proto.Unmarshal(body, feed))
	require.NotEmpty(t, feed.GetEntity())

	trips := map[string]*ctdf.Trip{}
	for _, trip := range engine.Trips {
		trips[trip.PrimaryIdentifier] = trip
	}

	update := feed.GetEntity()[0].GetTripUpdate()
	trip := trips[update.GetTrip().GetTripId()]
	require.NotNil(t, trip)

	departure := update.GetStopTimeUpdate()[0].GetDeparture().GetTime()
	assert.Equal(t, trip.DepartureDateTime(zone).Unix(), departure)
	assert.Equal(t, trip.DepartureDateTime(time.UTC).Add(-10*time.Hour).Unix(), departure)
}
