package stats

import (
	"github.com/travigo/lineplanner/pkg/ctdf"
)

type RecordsStats struct {
	Stations     int
	Trips        int
	DelayedTrips int

	ServiceDays      int
	FirstServiceDate string
	LastServiceDate  string

	TripsPerDirection map[ctdf.Direction]int
}

var CurrentRecordsStats *RecordsStats

// UpdateRecordsStats recomputes the published stats. The trip set never changes after
// generation so this only needs calling once at startup.
func UpdateRecordsStats(stationCount int, trips []*ctdf.Trip) {
	CurrentRecordsStats = Compute(stationCount, trips)
}

func Compute(stationCount int, trips []*ctdf.Trip) *RecordsStats {
	recordsStats := &RecordsStats{
		Stations:          stationCount,
		Trips:             len(trips),
		TripsPerDirection: map[ctdf.Direction]int{},
	}

	serviceDates := map[ctdf.Date]struct{}{}
	var first, last ctdf.Date

	for _, trip := range trips {
		if trip.Status == ctdf.TripStatusDelayed {
			recordsStats.DelayedTrips++
		}
		recordsStats.TripsPerDirection[trip.Direction]++

		serviceDates[trip.ServiceDate] = struct{}{}

		if first.IsZero() || trip.ServiceDate.Before(first) {
			first = trip.ServiceDate
		}
		if last.IsZero() || last.Before(trip.ServiceDate) {
			last = trip.ServiceDate
		}
	}

	recordsStats.ServiceDays = len(serviceDates)

	if len(trips) > 0 {
		recordsStats.FirstServiceDate = first.String()
		recordsStats.LastServiceDate = last.String()
	}

	return recordsStats
}
