package localtimetable

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator/query"
	"github.com/travigo/lineplanner/pkg/util"
)

func (s Source) DeparturesQuery(q query.Departures) ([]*ctdf.Trip, error) {
	startDateTime := q.StartDateTime
	if startDateTime.IsZero() {
		startDateTime = s.Engine.Now()
	}

	return s.Engine.NextDepartures(q.StationRef, q.Count, startDateTime), nil
}

func (s Source) TripsQuery(q query.Trips) ([]*ctdf.Trip, error) {
	trips := make([]*ctdf.Trip, 0, len(s.Engine.Trips))

	for _, trip := range s.Engine.Trips {
		if q.Status == "" || trip.Status == q.Status {
			trips = append(trips, trip)
		}
	}

	return trips, nil
}

func (s Source) RouteTripsQuery(q query.RouteTrips) ([]*ctdf.Trip, error) {
	return s.Engine.TripsForRoute(q.OriginRef, q.DestinationRef), nil
}

func (s Source) SearchQuery(q query.Search) ([]*ctdf.Trip, error) {
	currentTime := time.Now()

	candidates := s.Engine.TripsForDate(q.Date)

	if q.OriginRef != "" {
		util.InPlaceFilter(&candidates, func(trip *ctdf.Trip) bool {
			return trip.Origin.PrimaryIdentifier == q.OriginRef
		})
	}
	if q.DestinationRef != "" {
		util.InPlaceFilter(&candidates, func(trip *ctdf.Trip) bool {
			return trip.Destination.PrimaryIdentifier == q.DestinationRef
		})
	}

	results, err := s.Engine.Search(candidates, q.Options)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("candidates", len(candidates)).
		Int("results", len(results)).
		Str("Length", time.Since(currentTime).String()).
		Msg("Trip search")

	return results, nil
}
