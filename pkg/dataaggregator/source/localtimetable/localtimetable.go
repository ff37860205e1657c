package localtimetable

import (
	"reflect"

	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator/query"
	"github.com/travigo/lineplanner/pkg/dataaggregator/source"
	"github.com/travigo/lineplanner/pkg/fares"
	"github.com/travigo/lineplanner/pkg/timetable"
)

// Source answers lookups from the in memory generated timetable
type Source struct {
	Engine *timetable.Engine
	Fares  *fares.Calculator
}

func NewSource(engine *timetable.Engine) Source {
	return Source{
		Engine: engine,
		Fares:  fares.NewCalculator(engine.Registry),
	}
}

func (s Source) GetName() string {
	return "Local Timetable"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Station{}),
		reflect.TypeOf([]*ctdf.Station{}),
		reflect.TypeOf([]*ctdf.Trip{}),
		reflect.TypeOf([]string{}),
		reflect.TypeOf(ctdf.FareQuote{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Station:
		return s.StationQuery(q)
	case query.Stations:
		return s.Engine.Registry.All(), nil
	case query.NearestStation:
		return s.NearestStationQuery(q)
	case query.Departures:
		return s.DeparturesQuery(q)
	case query.Trips:
		return s.TripsQuery(q)
	case query.RouteTrips:
		return s.RouteTripsQuery(q)
	case query.Destinations:
		return s.DestinationsQuery(q)
	case query.FareQuote:
		return s.FareQuoteQuery(q)
	case query.Search:
		return s.SearchQuery(q)
	default:
		return nil, source.UnsupportedSourceError
	}
}
