package localtimetable

import (
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator/query"
	"github.com/travigo/lineplanner/pkg/dataaggregator/source"
)

func (s Source) StationQuery(q query.Station) (*ctdf.Station, error) {
	var station *ctdf.Station
	var ok bool

	if q.PrimaryIdentifier != "" {
		station, ok = s.Engine.Registry.ByID(q.PrimaryIdentifier)
	} else if q.ShortCode != "" {
		station, ok = s.Engine.Registry.ByCode(q.ShortCode)
	}

	if !ok {
		return nil, source.NotFoundError
	}

	return station, nil
}

func (s Source) NearestStationQuery(q query.NearestStation) (*ctdf.Station, error) {
	station, _, ok := s.Engine.Registry.Nearest(q.Location)
	if !ok {
		return nil, source.NotFoundError
	}

	return station, nil
}

func (s Source) DestinationsQuery(q query.Destinations) ([]string, error) {
	return s.Engine.ReachableDestinations(q.StationRef), nil
}
