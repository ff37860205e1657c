package localtimetable

import (
	"github.com/jinzhu/copier"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator/query"
)

// FareQuoteQuery never fails, unknown stations get the fallback fare and no travel time
func (s Source) FareQuoteQuery(q query.FareQuote) (ctdf.FareQuote, error) {
	registry := s.Engine.Registry

	var origin, destination *ctdf.Station
	if q.OriginRef != "" || q.DestinationRef != "" {
		origin, _ = registry.ByID(q.OriginRef)
		destination, _ = registry.ByID(q.DestinationRef)
	} else {
		origin, _ = registry.ByName(q.OriginName)
		destination, _ = registry.ByName(q.DestinationName)
	}

	quote := ctdf.FareQuote{
		Fare: s.Fares.Fare(origin, destination),
	}

	if origin != nil {
		copier.Copy(&quote.Origin, origin)
	}
	if destination != nil {
		copier.Copy(&quote.Destination, destination)
	}

	if origin != nil && destination != nil {
		quote.Distance, _ = registry.Distance(origin.PrimaryIdentifier, destination.PrimaryIdentifier)
		quote.TravelTimeMinutes = s.Engine.TravelTime(origin.PrimaryName, destination.PrimaryName)
	}

	return quote, nil
}
