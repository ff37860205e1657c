package query

import "fmt"

type RouteTrips struct {
	OriginRef      string
	DestinationRef string
}

func (r RouteTrips) CacheKey() string {
	return fmt.Sprintf("routetrips:%s:%s", r.OriginRef, r.DestinationRef)
}
