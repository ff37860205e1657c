package query

import "github.com/travigo/lineplanner/pkg/ctdf"

// Trips returns every generated trip, optionally narrowed to one status
type Trips struct {
	Status ctdf.TripStatus
}
