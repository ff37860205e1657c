package mirror

import "github.com/travigo/lineplanner/pkg/ctdf"

type RouteKeyKind string

const (
	RouteKeyCode RouteKeyKind = "code"
	RouteKeyCity RouteKeyKind = "city"
)

// RouteIndexEntry points a secondary route key at a canonical trip record
type RouteIndexEntry struct {
	Kind    RouteKeyKind `bson:"kind"`
	Key     string       `bson:"key"`
	TripRef string       `bson:"tripref"`
}

func RouteIndexEntries(trip *ctdf.Trip) []RouteIndexEntry {
	return []RouteIndexEntry{
		{Kind: RouteKeyCode, Key: trip.CodeKey(), TripRef: trip.PrimaryIdentifier},
		{Kind: RouteKeyCity, Key: trip.CityKey(), TripRef: trip.PrimaryIdentifier},
	}
}
