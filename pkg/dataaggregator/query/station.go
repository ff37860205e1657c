package query

import "github.com/travigo/lineplanner/pkg/ctdf"

type Station struct {
	PrimaryIdentifier string
	ShortCode         string
}

type NearestStation struct {
	Location *ctdf.Location
}

// Stations lists every station on the line in travel order
type Stations struct{}
