package query

import "fmt"

type Destinations struct {
	StationRef string
}

func (d Destinations) CacheKey() string {
	return fmt.Sprintf("destinations:%s", d.StationRef)
}
