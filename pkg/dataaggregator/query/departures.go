package query

import (
	"fmt"
	"time"
)

type Departures struct {
	StationRef    string
	Count         int
	StartDateTime time.Time
}

// CacheKey is only precise to the minute as departures are
func (d Departures) CacheKey() string {
	return fmt.Sprintf("departures:%s:%d:%s", d.StationRef, d.Count, d.StartDateTime.Format("2006-01-02T15:04"))
}
