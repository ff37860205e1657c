package global

import (
	"time"

	"github.com/travigo/lineplanner/pkg/dataaggregator"
	"github.com/travigo/lineplanner/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/lineplanner/pkg/dataaggregator/source/localtimetable"
	"github.com/travigo/lineplanner/pkg/timetable"
)

// Location is the zone of the timetable registered by the last Setup
var Location = time.Local

// Setup replaces the global aggregator with one backed by the given timetable.
// cache may be nil, in which case every lookup goes to the source.
func Setup(engine *timetable.Engine, cache *cachedresults.Cache) {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{
		Cache: cache,
	}

	dataaggregator.GlobalAggregator.RegisterSource(localtimetable.NewSource(engine))

	Location = engine.TimeZone()
}

// Now is the current time in the timetable's zone
func Now() time.Time {
	return time.Now().In(Location)
}
