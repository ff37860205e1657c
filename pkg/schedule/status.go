package schedule

import (
	"math/rand"

	"github.com/travigo/lineplanner/pkg/ctdf"
)

const DefaultDelayProbability = 0.05

// StatusPolicy assigns the live status of a generated trip
type StatusPolicy interface {
	Status(trip *ctdf.Trip) ctdf.TripStatus
}

type ScheduledPolicy struct{}

func (ScheduledPolicy) Status(*ctdf.Trip) ctdf.TripStatus {
	return ctdf.TripStatusUpcoming
}

// RandomDelayPolicy marks a fixed share of trips as delayed.
// Not safe for concurrent use; the generator applies it sequentially.
type RandomDelayPolicy struct {
	Probability float64

	source *rand.Rand
}

func NewRandomDelayPolicy(seed int64, probability float64) *RandomDelayPolicy {
	return &RandomDelayPolicy{
		Probability: probability,
		source:      rand.New(rand.NewSource(seed)),
	}
}

func (p *RandomDelayPolicy) Status(*ctdf.Trip) ctdf.TripStatus {
	if p.source.Float64() < p.Probability {
		return ctdf.TripStatusDelayed
	}

	return ctdf.TripStatusUpcoming
}
