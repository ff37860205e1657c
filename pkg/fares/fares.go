package fares

import (
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/stations"
)

type Tier struct {
	MaxDistance int
	Fare        int
}

// Tiers are ordered by inclusive upper bound on the station distance.
// Anything past the last bound is charged MaximumFare.
var Tiers = []Tier{
	{MaxDistance: 2, Fare: 20},
	{MaxDistance: 4, Fare: 30},
	{MaxDistance: 6, Fare: 40},
	{MaxDistance: 8, Fare: 50},
	{MaxDistance: 10, Fare: 60},
	{MaxDistance: 12, Fare: 80},
}

const MinimumFare = 20
const MaximumFare = 100

type Calculator struct {
	Registry *stations.Registry
}

func NewCalculator(registry *stations.Registry) *Calculator {
	return &Calculator{Registry: registry}
}

func (c *Calculator) Fare(from *ctdf.Station, to *ctdf.Station) int {
	if from == nil || to == nil {
		return MinimumFare
	}

	return c.FareByID(from.PrimaryIdentifier, to.PrimaryIdentifier)
}

func (c *Calculator) FareByID(fromID string, toID string) int {
	distance, ok := c.Registry.Distance(fromID, toID)
	if !ok {
		return MinimumFare
	}

	return TierFare(distance)
}

func TierFare(distance int) int {
	if distance <= 0 {
		return 0
	}

	for _, tier := range Tiers {
		if distance <= tier.MaxDistance {
			return tier.Fare
		}
	}

	return MaximumFare
}
