package ctdf

import "strings"

type Station struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`
	ShortCode         string `groups:"basic"`
	City              string `groups:"basic"`

	LineRef     string   `groups:"basic"`
	Operational bool     `groups:"basic"`
	Facilities  []string `groups:"detailed"`

	Location *Location `groups:"basic"`
}

// StationRef is the read-only snapshot of a Station stamped onto a Trip
type StationRef struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`
	ShortCode         string `groups:"basic"`
	City              string `groups:"basic"`
}

func (s StationRef) CityKey() string {
	return strings.ToLower(strings.TrimSpace(s.City))
}
