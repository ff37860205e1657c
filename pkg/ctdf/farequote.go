package ctdf

type FareQuote struct {
	Origin      StationRef `groups:"basic"`
	Destination StationRef `groups:"basic"`

	Distance          int `groups:"basic"`
	Fare              int `groups:"basic"`
	TravelTimeMinutes int `groups:"basic"`
}
