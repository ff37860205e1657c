package ctdf

import (
	"encoding/json"
	"fmt"
	"time"
)

type TripStatus string

const (
	TripStatusUpcoming TripStatus = "upcoming"
	TripStatusDelayed  TripStatus = "delayed"
)

const TripIDFormat = "LP:TRIP:%s:%s:%s-%s"

type Trip struct {
	PrimaryIdentifier string `groups:"basic" bson:"primaryidentifier"`

	Origin      StationRef `groups:"basic" bson:"origin"`
	Destination StationRef `groups:"basic" bson:"destination"`

	Direction Direction `groups:"basic" bson:"direction"`

	ServiceDate   Date      `groups:"basic" bson:"servicedate"`
	DepartureDate Date      `groups:"basic" bson:"departuredate"`
	DepartureTime ClockTime `groups:"basic" bson:"departuretime"`
	ArrivalDate   Date      `groups:"basic" bson:"arrivaldate"`
	ArrivalTime   ClockTime `groups:"basic" bson:"arrivaltime"`

	DurationMinutes int `groups:"basic" bson:"durationminutes"`

	Fare int `groups:"basic" bson:"fare"`

	LineRef     string `groups:"basic" bson:"lineref"`
	TrainNumber string `groups:"basic" bson:"trainnumber"`
	Platform    string `groups:"basic" bson:"platform"`
	Headway     string `groups:"detailed" bson:"headway"`

	Amenities         []string `groups:"detailed" bson:"amenities"`
	EcoFriendly       bool     `groups:"basic" bson:"ecofriendly"`
	OnTimePerformance int      `groups:"basic" bson:"ontimeperformance"`

	Status TripStatus `groups:"basic" bson:"status"`
}

func TripIdentifier(date Date, trainNumber string, originCode string, destinationCode string) string {
	return fmt.Sprintf(TripIDFormat, date.String(), trainNumber, originCode, destinationCode)
}

func (t *Trip) Duration() string {
	return FormatDuration(t.DurationMinutes)
}

func (t *Trip) DepartureDateTime(loc *time.Location) time.Time {
	return DateTime(t.DepartureDate, t.DepartureTime, loc)
}

func (t *Trip) ArrivalDateTime(loc *time.Location) time.Time {
	return DateTime(t.ArrivalDate, t.ArrivalTime, loc)
}

// CodeKey is the station code pair used for code based lookups
func (t *Trip) CodeKey() string {
	return fmt.Sprintf("%s-%s", t.Origin.ShortCode, t.Destination.ShortCode)
}

// CityKey is the lowercase city name pair used for name based lookups
func (t *Trip) CityKey() string {
	return fmt.Sprintf("%s-%s", t.Origin.CityKey(), t.Destination.CityKey())
}

func (t Trip) MarshalBinary() ([]byte, error) {
	return json.Marshal(t)
}

func FormatDuration(minutes int) string {
	hours := minutes / 60
	minutes = minutes % 60

	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	} else if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}

	return fmt.Sprintf("%dh %dm", hours, minutes)
}
