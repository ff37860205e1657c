package elastic_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/travigo/lineplanner/pkg/ctdf"
)

// TripDocument is the flattened trip shape stored in the search index
type TripDocument struct {
	PrimaryIdentifier string

	OriginName      string
	OriginCode      string
	DestinationName string
	DestinationCode string
	CodeKey         string
	CityKey         string

	Direction     ctdf.Direction
	ServiceDate   string
	DepartureTime string
	ArrivalTime   string

	DurationMinutes int
	Fare            int
	Status          ctdf.TripStatus

	Timestamp time.Time
}

func NewTripDocument(trip *ctdf.Trip, now time.Time) TripDocument {
	return TripDocument{
		PrimaryIdentifier: trip.PrimaryIdentifier,
		OriginName:        trip.Origin.PrimaryName,
		OriginCode:        trip.Origin.ShortCode,
		DestinationName:   trip.Destination.PrimaryName,
		DestinationCode:   trip.Destination.ShortCode,
		CodeKey:           trip.CodeKey(),
		CityKey:           trip.CityKey(),
		Direction:         trip.Direction,
		ServiceDate:       trip.ServiceDate.String(),
		DepartureTime:     trip.DepartureTime.String(),
		ArrivalTime:       trip.ArrivalTime.String(),
		DurationMinutes:   trip.DurationMinutes,
		Fare:              trip.Fare,
		Status:            trip.Status,
		Timestamp:         now,
	}
}

// TripIndexer queues trips onto the shared bulk indexer under a monthly index
type TripIndexer struct {
	IndexPrefix string
}

func (i TripIndexer) IndexName(now time.Time) string {
	prefix := i.IndexPrefix
	if prefix == "" {
		prefix = "lineplanner-trips"
	}

	return fmt.Sprintf("%s-%d-%02d", prefix, now.Year(), now.Month())
}

func (i TripIndexer) IndexTrip(trip *ctdf.Trip) error {
	now := time.Now()

	document, err := json.Marshal(NewTripDocument(trip, now))
	if err != nil {
		return err
	}

	IndexRequest(i.IndexName(now), trip.PrimaryIdentifier, bytes.NewReader(document))

	return nil
}
