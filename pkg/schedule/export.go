package schedule

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/travigo/lineplanner/pkg/ctdf"
)

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

type tripRecord struct {
	TripID          string `csv:"trip_id"`
	TrainNumber     string `csv:"train_number"`
	Direction       string `csv:"direction"`
	ServiceDate     string `csv:"service_date"`
	OriginCode      string `csv:"origin_code"`
	OriginName      string `csv:"origin_name"`
	DestinationCode string `csv:"destination_code"`
	DestinationName string `csv:"destination_name"`
	DepartureDate   string `csv:"departure_date"`
	DepartureTime   string `csv:"departure_time"`
	ArrivalDate     string `csv:"arrival_date"`
	ArrivalTime     string `csv:"arrival_time"`
	Duration        string `csv:"duration"`
	DurationMinutes int    `csv:"duration_minutes"`
	Fare            int    `csv:"fare"`
	Platform        string `csv:"platform"`
	Status          string `csv:"status"`
}

func newTripRecord(trip *ctdf.Trip) *tripRecord {
	return &tripRecord{
		TripID:          trip.PrimaryIdentifier,
		TrainNumber:     trip.TrainNumber,
		Direction:       string(trip.Direction),
		ServiceDate:     trip.ServiceDate.String(),
		OriginCode:      trip.Origin.ShortCode,
		OriginName:      trip.Origin.PrimaryName,
		DestinationCode: trip.Destination.ShortCode,
		DestinationName: trip.Destination.PrimaryName,
		DepartureDate:   trip.DepartureDate.String(),
		DepartureTime:   trip.DepartureTime.String(),
		ArrivalDate:     trip.ArrivalDate.String(),
		ArrivalTime:     trip.ArrivalTime.String(),
		Duration:        trip.Duration(),
		DurationMinutes: trip.DurationMinutes,
		Fare:            trip.Fare,
		Platform:        trip.Platform,
		Status:          string(trip.Status),
	}
}

func Export(writer io.Writer, trips []*ctdf.Trip, format ExportFormat) error {
	switch format {
	case ExportCSV:
		records := make([]*tripRecord, 0, len(trips))
		for _, trip := range trips {
			records = append(records, newTripRecord(trip))
		}

		return gocsv.Marshal(records, writer)
	case ExportJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")

		return encoder.Encode(trips)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
