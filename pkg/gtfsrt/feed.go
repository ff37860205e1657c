package gtfsrt

import (
	"fmt"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"google.golang.org/protobuf/proto"
)

const realtimeVersion = "2.0"

// BuildFeed produces a full dataset of trip updates for every delayed trip
func BuildFeed(trips []*ctdf.Trip, now time.Time, loc *time.Location) *gtfs.FeedMessage {
	incrementality := gtfs.FeedHeader_FULL_DATASET

	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String(realtimeVersion),
			Incrementality:      &incrementality,
			Timestamp:           proto.Uint64(uint64(now.Unix())),
		},
		Entity: []*gtfs.FeedEntity{},
	}

	for _, trip := range trips {
		if trip.Status != ctdf.TripStatusDelayed {
			continue
		}

		feed.Entity = append(feed.Entity, tripUpdateEntity(trip, loc))
	}

	return feed
}

func tripUpdateEntity(trip *ctdf.Trip, loc *time.Location) *gtfs.FeedEntity {
	scheduleRelationship := gtfs.TripDescriptor_SCHEDULED
	stopRelationship := gtfs.TripUpdate_StopTimeUpdate_SCHEDULED

	serviceDate := trip.ServiceDate
	if serviceDate.IsZero() {
		serviceDate = trip.DepartureDate
	}

	directionID := uint32(0)
	if trip.Direction == ctdf.DirectionReverse {
		directionID = 1
	}

	return &gtfs.FeedEntity{
		Id: proto.String(trip.PrimaryIdentifier),
		TripUpdate: &gtfs.TripUpdate{
			Trip: &gtfs.TripDescriptor{
				TripId:               proto.String(trip.PrimaryIdentifier),
				RouteId:              proto.String(trip.LineRef),
				DirectionId:          proto.Uint32(directionID),
				StartDate:            proto.String(fmt.Sprintf("%04d%02d%02d", serviceDate.Year, serviceDate.Month, serviceDate.Day)),
				StartTime:            proto.String(startTime(trip, serviceDate)),
				ScheduleRelationship: &scheduleRelationship,
			},
			StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{
				{
					StopId:               proto.String(trip.Origin.ShortCode),
					ScheduleRelationship: &stopRelationship,
					Departure: &gtfs.TripUpdate_StopTimeEvent{
						Time: proto.Int64(trip.DepartureDateTime(loc).Unix()),
					},
				},
				{
					StopId:               proto.String(trip.Destination.ShortCode),
					ScheduleRelationship: &stopRelationship,
					Arrival: &gtfs.TripUpdate_StopTimeEvent{
						Time: proto.Int64(trip.ArrivalDateTime(loc).Unix()),
					},
				},
			},
		},
	}
}

// startTime is measured from the start of the operating day so trips carried past midnight read 24:xx
func startTime(trip *ctdf.Trip, serviceDate ctdf.Date) string {
	carriedDays := int(trip.DepartureDate.In(time.UTC).Sub(serviceDate.In(time.UTC)).Hours() / 24)
	minutes := int(trip.DepartureTime) + carriedDays*24*60

	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

func Encode(feed *gtfs.FeedMessage) ([]byte, error) {
	return proto.Marshal(feed)
}
