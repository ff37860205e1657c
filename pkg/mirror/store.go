package mirror

import (
	"context"
	"fmt"
	"strings"

	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TripStore interface {
	SaveTrips(ctx context.Context, trips []*ctdf.Trip) error
}

// MongoStore keeps one canonical record per trip and a separate route index
// that is rebuilt for every trip it saves
type MongoStore struct {
	Trips      *mongo.Collection
	RouteIndex *mongo.Collection
}

func NewMongoStore() *MongoStore {
	return &MongoStore{
		Trips:      database.GetCollection(database.TripsCollection),
		RouteIndex: database.GetCollection(database.TripRouteIndexCollection),
	}
}

func (s *MongoStore) SaveTrips(ctx context.Context, trips []*ctdf.Trip) error {
	if len(trips) == 0 {
		return nil
	}

	tripModels, tripRefs, indexModels := writeModels(trips)

	if _, err := s.Trips.BulkWrite(ctx, tripModels, &options.BulkWriteOptions{}); err != nil {
		return fmt.Errorf("writing trips: %w", err)
	}

	if _, err := s.RouteIndex.DeleteMany(ctx, bson.M{"tripref": bson.M{"$in": tripRefs}}); err != nil {
		return fmt.Errorf("clearing route index: %w", err)
	}

	if _, err := s.RouteIndex.BulkWrite(ctx, indexModels, &options.BulkWriteOptions{}); err != nil {
		return fmt.Errorf("writing route index: %w", err)
	}

	return nil
}

func (s *MongoStore) FindTrip(ctx context.Context, primaryIdentifier string) (*ctdf.Trip, error) {
	var trip *ctdf.Trip
	if err := s.Trips.FindOne(ctx, bson.M{"primaryidentifier": primaryIdentifier}).Decode(&trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// FindRoute resolves trips through the route index. City keys are matched case insensitively.
func (s *MongoStore) FindRoute(ctx context.Context, kind RouteKeyKind, key string) ([]*ctdf.Trip, error) {
	if kind == RouteKeyCity {
		key = strings.ToLower(key)
	}

	cursor, err := s.RouteIndex.Find(ctx, bson.M{"kind": kind, "key": key})
	if err != nil {
		return nil, err
	}

	var entries []RouteIndexEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	tripRefs := make([]string, 0, len(entries))
	for _, entry := range entries {
		tripRefs = append(tripRefs, entry.TripRef)
	}

	trips := []*ctdf.Trip{}
	if len(tripRefs) == 0 {
		return trips, nil
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "departuredate.year", Value: 1},
		{Key: "departuredate.month", Value: 1},
		{Key: "departuredate.day", Value: 1},
		{Key: "departuretime", Value: 1},
	})
	cursor, err = s.Trips.Find(ctx, bson.M{"primaryidentifier": bson.M{"$in": tripRefs}}, opts)
	if err != nil {
		return nil, err
	}

	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}

	return trips, nil
}

func writeModels(trips []*ctdf.Trip) ([]mongo.WriteModel, []string, []mongo.WriteModel) {
	tripModels := make([]mongo.WriteModel, 0, len(trips))
	tripRefs := make([]string, 0, len(trips))
	indexModels := make([]mongo.WriteModel, 0, len(trips)*2)

	for _, trip := range trips {
		replaceModel := mongo.NewReplaceOneModel()
		replaceModel.SetFilter(bson.M{"primaryidentifier": trip.PrimaryIdentifier})
		replaceModel.SetReplacement(trip)
		replaceModel.SetUpsert(true)

		tripModels = append(tripModels, replaceModel)
		tripRefs = append(tripRefs, trip.PrimaryIdentifier)

		for _, entry := range RouteIndexEntries(trip) {
			insertModel := mongo.NewInsertOneModel()
			insertModel.SetDocument(entry)

			indexModels = append(indexModels, insertModel)
		}
	}

	return tripModels, tripRefs, indexModels
}
