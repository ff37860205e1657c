package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const TripsCollection = "trips"
const TripRouteIndexCollection = "trip_route_index"

func createIndexes() {
	createTripsIndexes()
	createTripRouteIndexes()
}

func createTripsIndexes() {
	tripsCollection := GetCollection(TripsCollection)
	_, err := tripsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "primaryidentifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "origin.primaryidentifier", Value: 1},
				{Key: "destination.primaryidentifier", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "servicedate.year", Value: 1},
				{Key: "servicedate.month", Value: 1},
				{Key: "servicedate.day", Value: 1},
			},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createTripRouteIndexes() {
	routeIndexCollection := GetCollection(TripRouteIndexCollection)
	routeKeyIndexName := "RouteKindKeyTripRef"
	_, err := routeIndexCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Options: options.Index().SetName(routeKeyIndexName).SetUnique(true),
			Keys: bson.D{
				{Key: "kind", Value: 1},
				{Key: "key", Value: 1},
				{Key: "tripref", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "tripref", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
