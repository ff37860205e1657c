package mirror

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/lineplanner/pkg/ctdf"
)

type TripIndexer interface {
	IndexTrip(trip *ctdf.Trip) error
}

type BatchConsumer struct {
	Store TripStore

	// Optional secondary sink for search
	Indexer TripIndexer
}

func NewBatchConsumer(store TripStore, indexer TripIndexer) *BatchConsumer {
	return &BatchConsumer{
		Store:   store,
		Indexer: indexer,
	}
}

func (c *BatchConsumer) Consume(batch rmq.Deliveries) {
	trips := make([]*ctdf.Trip, 0, len(batch))
	accepted := make(rmq.Deliveries, 0, len(batch))

	for _, delivery := range batch {
		var trip ctdf.Trip
		if err := json.Unmarshal([]byte(delivery.Payload()), &trip); err != nil || trip.PrimaryIdentifier == "" {
			log.Error().Err(err).Msg("Rejecting malformed trip")

			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject delivery")
			}
			continue
		}

		trips = append(trips, &trip)
		accepted = append(accepted, delivery)
	}

	if len(trips) == 0 {
		return
	}

	if err := c.Store.SaveTrips(context.Background(), trips); err != nil {
		log.Error().Err(err).Int("trips", len(trips)).Msg("Failed to mirror trips")

		if rejectErrors := accepted.Reject(); len(rejectErrors) > 0 {
			for _, err := range rejectErrors {
				log.Error().Err(err).Msg("Failed to reject delivery")
			}
		}
		return
	}

	if c.Indexer != nil {
		for _, trip := range trips {
			if err := c.Indexer.IndexTrip(trip); err != nil {
				log.Error().Err(err).Str("trip", trip.PrimaryIdentifier).Msg("Failed to index trip")
			}
		}
	}

	if ackErrors := accepted.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack delivery")
		}
	}

	log.Debug().Int("trips", len(trips)).Msg("Mirrored trips")
}
