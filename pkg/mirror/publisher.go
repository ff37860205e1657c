package mirror

import (
	"encoding/json"
	"fmt"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/lineplanner/pkg/ctdf"
)

const QueueName = "trip-mirror-queue"

const publishBatchSize = 500

type Publisher struct {
	Queue rmq.Queue
}

func NewPublisher(connection rmq.Connection) (*Publisher, error) {
	queue, err := connection.OpenQueue(QueueName)
	if err != nil {
		return nil, err
	}

	return &Publisher{Queue: queue}, nil
}

// Publish pushes every trip onto the mirror queue as JSON, in batches
func (p *Publisher) Publish(trips []*ctdf.Trip) error {
	batch := make([]string, 0, publishBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		if err := p.Queue.Publish(batch...); err != nil {
			return fmt.Errorf("publishing trips: %w", err)
		}
		batch = batch[:0]

		return nil
	}

	for _, trip := range trips {
		payload, err := json.Marshal(trip)
		if err != nil {
			return err
		}

		batch = append(batch, string(payload))

		if len(batch) == publishBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := flush(); err != nil {
		return err
	}

	log.Info().Int("trips", len(trips)).Str("queue", QueueName).Msg("Published trips for mirroring")

	return nil
}
