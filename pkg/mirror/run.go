package mirror

import (
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/travigo/lineplanner/pkg/consumer"
)

const (
	numConsumers = 5
	batchSize    = 200
)

func NewRedisConsumer(connection rmq.Connection, store TripStore, indexer TripIndexer) *consumer.RedisConsumer {
	return &consumer.RedisConsumer{
		Connection:      connection,
		QueueName:       QueueName,
		NumberConsumers: numConsumers,
		BatchSize:       batchSize,
		Timeout:         2 * time.Second,
		Consumer:        NewBatchConsumer(store, indexer),
	}
}
