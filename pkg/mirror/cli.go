package mirror

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/travigo/lineplanner/pkg/consumer"
	"github.com/travigo/lineplanner/pkg/database"
	"github.com/travigo/lineplanner/pkg/elastic_client"
	"github.com/travigo/lineplanner/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "mirror",
		Usage: "Mirror published trips into MongoDB",
		Subcommands: []*cli.Command{
			{
				Name:  "consume",
				Usage: "run the mirror queue consumers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "listen target for the queue stats server, empty to disable",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return fmt.Errorf("connecting to redis: %w", err)
					}
					if err := database.Connect(); err != nil {
						return fmt.Errorf("connecting to mongodb: %w", err)
					}
					if err := elastic_client.Connect(false); err != nil {
						return fmt.Errorf("connecting to elasticsearch: %w", err)
					}

					var indexer TripIndexer
					if elastic_client.Client != nil {
						indexer = elastic_client.TripIndexer{}
					}

					redisConsumer := NewRedisConsumer(redis_client.QueueConnection, NewMongoStore(), indexer)
					redisConsumer.StatsAddress = c.String("stats-listen")
					redisConsumer.HealthChecks = []consumer.HealthCheck{
						func(ctx context.Context) error {
							return redis_client.Client.Ping(ctx).Err()
						},
						func(ctx context.Context) error {
							return database.MongoGlobalInstance.Client.Ping(ctx, nil)
						},
					}

					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
					defer stop()
					<-ctx.Done()

					log.Info().Msg("Stopping mirror consumers")
					<-redis_client.QueueConnection.StopAllConsuming()
					elastic_client.WaitUntilQueueEmpty()

					return nil
				},
			},
		},
	}
}
