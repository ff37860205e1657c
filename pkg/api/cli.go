package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/lineplanner/pkg/api/stats"
	"github.com/travigo/lineplanner/pkg/dataaggregator/global"
	"github.com/travigo/lineplanner/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/lineplanner/pkg/planner"
	"github.com/travigo/lineplanner/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.BoolFlag{
						Name:  "cache",
						Value: true,
						Usage: "cache lookups in Redis",
					},
				}, planner.Flags()...),
				Action: func(c *cli.Context) error {
					options, err := planner.OptionsFromContext(c)
					if err != nil {
						return err
					}

					engine, err := planner.Build(options)
					if err != nil {
						return err
					}

					var cache *cachedresults.Cache
					if c.Bool("cache") {
						cache, err = connectCache()
						if err != nil {
							log.Warn().Err(err).Msg("Redis unavailable, lookups will not be cached")
						}
					}

					global.Setup(engine, cache)

					stats.UpdateRecordsStats(engine.Registry.Len(), engine.Trips)

					log.Info().Str("listen", c.String("listen")).Msg("Starting web API")

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}

func connectCache() (*cachedresults.Cache, error) {
	expiration, err := planner.CacheExpiration()
	if err != nil {
		return nil, err
	}

	if err := redis_client.Connect(); err != nil {
		return nil, err
	}

	return cachedresults.New(redis_client.Client, expiration), nil
}
