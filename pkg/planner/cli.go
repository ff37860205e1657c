package planner

import (
	"fmt"
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/fares"
	"github.com/travigo/lineplanner/pkg/mirror"
	"github.com/travigo/lineplanner/pkg/redis_client"
	"github.com/travigo/lineplanner/pkg/schedule"
	"github.com/urfave/cli/v2"
)

func RegisterScheduleCLI() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Generate the timetable and hand it to other systems",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "write every generated trip as CSV or JSON",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: string(schedule.ExportCSV),
						Usage: "csv or json",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "file to write, defaults to stdout",
					},
				}, Flags()...),
				Action: func(c *cli.Context) error {
					options, err := OptionsFromContext(c)
					if err != nil {
						return err
					}

					engine, err := Build(options)
					if err != nil {
						return err
					}

					var writer io.Writer = os.Stdout
					if output := c.String("output"); output != "" {
						file, err := os.Create(output)
						if err != nil {
							return err
						}
						defer file.Close()

						writer = file
					}

					return schedule.Export(writer, engine.Trips, schedule.ExportFormat(c.String("format")))
				},
			},
			{
				Name:  "mirror",
				Usage: "publish every generated trip onto the mirror queue",
				Flags: Flags(),
				Action: func(c *cli.Context) error {
					options, err := OptionsFromContext(c)
					if err != nil {
						return err
					}

					engine, err := Build(options)
					if err != nil {
						return err
					}

					if err := redis_client.Connect(); err != nil {
						return fmt.Errorf("connecting to redis: %w", err)
					}

					publisher, err := mirror.NewPublisher(redis_client.QueueConnection)
					if err != nil {
						return err
					}

					return publisher.Publish(engine.Trips)
				},
			},
		},
	}
}

func RegisterStationsCLI() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "Inspect the line definition",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print every station, or one station by code",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "line",
						Usage: "YAML line definition, defaults to the built in Red Line",
					},
					&cli.StringFlag{
						Name:  "code",
						Usage: "only show the station with this code",
					},
				},
				Action: func(c *cli.Context) error {
					registry, err := Options{LineFile: c.String("line")}.registry()
					if err != nil {
						return err
					}

					if code := c.String("code"); code != "" {
						station, exists := registry.ByCode(code)
						if !exists {
							return fmt.Errorf("no station with code %q", code)
						}

						pretty.Println(station)
						return nil
					}

					for index, station := range registry.All() {
						fmt.Printf("%2d  %-4s %-20s %s\n", index, station.ShortCode, station.PrimaryName, station.City)
					}

					return nil
				},
			},
		},
	}
}

func RegisterFareCLI() *cli.Command {
	return &cli.Command{
		Name:  "fare",
		Usage: "Quote the fare and travel time between two stations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "origin station code",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "destination station code",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "line",
				Usage: "YAML line definition, defaults to the built in Red Line",
			},
		},
		Action: func(c *cli.Context) error {
			registry, err := Options{LineFile: c.String("line")}.registry()
			if err != nil {
				return err
			}

			origin, originExists := registry.ByCode(c.String("from"))
			destination, destinationExists := registry.ByCode(c.String("to"))
			if !originExists || !destinationExists {
				log.Warn().Str("from", c.String("from")).Str("to", c.String("to")).Msg("Unknown station, quoting the minimum fare")
			}

			quote := ctdf.FareQuote{
				Fare: fares.NewCalculator(registry).Fare(origin, destination),
			}
			if originExists && destinationExists {
				quote.Distance, _ = registry.Distance(origin.PrimaryIdentifier, destination.PrimaryIdentifier)
				quote.TravelTimeMinutes = quote.Distance * schedule.DefaultMinutesPerStation
			}

			fmt.Printf("Fare: %d\nStations: %d\nTravel time: %s\n", quote.Fare, quote.Distance, ctdf.FormatDuration(quote.TravelTimeMinutes))

			return nil
		},
	}
}
