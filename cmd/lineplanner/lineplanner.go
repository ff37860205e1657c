package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/lineplanner/pkg/api"
	"github.com/travigo/lineplanner/pkg/mirror"
	"github.com/travigo/lineplanner/pkg/planner"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("LINEPLANNER_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("LINEPLANNER_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "lineplanner",
		Description: "Timetable and fare engine for a single urban rail line",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			planner.RegisterScheduleCLI(),
			planner.RegisterStationsCLI(),
			planner.RegisterFareCLI(),
			mirror.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
