package planner

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/lineplanner/pkg/ctdf"
	"github.com/travigo/lineplanner/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/lineplanner/pkg/schedule"
	"github.com/travigo/lineplanner/pkg/stations"
	"github.com/travigo/lineplanner/pkg/timetable"
	"github.com/travigo/lineplanner/pkg/util"
	"github.com/urfave/cli/v2"
)

// Options describes how to build the in memory timetable shared by every command
type Options struct {
	LineFile     string
	PatternsFile string

	StartDate ctdf.Date
	Days      int

	DelayProbability float64
	DelaySeed        int64

	Location *time.Location
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "line",
			Usage: "YAML line definition, defaults to the built in Red Line",
		},
		&cli.StringFlag{
			Name:  "patterns",
			Usage: "YAML service patterns, defaults to the built in patterns",
		},
		&cli.StringFlag{
			Name:  "start-date",
			Usage: "first service date as YYYY-MM-DD, defaults to today",
		},
		&cli.IntFlag{
			Name:  "days",
			Value: schedule.DefaultDays,
			Usage: "number of service days to generate",
		},
		&cli.Float64Flag{
			Name:  "delay-probability",
			Value: schedule.DefaultDelayProbability,
			Usage: "share of trips marked as delayed, 0 disables delays",
		},
		&cli.Int64Flag{
			Name:  "delay-seed",
			Usage: "seed for delay assignment, random when unset",
		},
		&cli.StringFlag{
			Name:  "timezone",
			Value: "Local",
			Usage: "IANA time zone the timetable runs in",
		},
	}
}

func OptionsFromContext(c *cli.Context) (Options, error) {
	location, err := time.LoadLocation(c.String("timezone"))
	if err != nil {
		return Options{}, fmt.Errorf("loading timezone: %w", err)
	}

	options := Options{
		LineFile:         c.String("line"),
		PatternsFile:     c.String("patterns"),
		Days:             c.Int("days"),
		DelayProbability: c.Float64("delay-probability"),
		DelaySeed:        time.Now().UnixNano(),
		Location:         location,
		StartDate:        ctdf.DateOf(time.Now().In(location)),
	}

	if c.IsSet("delay-seed") {
		options.DelaySeed = c.Int64("delay-seed")
	}

	if startDate := c.String("start-date"); startDate != "" {
		options.StartDate, err = ctdf.ParseDate(startDate)
		if err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

func (o Options) registry() (*stations.Registry, error) {
	if o.LineFile == "" {
		return stations.Default(), nil
	}

	return stations.LoadFile(o.LineFile)
}

func (o Options) patterns() (schedule.Patterns, error) {
	if o.PatternsFile == "" {
		return schedule.DefaultPatterns(), nil
	}

	return schedule.LoadPatternsFile(o.PatternsFile)
}

func (o Options) statusPolicy() schedule.StatusPolicy {
	if o.DelayProbability <= 0 {
		return schedule.ScheduledPolicy{}
	}

	return schedule.NewRandomDelayPolicy(o.DelaySeed, o.DelayProbability)
}

// Build loads the line and patterns then generates the trip set behind a query engine
func Build(options Options) (*timetable.Engine, error) {
	registry, err := options.registry()
	if err != nil {
		return nil, fmt.Errorf("loading line: %w", err)
	}

	patterns, err := options.patterns()
	if err != nil {
		return nil, fmt.Errorf("loading service patterns: %w", err)
	}

	generator := schedule.NewGenerator(registry, patterns, options.statusPolicy())
	if options.Days > 0 {
		generator.Days = options.Days
	}

	currentTime := time.Now()
	trips := generator.Generate(options.StartDate)

	log.Info().
		Str("line", registry.Line().PrimaryName).
		Int("stations", registry.Len()).
		Int("trips", len(trips)).
		Str("start", options.StartDate.String()).
		Str("Length", time.Since(currentTime).String()).
		Msg("Generated timetable")

	engine := timetable.NewEngine(registry, trips)
	engine.MinutesPerStation = generator.MinutesPerStation
	if options.Location != nil {
		engine.Location = options.Location
	}

	return engine, nil
}

// CacheExpiration reads LINEPLANNER_CACHE_TTL as a Go duration
func CacheExpiration() (time.Duration, error) {
	env := util.GetEnvironmentVariables()

	if env["LINEPLANNER_CACHE_TTL"] == "" {
		return cachedresults.DefaultExpiration, nil
	}

	expiration, err := time.ParseDuration(env["LINEPLANNER_CACHE_TTL"])
	if err != nil {
		return 0, fmt.Errorf("parsing LINEPLANNER_CACHE_TTL: %w", err)
	}

	return expiration, nil
}
