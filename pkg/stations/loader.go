package stations

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/travigo/lineplanner/pkg/ctdf"
	"gopkg.in/yaml.v3"
)

//go:embed data/line.yaml
var defaultLineDefinition []byte

type lineDefinition struct {
	Line struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"line"`

	Stations []stationDefinition `yaml:"stations"`
}

type stationDefinition struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Code        string   `yaml:"code"`
	City        string   `yaml:"city"`
	Operational *bool    `yaml:"operational"`
	Facilities  []string `yaml:"facilities"`
	Latitude    float64  `yaml:"latitude"`
	Longitude   float64  `yaml:"longitude"`
}

// Default returns the registry for the built in line definition
func Default() *Registry {
	registry, err := Load(bytes.NewReader(defaultLineDefinition))
	if err != nil {
		panic(err)
	}

	return registry
}

func LoadFile(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

func Load(reader io.Reader) (*Registry, error) {
	var definition lineDefinition

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&definition); err != nil {
		return nil, fmt.Errorf("decoding line definition: %w", err)
	}

	line := Line{
		PrimaryIdentifier: definition.Line.ID,
		PrimaryName:       definition.Line.Name,
	}

	var stations []*ctdf.Station
	for _, stationDefinition := range definition.Stations {
		operational := true
		if stationDefinition.Operational != nil {
			operational = *stationDefinition.Operational
		}

		station := &ctdf.Station{
			PrimaryIdentifier: stationDefinition.ID,
			PrimaryName:       stationDefinition.Name,
			ShortCode:         strings.ToUpper(stationDefinition.Code),
			City:              stationDefinition.City,
			LineRef:           line.PrimaryIdentifier,
			Operational:       operational,
			Facilities:        stationDefinition.Facilities,
		}

		if stationDefinition.Latitude != 0 || stationDefinition.Longitude != 0 {
			station.Location = ctdf.NewLocation(stationDefinition.Latitude, stationDefinition.Longitude)
		}

		stations = append(stations, station)
	}

	return NewRegistry(line, stations)
}
