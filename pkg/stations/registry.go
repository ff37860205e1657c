package stations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/travigo/lineplanner/pkg/ctdf"
)

type Line struct {
	PrimaryIdentifier string `groups:"basic"`
	PrimaryName       string `groups:"basic"`
}

// Registry is the ordered set of stations along a line.
// Station order is the physical order along the line and is the only basis for distance.
type Registry struct {
	line     Line
	stations []*ctdf.Station

	index  map[string]int
	byName map[string]int
	byCode map[string]int
}

func NewRegistry(line Line, stations []*ctdf.Station) (*Registry, error) {
	if len(stations) == 0 {
		return nil, errors.New("line has no stations")
	}

	registry := &Registry{
		line:     line,
		stations: make([]*ctdf.Station, 0, len(stations)),
		index:    map[string]int{},
		byName:   map[string]int{},
		byCode:   map[string]int{},
	}

	for i, station := range stations {
		if station.PrimaryIdentifier == "" {
			return nil, fmt.Errorf("station at position %d has no identifier", i)
		}
		if _, exists := registry.index[station.PrimaryIdentifier]; exists {
			return nil, fmt.Errorf("duplicate station identifier %s", station.PrimaryIdentifier)
		}
		if _, exists := registry.byCode[station.ShortCode]; exists && station.ShortCode != "" {
			return nil, fmt.Errorf("duplicate station code %s", station.ShortCode)
		}

		registry.index[station.PrimaryIdentifier] = i
		registry.byName[station.PrimaryName] = i
		if station.ShortCode != "" {
			registry.byCode[station.ShortCode] = i
		}

		registry.stations = append(registry.stations, station)
	}

	return registry, nil
}

func (r *Registry) Line() Line {
	return r.line
}

func (r *Registry) Len() int {
	return len(r.stations)
}

func (r *Registry) All() []*ctdf.Station {
	all := make([]*ctdf.Station, len(r.stations))
	copy(all, r.stations)

	return all
}

func (r *Registry) At(index int) (*ctdf.Station, bool) {
	if index < 0 || index >= len(r.stations) {
		return nil, false
	}

	return r.stations[index], true
}

func (r *Registry) ByID(id string) (*ctdf.Station, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}

	return r.stations[i], true
}

func (r *Registry) IndexOf(id string) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

func (r *Registry) ByName(name string) (*ctdf.Station, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}

	return r.stations[i], true
}

func (r *Registry) ByCode(code string) (*ctdf.Station, bool) {
	i, ok := r.byCode[strings.ToUpper(code)]
	if !ok {
		return nil, false
	}

	return r.stations[i], true
}

// Distance is the number of stations between a and b along the line
func (r *Registry) Distance(fromID string, toID string) (int, bool) {
	from, ok := r.index[fromID]
	if !ok {
		return 0, false
	}
	to, ok := r.index[toID]
	if !ok {
		return 0, false
	}

	if to > from {
		return to - from, true
	}
	return from - to, true
}

// Between returns every station touched travelling from one station to another, both ends included
func (r *Registry) Between(fromID string, toID string) []*ctdf.Station {
	from, ok := r.index[fromID]
	if !ok {
		return nil
	}
	to, ok := r.index[toID]
	if !ok {
		return nil
	}

	var touched []*ctdf.Station
	if from <= to {
		for i := from; i <= to; i++ {
			touched = append(touched, r.stations[i])
		}
	} else {
		for i := from; i >= to; i-- {
			touched = append(touched, r.stations[i])
		}
	}

	return touched
}

// Nearest finds the closest station to a location.
// The location is passed in by the caller rather than read from any shared state.
func (r *Registry) Nearest(location *ctdf.Location) (*ctdf.Station, float64, bool) {
	if !location.Valid() {
		return nil, 0, false
	}

	var nearest *ctdf.Station
	nearestDistance := 0.0

	for _, station := range r.stations {
		if !station.Location.Valid() {
			continue
		}

		distance := location.Distance(station.Location)
		if nearest == nil || distance < nearestDistance {
			nearest = station
			nearestDistance = distance
		}
	}

	return nearest, nearestDistance, nearest != nil
}
