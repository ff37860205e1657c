package schedule

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/travigo/lineplanner/pkg/ctdf"
	"gopkg.in/yaml.v3"
)

type Patterns map[ctdf.DayType]ctdf.ServicePattern

// ClassifyDay is the only place a weekday is mapped onto a service pattern
func ClassifyDay(weekday time.Weekday) ctdf.DayType {
	switch weekday {
	case time.Friday:
		return ctdf.DayTypeFriday
	case time.Saturday:
		return ctdf.DayTypeSaturday
	default:
		return ctdf.DayTypeWeekday
	}
}

func window(direction ctdf.Direction, start string, end string, headway int) ctdf.ServiceWindow {
	startTime, err := ctdf.ParseClockTime(start)
	if err != nil {
		panic(err)
	}
	endTime, err := ctdf.ParseClockTime(end)
	if err != nil {
		panic(err)
	}

	return ctdf.ServiceWindow{
		Direction:      direction,
		Start:          startTime,
		End:            endTime,
		HeadwayMinutes: headway,
	}
}

func DefaultPatterns() Patterns {
	forward := ctdf.DirectionForward
	reverse := ctdf.DirectionReverse

	return Patterns{
		ctdf.DayTypeWeekday: {
			DayType: ctdf.DayTypeWeekday,
			Windows: map[ctdf.Direction][]ctdf.ServiceWindow{
				forward: {
					window(forward, "07:10", "09:00", 10),
					window(forward, "09:15", "15:45", 15),
					window(forward, "16:00", "19:00", 10),
					window(forward, "19:20", "23:00", 20),
				},
				reverse: {
					window(reverse, "06:50", "09:00", 10),
					window(reverse, "09:15", "15:45", 15),
					window(reverse, "16:00", "19:00", 10),
					window(reverse, "19:20", "22:40", 20),
				},
			},
		},
		// Friday service starts in the afternoon
		ctdf.DayTypeFriday: {
			DayType: ctdf.DayTypeFriday,
			Windows: map[ctdf.Direction][]ctdf.ServiceWindow{
				forward: {
					window(forward, "14:00", "18:00", 15),
					window(forward, "18:20", "23:40", 20),
				},
				reverse: {
					window(reverse, "13:40", "18:00", 15),
					window(reverse, "18:20", "23:20", 20),
				},
			},
		},
		ctdf.DayTypeSaturday: {
			DayType: ctdf.DayTypeSaturday,
			Windows: map[ctdf.Direction][]ctdf.ServiceWindow{
				forward: {
					window(forward, "07:10", "12:10", 20),
					window(forward, "12:40", "23:10", 30),
				},
				reverse: {
					window(reverse, "06:50", "11:50", 20),
					window(reverse, "12:20", "22:50", 30),
				},
			},
		},
	}
}

func LoadPatternsFile(path string) (Patterns, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadPatterns(file)
}

// LoadPatterns reads a list of service patterns. Window direction is taken from the map key it is listed under.
func LoadPatterns(reader io.Reader) (Patterns, error) {
	var definitions []ctdf.ServicePattern

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&definitions); err != nil {
		return nil, fmt.Errorf("decoding service patterns: %w", err)
	}

	patterns := Patterns{}
	for _, pattern := range definitions {
		for direction, windows := range pattern.Windows {
			if direction != ctdf.DirectionForward && direction != ctdf.DirectionReverse {
				return nil, fmt.Errorf("%s: unknown direction %q", pattern.DayType, direction)
			}

			for i := range windows {
				windows[i].Direction = direction
			}
		}

		patterns[pattern.DayType] = pattern
	}

	if err := patterns.Validate(); err != nil {
		return nil, err
	}

	return patterns, nil
}

// Validate checks every day type is present and every window is usable.
// Overlapping or non-contiguous windows are not rejected.
func (p Patterns) Validate() error {
	var errs []error

	for _, dayType := range []ctdf.DayType{ctdf.DayTypeWeekday, ctdf.DayTypeFriday, ctdf.DayTypeSaturday} {
		pattern, exists := p[dayType]
		if !exists {
			errs = append(errs, fmt.Errorf("missing service pattern for %s", dayType))
			continue
		}

		for direction, windows := range pattern.Windows {
			for _, serviceWindow := range windows {
				if serviceWindow.HeadwayMinutes <= 0 {
					errs = append(errs, fmt.Errorf("%s %s %s: headway must be positive", dayType, direction, serviceWindow.Start))
				}
				if serviceWindow.End < serviceWindow.Start {
					errs = append(errs, fmt.Errorf("%s %s %s: window ends before it starts", dayType, direction, serviceWindow.Start))
				}
			}
		}
	}

	return errors.Join(errs...)
}

// Slots lists the base departure times of a window, start and end inclusive
func Slots(serviceWindow ctdf.ServiceWindow) []ctdf.ClockTime {
	if serviceWindow.HeadwayMinutes <= 0 {
		return nil
	}

	var slots []ctdf.ClockTime
	for slot := serviceWindow.Start; slot <= serviceWindow.End; slot += ctdf.ClockTime(serviceWindow.HeadwayMinutes) {
		slots = append(slots, slot)
	}

	return slots
}
