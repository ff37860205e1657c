package ctdf

type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionReverse Direction = "reverse"
)

var Directions = []Direction{DirectionForward, DirectionReverse}

func (d Direction) Suffix() string {
	if d == DirectionReverse {
		return "R"
	}

	return "F"
}

type DayType string

const (
	DayTypeWeekday  DayType = "Weekday"
	DayTypeFriday   DayType = "Friday"
	DayTypeSaturday DayType = "Saturday"
)

type ServiceWindow struct {
	Direction      Direction `yaml:"direction"`
	Start          ClockTime `yaml:"start"`
	End            ClockTime `yaml:"end"`
	HeadwayMinutes int       `yaml:"headway"`
}

// ServicePattern is the ordered list of windows per direction for a DayType
type ServicePattern struct {
	DayType DayType                       `yaml:"day"`
	Windows map[Direction][]ServiceWindow `yaml:"windows"`
}
