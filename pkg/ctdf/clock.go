package ctdf

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

// ClockTime is a wall clock time at minute resolution, stored as minutes after midnight
type ClockTime int

func NewClockTime(hour int, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

func ClockTimeOf(t time.Time) ClockTime {
	return NewClockTime(t.Hour(), t.Minute())
}

func ParseClockTime(value string) (ClockTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", value, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}

	return NewClockTime(hour, minute), nil
}

func (c ClockTime) Hour() int {
	return int(c) / 60
}

func (c ClockTime) Minute() int {
	return int(c) % 60
}

// Add carries minutes into hours and hours into days.
// The returned clock is always within a single day, the second value is the number of days carried.
func (c ClockTime) Add(minutes int) (ClockTime, int) {
	hour := c.Hour()
	minute := c.Minute() + minutes

	hour += minute / 60
	minute = minute % 60

	days := hour / 24
	hour = hour % 24

	return NewClockTime(hour, minute), days
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

// Date is a civil calendar date with no time or zone component
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateFormat = "2006-01-02"

func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateFormat, value)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) AddDays(days int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+days, 0, 0, 0, 0, time.UTC))
}

func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

func (d Date) Before(other Date) bool {
	return d.In(time.UTC).Before(other.In(time.UTC))
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.In(time.UTC).Format(dateFormat)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// DateTime combines a civil date and clock time in the given location
func DateTime(date Date, clock ClockTime, loc *time.Location) time.Time {
	return time.Date(date.Year, date.Month, date.Day, clock.Hour(), clock.Minute(), 0, 0, loc)
}
