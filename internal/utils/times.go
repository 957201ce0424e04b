package utils

import (
	"fmt"
	"time"
)

// DateLayout is the format of quest completion dates.
const DateLayout = "2006-01-02"

// LoadLocation resolves a time zone name, falling back to the local zone.
func LoadLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// DateString formats t as a calendar date in loc.
func DateString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ISOWeekRange returns the Monday and Sunday of the ISO week containing t, as dates in loc.
func ISOWeekRange(t time.Time, loc *time.Location) (string, string) {
	local := t.In(loc)
	offset := (int(local.Weekday()) + 6) % 7
	monday := time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, loc)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(DateLayout), sunday.Format(DateLayout)
}

// GetTimezoneInfo describes the tracker's clock for status messages.
func GetTimezoneInfo(now time.Time, loc *time.Location) string {
	local := now.In(loc)
	name, offset := local.Zone()
	return fmt.Sprintf("🕐 %s %s (UTC%+d)", local.Format("2006-01-02 15:04"), name, offset/3600)
}
