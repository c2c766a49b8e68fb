package dataset

import (
	"fmt"
	"strings"
)

// IdentifierProperty is the column/property that keys both input files:
// the urban centre name as published in the UCD dataset, e.g. "Karlsruhe [DEU]".
const IdentifierProperty = "UC_NM_MN"

// Season is one of the four seasons the dataset is aggregated over.
type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// Seasons lists all valid seasons in dataset column order.
var Seasons = []Season{Winter, Spring, Summer, Fall}

// TimeOfDay distinguishes the day and night satellite overpasses.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Night TimeOfDay = "night"
)

// TimesOfDay lists the two valid times of day.
var TimesOfDay = []TimeOfDay{Day, Night}

// ParseSeason validates a season name (case-insensitive).
func ParseSeason(s string) (Season, error) {
	switch Season(strings.ToLower(s)) {
	case Winter:
		return Winter, nil
	case Spring:
		return Spring, nil
	case Summer:
		return Summer, nil
	case Fall:
		return Fall, nil
	}
	return "", fmt.Errorf("unknown season %q (want winter, spring, summer, or fall)", s)
}

// ParseTimeOfDay validates a time-of-day name (case-insensitive).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch TimeOfDay(strings.ToLower(s)) {
	case Day:
		return Day, nil
	case Night:
		return Night, nil
	}
	return "", fmt.Errorf("unknown time of day %q (want day or night)", s)
}

// Title returns the capitalized form used in dataset column names.
func (s Season) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[0])) + string(s[1:])
}

// Title returns the capitalized form used in dataset column names.
func (t TimeOfDay) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[0])) + string(t[1:])
}

// ColumnName returns the CSV header for one season/time combination,
// e.g. DeltaT_Summer_Night_mean.
func ColumnName(season Season, tod TimeOfDay) string {
	return fmt.Sprintf("DeltaT_%s_%s_mean", season.Title(), tod.Title())
}

// CountryRecord holds the eight pre-computed ΔT means for one country.
// Records are immutable after load.
type CountryRecord struct {
	ID          string  `json:"id"`
	WinterDay   float64 `json:"winterDay"`
	WinterNight float64 `json:"winterNight"`
	SpringDay   float64 `json:"springDay"`
	SpringNight float64 `json:"springNight"`
	SummerDay   float64 `json:"summerDay"`
	SummerNight float64 `json:"summerNight"`
	FallDay     float64 `json:"fallDay"`
	FallNight   float64 `json:"fallNight"`
}

// Value returns the ΔT mean for one season/time combination.
func (r CountryRecord) Value(season Season, tod TimeOfDay) float64 {
	switch season {
	case Winter:
		if tod == Day {
			return r.WinterDay
		}
		return r.WinterNight
	case Spring:
		if tod == Day {
			return r.SpringDay
		}
		return r.SpringNight
	case Summer:
		if tod == Day {
			return r.SummerDay
		}
		return r.SummerNight
	default:
		if tod == Day {
			return r.FallDay
		}
		return r.FallNight
	}
}

// SetValue stores one ΔT mean during load. Records are not mutated
// after the loader hands them off.
func (r *CountryRecord) SetValue(season Season, tod TimeOfDay, v float64) {
	switch season {
	case Winter:
		if tod == Day {
			r.WinterDay = v
		} else {
			r.WinterNight = v
		}
	case Spring:
		if tod == Day {
			r.SpringDay = v
		} else {
			r.SpringNight = v
		}
	case Summer:
		if tod == Day {
			r.SummerDay = v
		} else {
			r.SummerNight = v
		}
	default:
		if tod == Day {
			r.FallDay = v
		} else {
			r.FallNight = v
		}
	}
}

// ScatterPoint is one season's day/night ΔT pair for the scatter view.
type ScatterPoint struct {
	Season Season  `json:"season"`
	Day    float64 `json:"day"`
	Night  float64 `json:"night"`
}

// ScatterPoints returns the four per-season day/night pairs in season order.
func (r CountryRecord) ScatterPoints() []ScatterPoint {
	points := make([]ScatterPoint, 0, len(Seasons))
	for _, s := range Seasons {
		points = append(points, ScatterPoint{
			Season: s,
			Day:    r.Value(s, Day),
			Night:  r.Value(s, Night),
		})
	}
	return points
}

// Selection is the current (season, time-of-day) pair driving the map.
type Selection struct {
	Season Season    `json:"season"`
	Time   TimeOfDay `json:"time"`
}

// DefaultSelection is the view shown right after load: summer nights,
// where the urban heat island signal is strongest.
func DefaultSelection() Selection {
	return Selection{Season: Summer, Time: Night}
}

// ParseSelection validates a raw season/time pair from the UI.
func ParseSelection(season, tod string) (Selection, error) {
	s, err := ParseSeason(season)
	if err != nil {
		return Selection{}, err
	}
	t, err := ParseTimeOfDay(tod)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Season: s, Time: t}, nil
}

// Label returns the human form shown in the dropdown, e.g. "Summer (Night)".
func (s Selection) Label() string {
	return fmt.Sprintf("%s (%s)", s.Season.Title(), s.Time.Title())
}
