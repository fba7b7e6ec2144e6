package availability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Djberg2/GrndWrkv0/internal/models"
)

const (
	DateLayout = "2006-01-02"

	openMinute  = 9 * 60
	closeMinute = 17 * 60
	granularity = 30
)

// Grid returns every slot between opening and closing time, regardless of
// configuration.
func Grid() []string {
	out := make([]string, 0, (closeMinute-openMinute)/granularity)
	for m := openMinute; m < closeMinute; m += granularity {
		out = append(out, formatMinute(m))
	}
	return out
}

// Slots returns the offerable slots for date in ascending order. The booking
// window is not enforced.
func Slots(cfg models.AvailabilityConfig, date string, now time.Time, taken []string) ([]string, error) {
	day, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return nil, eris.Wrapf(err, "availability: parse date %q", date)
	}

	if isBlocked(cfg, date) || day.Before(earliestDay(cfg, now)) {
		return []string{}, nil
	}
	schedule, ok := dayConfig(cfg, day.Weekday())
	if !ok || !schedule.Enabled {
		return []string{}, nil
	}

	start, end := hourRange(schedule.Start, schedule.End)
	lunchStart, lunchEnd, hasLunch := parseRange(schedule.Lunch)

	occupied := make(map[string]bool, len(taken))
	for _, t := range taken {
		if n, ok := NormalizeTime(t); ok {
			occupied[n] = true
		}
	}

	out := []string{}
	for m := openMinute; m < closeMinute; m += granularity {
		if m < start || m >= end {
			continue
		}
		if hasLunch && m >= lunchStart && m < lunchEnd {
			continue
		}
		slot := formatMinute(m)
		if occupied[slot] {
			continue
		}
		out = append(out, slot)
	}
	sort.Strings(out)
	return out, nil
}

// NormalizeTime accepts "9:00", "09:00", "09:00:00" and "9:00 AM" forms and
// returns the HH:MM representation used by Slots.
func NormalizeTime(v string) (string, bool) {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return "", false
	}
	for _, layout := range []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "03:04 PM"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("15:04"), true
		}
	}
	return "", false
}

func earliestDay(cfg models.AvailabilityConfig, now time.Time) time.Time {
	hours, err := strconv.Atoi(strings.TrimSpace(cfg.MinNotice))
	if err != nil || hours < 0 {
		hours = 0
	}
	t := now.Add(time.Duration(hours) * time.Hour)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
}

func isBlocked(cfg models.AvailabilityConfig, date string) bool {
	for _, b := range cfg.BlockedDates {
		if strings.TrimSpace(b.Date) == date {
			return true
		}
	}
	return false
}

func dayConfig(cfg models.AvailabilityConfig, wd time.Weekday) (models.DayAvailability, bool) {
	for _, d := range cfg.Days {
		if strings.EqualFold(strings.TrimSpace(d.Name), wd.String()) {
			return d, true
		}
	}
	return models.DayAvailability{}, false
}

// hourRange falls back to the full grid for unparseable bounds.
func hourRange(start, end string) (int, int) {
	s, ok := parseHour(start)
	if !ok {
		s = openMinute
	}
	e, ok := parseHour(end)
	if !ok {
		e = closeMinute
	}
	return s, e
}

// parseRange reads "12-13" style windows.
func parseRange(v string) (int, int, bool) {
	parts := strings.SplitN(v, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	s, ok1 := parseHour(parts[0])
	e, ok2 := parseHour(parts[1])
	if !ok1 || !ok2 || e <= s {
		return 0, 0, false
	}
	return s, e, true
}

// parseHour accepts "8", "08" or "8:30" and returns minutes since midnight.
func parseHour(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	h, m := v, "0"
	if i := strings.IndexByte(v, ':'); i >= 0 {
		h, m = v[:i], v[i+1:]
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 24 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
