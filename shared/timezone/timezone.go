// Package timezone pins wall-clock handling to APP_TIMEZONE. Unknown or empty
// names fall back to UTC.
package timezone

import (
	"sync"
	"time"

	"spacy/config"

	"github.com/rs/zerolog/log"
)

var (
	loadOnce    sync.Once
	appLocation = time.UTC
)

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func location() *time.Location {
	loadOnce.Do(func() {
		name := config.Get().App.Timezone
		if name == "" {
			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, using UTC")

			return
		}

		appLocation = loc
	})

	return appLocation
}

func GetLocation() *time.Location {
	return location()
}

func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// DayBounds returns local midnight of t's day and of the day after.
func DayBounds(t time.Time) (start, end time.Time) {
	local := ToAppTime(t)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())

	return start, start.AddDate(0, 0, 1)
}

// ParseInstant accepts RFC3339 and offset-less local date-times, the latter
// read in the application timezone.
func ParseInstant(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return parsed, nil
	}

	var lastErr error

	for _, layout := range localLayouts {
		parsed, err := Parse(layout, value)
		if err == nil {
			return parsed, nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}
