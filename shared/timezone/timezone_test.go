package timezone_test

import (
	"testing"
	"time"

	"spacy/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.Equal(t, timezone.GetLocation(), timezone.ToAppTime(time.Now().UTC()).Location())
}

func TestDayBounds(t *testing.T) {
	loc := timezone.GetLocation()
	at := time.Date(2025, 3, 10, 17, 45, 0, 0, loc)

	start, end := timezone.DayBounds(at)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc), end)
	assert.True(t, !at.Before(start) && at.Before(end))
}

func TestParseInstant(t *testing.T) {
	loc := timezone.GetLocation()

	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 with offset",
			value: "2025-03-10T09:00:00Z",
			want:  time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with fraction",
			value: "2025-03-10T09:00:00.000+05:30",
			want:  time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC),
		},
		{
			name:  "local minutes",
			value: "2025-03-10T09:00",
			want:  time.Date(2025, 3, 10, 9, 0, 0, 0, loc),
		},
		{
			name:  "local with space",
			value: "2025-03-10 09:00:30",
			want:  time.Date(2025, 3, 10, 9, 0, 30, 0, loc),
		},
		{
			name:    "garbage",
			value:   "tomorrow morning",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseInstant(tt.value)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, timezone.ToAppTime(at).Format(time.RFC3339), timezone.Format(at, time.RFC3339))
}
