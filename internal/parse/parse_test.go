package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoomNumber(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  ParsedRoom
		expectErr bool
	}{
		{
			name:     "Three digits",
			raw:      "101",
			expected: ParsedRoom{Number: "101", Floor: 1, Seq: 1},
		},
		{
			name:     "Prefixed block",
			raw:      "a-203",
			expected: ParsedRoom{Number: "A-203", Floor: 2, Seq: 3},
		},
		{
			name:     "Two digit floor",
			raw:      "1205",
			expected: ParsedRoom{Number: "1205", Floor: 12, Seq: 5},
		},
		{
			name:     "Spaces are removed",
			raw:      "  B 3 1 0 ",
			expected: ParsedRoom{Number: "B310", Floor: 3, Seq: 10},
		},
		{
			name:     "Short number has no floor",
			raw:      "7",
			expected: ParsedRoom{Number: "7", Seq: 7},
		},
		{
			name:     "No digits",
			raw:      "Suite",
			expected: ParsedRoom{Number: "SUITE"},
		},
		{
			name:      "Empty",
			raw:       "   ",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RoomNumber(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDate(t *testing.T) {
	got, err := Date("2025-01-31")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), got)

	got, err = Date("2025-03-04T22:15:00+07:00")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), got)

	_, err = Date("31/01/2025")
	assert.Error(t, err)
}

func TestTodayUsesLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	// 20:00 UTC on the 1st is already the 2nd in Jakarta.
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), Today(now, jakarta))
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Today(now, nil))
}

func TestMonth(t *testing.T) {
	got, err := Month("2025-02")
	assert.NoError(t, err)
	assert.Equal(t, "2025-02", MonthKey(got))

	from, to := MonthRange(2024, time.December)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)

	_, err = Month("Feb 2025")
	assert.Error(t, err)
}
