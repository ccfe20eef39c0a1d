package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	type TestCase struct {
		description string
		elapsed     time.Duration
		want        string
	}

	testCases := []TestCase{
		{
			description: "all units present",
			elapsed:     90061 * time.Second,
			want:        "1d 1h 1m 1s",
		},
		{
			description: "seconds only",
			elapsed:     45 * time.Second,
			want:        "45s",
		},
		{
			description: "zero middle units omitted",
			elapsed:     3605 * time.Second,
			want:        "1h 5s",
		},
		{
			description: "zero duration keeps seconds",
			elapsed:     0,
			want:        "0s",
		},
		{
			description: "exact day",
			elapsed:     24 * time.Hour,
			want:        "1d 0s",
		},
		{
			description: "minutes and seconds",
			elapsed:     125 * time.Second,
			want:        "2m 5s",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := FormatUptime(testCase.elapsed)

			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestZoneLabel(t *testing.T) {
	type TestCase struct {
		description string
		offset      int
		want        string
	}

	testCases := []TestCase{
		{
			description: "positive offset",
			offset:      7,
			want:        "GMT+7",
		},
		{
			description: "negative offset",
			offset:      -3,
			want:        "GMT-3",
		},
		{
			description: "zero offset",
			offset:      0,
			want:        "GMT+0",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got := ZoneLabel(testCase.offset)

			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestZone(t *testing.T) {
	zone := Zone(7)

	assert.Equal(t, "GMT+7", zone.String())

	noon := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).In(zone)
	assert.Equal(t, 19, noon.Hour())
}
