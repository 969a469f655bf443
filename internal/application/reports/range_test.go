package reports_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naayikhata/khata-go/internal/application/reports"
)

var rangeNow = time.Date(2025, 6, 15, 14, 45, 12, 0, time.FixedZone("IST", 5*3600+1800))

func TestRangeFor_Today(t *testing.T) {
	start, end := reports.RangeFor(reports.PresetToday, rangeNow)

	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, rangeNow.Location()), start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, rangeNow.Location()), end,
		"end is tomorrow's local midnight; the interval covers all of today")
}

func TestRangeFor_7DAnd30DReachBackFromTomorrowMidnight(t *testing.T) {
	start7, end7 := reports.RangeFor(reports.Preset7D, rangeNow)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, rangeNow.Location()), start7)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, rangeNow.Location()), end7)
	assert.Equal(t, 7*24*time.Hour, end7.Sub(start7))

	start30, end30 := reports.RangeFor(reports.Preset30D, rangeNow)
	assert.Equal(t, time.Date(2025, 5, 17, 0, 0, 0, 0, rangeNow.Location()), start30)
	assert.Equal(t, end7, end30, "all presets share the same exclusive end")
}

func TestRangeFor_UnknownPresetFallsBackToToday(t *testing.T) {
	start, end := reports.RangeFor(reports.RangePreset("bogus"), rangeNow)
	wantStart, wantEnd := reports.RangeFor(reports.PresetToday, rangeNow)
	assert.Equal(t, wantStart, start)
	assert.Equal(t, wantEnd, end)
}
