package reports

import "time"

// RangePreset is one of the report's quick date-range buttons.
type RangePreset string

const (
	PresetToday RangePreset = "TODAY"
	Preset7D    RangePreset = "7D"
	Preset30D   RangePreset = "30D"
)

// RangeFor resolves a preset to the half-open interval [start, end) in
// now's zone. End is always tomorrow's local midnight, so today is covered
// in full; 7D and 30D reach back from that same end, i.e. 7D spans the six
// previous days plus all of today.
func RangeFor(preset RangePreset, now time.Time) (start, end time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end = midnight.AddDate(0, 0, 1)

	switch preset {
	case Preset7D:
		start = end.AddDate(0, 0, -7)
	case Preset30D:
		start = end.AddDate(0, 0, -30)
	default: // TODAY
		start = midnight
	}
	return start, end
}
