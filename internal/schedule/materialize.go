package schedule

import "time"

// Materialize produces the ordered, override-merged occurrences visible on
// the target day.
//
// A present-but-empty save record for the day is deleted and treated as
// absent. Every returned event is a deep copy of its base definition, so
// callers may mutate results freely.
func Materialize(day time.Time, data *UserData) DayData {
	dayStart := StartOfDay(day)
	result := DayData{Date: DayOf(dayStart)}
	if data == nil {
		return result
	}

	key := DayKey(dayStart)
	if daySave, ok := data.Save[key]; ok {
		if len(daySave) == 0 {
			delete(data.Save, key)
		} else {
			result.Save = daySave
		}
	}

	events := make([]Definition, 0)
	for _, def := range data.Schedules {
		if !OccursOn(def, dayStart) {
			continue
		}
		occurrence := def.Clone()
		if rec, ok := result.Save[def.ID]; ok && rec != nil {
			rec.Override.Apply(&occurrence)
		}
		events = append(events, occurrence)
	}

	SortOccurrences(events, result.Save)
	result.Events = events
	return result
}

// OccursOn reports whether a definition's repeat rule lands on the target
// day. Definitions without a start day are treated as not yet started.
func OccursOn(def Definition, day time.Time) bool {
	if def.Start.IsZero() {
		return false
	}

	start := StartOfDay(def.Start.Time)
	target := StartOfDay(day)
	if start.After(target) {
		return false
	}
	// The first occurrence shows regardless of the repeat setting.
	if start.Equal(target) {
		return true
	}
	if !def.RepeatEnd.IsZero() && StartOfDay(def.RepeatEnd.Time).Before(target) {
		return false
	}

	switch def.Repeat {
	case RepeatDaily:
		return true
	case RepeatWeekly:
		return target.Weekday() == start.Weekday()
	case RepeatMonthly:
		return target.Day() == start.Day()
	case RepeatYearly:
		return target.Day() == start.Day() && target.Month() == start.Month()
	case RepeatWeekdays:
		wd := target.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case RepeatWeekends:
		wd := target.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case RepeatCustom:
		for _, idx := range def.RepeatData {
			if normalizeWeekday(idx) == int(target.Weekday()) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// normalizeWeekday folds index 7 onto 0; both mean Sunday.
func normalizeWeekday(idx int) int {
	if idx == 7 {
		return 0
	}
	return idx
}
