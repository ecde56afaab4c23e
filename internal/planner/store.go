package planner

import (
	"github.com/example/dayplanner/internal/schedule"
)

// saveOutcome reports what applyScheduleSave changed: the definition after id
// allocation and the score delta owed to the owner's account. A zero delta
// means no settlement is needed.
type saveOutcome struct {
	definition schedule.Definition
	scoreDelta int
}

// applyScheduleSave applies one schedule edit plus its completion record to
// the aggregate in place.
//
// Mode "all" persists the edited definition into the canonical list,
// allocating max(existing)+1 for any pending ids. Mode "cur" leaves the
// canonical list untouched and stamps the save record with an override patch
// so only the targeted day reflects the edit. Any other mode fails with
// ErrUnknownSaveMode and leaves the aggregate unchanged.
func applyScheduleSave(day schedule.DayTime, data *schedule.UserData, def schedule.Definition, save schedule.Save, mode SaveMode) (saveOutcome, error) {
	switch mode {
	case SaveModeAll:
		def = upsertDefinition(data, def)
	case SaveModeCurrent:
		if base, ok := findDefinition(data.Schedules, def.ID); ok {
			save.Override = schedule.DiffOverride(base, def)
		} else {
			save.Override = schedule.OverrideOf(def)
		}
	default:
		return saveOutcome{}, ErrUnknownSaveMode
	}

	key := day.Key()
	if data.Save == nil {
		data.Save = make(map[string]map[int]*schedule.Save)
	}
	if data.Save[key] == nil {
		data.Save[key] = make(map[int]*schedule.Save)
	}

	prev := data.Save[key][def.ID]
	delta := settle(def, &save, prev)
	data.Save[key][def.ID] = save.Clone()

	return saveOutcome{definition: def, scoreDelta: delta}, nil
}

// settle adjusts the save record's granted-score baseline for a completion
// state transition and returns the delta owed to the owner's account.
//
// Completing grants the base score plus every subtask score, minus whatever
// was already granted for this occurrence, and marks all subtasks complete.
// Un-completing claws back only the base score. The asymmetry mirrors the
// original product behavior.
func settle(def schedule.Definition, save *schedule.Save, prev *schedule.Save) int {
	granted := 0
	wasComplete := false
	if prev != nil {
		granted = prev.Score
		wasComplete = prev.State == schedule.StateComplete
	}

	switch {
	case save.State == schedule.StateComplete && !wasComplete:
		newScore := def.Score
		if save.Subtasks == nil && len(def.Subtasks) > 0 {
			save.Subtasks = make(map[int]int, len(def.Subtasks))
		}
		for _, sub := range def.Subtasks {
			newScore += sub.Score
			save.Subtasks[sub.ID] = schedule.StateComplete
		}
		if newScore > granted {
			save.Score = newScore
			return newScore - granted
		}
		save.Score = granted
		return 0

	case save.State != schedule.StateComplete && wasComplete:
		if granted == 0 {
			return 0
		}
		save.Score = granted - def.Score
		return -def.Score

	default:
		save.Score = granted
		return 0
	}
}

// upsertDefinition inserts or replaces the definition in the canonical list,
// allocating fresh ids for the definition and any pending subtasks.
func upsertDefinition(data *schedule.UserData, def schedule.Definition) schedule.Definition {
	if def.ID == schedule.PendingID {
		def.ID = nextScheduleID(data.Schedules)
	}
	allocateSubtaskIDs(&def)

	for i := range data.Schedules {
		if data.Schedules[i].ID == def.ID {
			data.Schedules[i] = def.Clone()
			return def
		}
	}
	data.Schedules = append(data.Schedules, def.Clone())
	return def
}

// removeDefinition drops the definition with the given id from the canonical
// list. Historical save records for the id are kept so past completions stay
// visible.
func removeDefinition(data *schedule.UserData, id int) bool {
	for i := range data.Schedules {
		if data.Schedules[i].ID == id {
			data.Schedules = append(data.Schedules[:i], data.Schedules[i+1:]...)
			return true
		}
	}
	return false
}

func findDefinition(defs []schedule.Definition, id int) (schedule.Definition, bool) {
	for _, def := range defs {
		if def.ID == id {
			return def, true
		}
	}
	return schedule.Definition{}, false
}

func nextScheduleID(defs []schedule.Definition) int {
	max := 0
	for _, def := range defs {
		if def.ID > max {
			max = def.ID
		}
	}
	return max + 1
}

func allocateSubtaskIDs(def *schedule.Definition) {
	max := 0
	for _, sub := range def.Subtasks {
		if sub.ID > max {
			max = sub.ID
		}
	}
	for i := range def.Subtasks {
		if def.Subtasks[i].ID == schedule.PendingID {
			max++
			def.Subtasks[i].ID = max
		}
	}
}
