package schedule

import (
	"math"
	"sort"
)

// orderSentinel sorts items without an explicit order after every ordered
// item sharing the same completion state.
const orderSentinel = math.MaxInt32

// CompareOccurrences orders two occurrences for day display: incomplete
// before complete, then by explicit order ascending, then by id.
func CompareOccurrences(a, b Definition, daySave map[int]*Save) int {
	if byState := occurrenceState(daySave, a.ID) - occurrenceState(daySave, b.ID); byState != 0 {
		return byState
	}
	if byOrder := effectiveOrder(a.Order) - effectiveOrder(b.Order); byOrder != 0 {
		return byOrder
	}
	return a.ID - b.ID
}

// SortOccurrences sorts events in place using CompareOccurrences.
func SortOccurrences(events []Definition, daySave map[int]*Save) {
	sort.SliceStable(events, func(i, j int) bool {
		return CompareOccurrences(events[i], events[j], daySave) < 0
	})
}

// CompareSubtasks orders subtasks by their completion flag in the save
// record, then explicit order, then id.
func CompareSubtasks(a, b Subtask, rec *Save) int {
	if byState := subtaskState(rec, a.ID) - subtaskState(rec, b.ID); byState != 0 {
		return byState
	}
	if byOrder := effectiveOrder(a.Order) - effectiveOrder(b.Order); byOrder != 0 {
		return byOrder
	}
	return a.ID - b.ID
}

// SortSubtasks sorts subtasks in place using CompareSubtasks.
func SortSubtasks(subtasks []Subtask, rec *Save) {
	sort.SliceStable(subtasks, func(i, j int) bool {
		return CompareSubtasks(subtasks[i], subtasks[j], rec) < 0
	})
}

func occurrenceState(daySave map[int]*Save, id int) int {
	if rec, ok := daySave[id]; ok && rec != nil {
		return rec.State
	}
	return StateIncomplete
}

func subtaskState(rec *Save, id int) int {
	if rec == nil {
		return StateIncomplete
	}
	if state, ok := rec.Subtasks[id]; ok {
		return state
	}
	return StateIncomplete
}

// effectiveOrder maps the unset zero order to the sentinel so explicitly
// ordered items sort first.
func effectiveOrder(order int) int {
	if order == 0 {
		return orderSentinel
	}
	return order
}
