package schedule

// Repeat identifies how a definition recurs onto calendar days.
type Repeat int

const (
	// RepeatNone means the definition occurs only on its start day.
	RepeatNone Repeat = iota
	// RepeatDaily occurs on every day from the start day onward.
	RepeatDaily
	// RepeatWeekly occurs on the start day's weekday.
	RepeatWeekly
	// RepeatMonthly occurs on the start day's day-of-month.
	RepeatMonthly
	// RepeatYearly occurs on the start day's month and day-of-month.
	RepeatYearly
	// RepeatWeekdays occurs Monday through Friday.
	RepeatWeekdays
	// RepeatWeekends occurs Saturday and Sunday.
	RepeatWeekends
	// RepeatCustom occurs on the weekdays listed in RepeatData.
	RepeatCustom
)

// PendingID marks a definition or subtask that has not been persisted yet.
// It is replaced by max(existing ids)+1 when the owning list is saved.
const PendingID = -1

// Subtask is a child work item of a definition.
type Subtask struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Order  int      `json:"order"`
	Score  int      `json:"score"`
	ImgIDs []string `json:"imgIds,omitempty"`
}

// Definition is a recurring or one-off task definition owned by a user.
type Definition struct {
	ID         int       `json:"id"`
	Start      DayTime   `json:"startTs"`
	End        DayTime   `json:"endTs"`
	AllDay     bool      `json:"allDay"`
	Reminder   int       `json:"reminder"`
	Repeat     Repeat    `json:"repeat"`
	RepeatData []int     `json:"repeatData,omitempty"`
	RepeatEnd  DayTime   `json:"repeatEndTs"`
	Title      string    `json:"title"`
	Color      int       `json:"color"`
	Priority   int       `json:"priority"`
	GroupID    int       `json:"groupId"`
	Order      int       `json:"order"`
	Score      int       `json:"score"`
	Subtasks   []Subtask `json:"subtasks"`
}

// Save records completion and override state for one (day, schedule) pair.
//
// Score is the granted baseline: the points already credited for this
// occurrence, tracked so toggling completion off and on never double-awards.
type Save struct {
	State    int         `json:"state"`
	Subtasks map[int]int `json:"subtasks,omitempty"`
	Override *Override   `json:"scheduleOverride,omitempty"`
	Score    int         `json:"score"`
}

// Completion states stored in Save.State and Save.Subtasks values.
const (
	StateIncomplete = 0
	StateComplete   = 1
)

// UserData is the root aggregate persisted per user: the full definition
// list plus the day-keyed save map.
type UserData struct {
	ID        int                      `json:"id"`
	Name      string                   `json:"name"`
	UserID    string                   `json:"userId"`
	Schedules []Definition             `json:"schedules"`
	Save      map[string]map[int]*Save `json:"save"`
}

// DayData is the derived view of a single calendar day. It is never
// persisted; Events are deep copies merged with that day's overrides.
type DayData struct {
	Date   DayTime
	Events []Definition
	Save   map[int]*Save
}
