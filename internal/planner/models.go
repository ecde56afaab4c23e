package planner

import (
	"github.com/example/dayplanner/internal/persistence"
	"github.com/example/dayplanner/internal/schedule"
)

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID  string
	IsAdmin bool
}

// SaveMode selects how a schedule edit is applied.
type SaveMode string

const (
	// SaveModeAll writes the edit into the canonical schedule definition.
	SaveModeAll SaveMode = "all"
	// SaveModeCurrent confines the edit to the targeted day via an override patch.
	SaveModeCurrent SaveMode = "cur"
)

// GetDayParams wraps the data required to materialize one calendar day.
type GetDayParams struct {
	Principal Principal
	UserID    string
	Day       schedule.DayTime
}

// SaveScheduleParams wraps the data required to record a schedule edit and
// its completion state for one day.
type SaveScheduleParams struct {
	Principal  Principal
	UserID     string
	Day        schedule.DayTime
	Mode       SaveMode
	Definition schedule.Definition
	Save       schedule.Save
}

// DeleteScheduleParams wraps the data required to remove a schedule definition.
type DeleteScheduleParams struct {
	Principal  Principal
	UserID     string
	ScheduleID int
}

// ListSchedulesParams wraps the data required to list a user's definitions.
type ListSchedulesParams struct {
	Principal Principal
	UserID    string
}

// AuthenticateParams captures the data required to authenticate a user.
type AuthenticateParams struct {
	Email    string
	Password string
}

// AuthenticateResult captures the outcome of a successful authentication attempt.
type AuthenticateResult struct {
	User    persistence.User
	Session persistence.Session
}
