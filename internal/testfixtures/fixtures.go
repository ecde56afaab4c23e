// Package testfixtures provides deterministic builders shared by tests across
// the planner packages.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/dayplanner/internal/persistence"
	"github.com/example/dayplanner/internal/schedule"
)

var (
	userCounter       uint64
	definitionCounter uint64
)

var referenceTime = time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDay returns the calendar day of ReferenceTime.
func ReferenceDay() schedule.DayTime {
	return schedule.DayOf(referenceTime)
}

// UserOption configures a generated user fixture.
type UserOption func(*persistence.User)

// NewUserFixture returns a deterministic user record with optional overrides.
func NewUserFixture(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	user := persistence.User{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.com", id),
		DisplayName:  fmt.Sprintf("User %03d", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(u *persistence.User) {
		u.ID = id
	}
}

// WithUserAdmin sets the admin flag on the generated fixture.
func WithUserAdmin(isAdmin bool) UserOption {
	return func(u *persistence.User) {
		u.IsAdmin = isAdmin
	}
}

// WithUserScore sets the reward score on the generated fixture.
func WithUserScore(score int) UserOption {
	return func(u *persistence.User) {
		u.Score = score
	}
}

// DefinitionOption configures a generated schedule definition.
type DefinitionOption func(*schedule.Definition)

// NewDefinitionFixture returns a deterministic schedule definition starting on
// the reference day.
func NewDefinitionFixture(opts ...DefinitionOption) schedule.Definition {
	idx := atomic.AddUint64(&definitionCounter, 1)
	def := schedule.Definition{
		ID:       int(idx),
		Start:    ReferenceDay(),
		Title:    fmt.Sprintf("Task %03d", idx),
		Order:    int(idx),
		Subtasks: []schedule.Subtask{},
	}
	for _, opt := range opts {
		opt(&def)
	}
	return def
}

// WithTitle sets the display title on the generated definition.
func WithTitle(title string) DefinitionOption {
	return func(d *schedule.Definition) {
		d.Title = title
	}
}

// WithDefinitionID overrides the generated definition id.
func WithDefinitionID(id int) DefinitionOption {
	return func(d *schedule.Definition) {
		d.ID = id
	}
}

// WithRepeat sets the repeat rule on the generated definition.
func WithRepeat(repeat schedule.Repeat) DefinitionOption {
	return func(d *schedule.Definition) {
		d.Repeat = repeat
	}
}

// WithScore sets the reward score on the generated definition.
func WithScore(score int) DefinitionOption {
	return func(d *schedule.Definition) {
		d.Score = score
	}
}

// WithStart sets the first occurrence day on the generated definition.
func WithStart(day schedule.DayTime) DefinitionOption {
	return func(d *schedule.Definition) {
		d.Start = day
	}
}

// NewUserDataFixture assembles an aggregate holding the provided definitions
// and an empty save map.
func NewUserDataFixture(userID string, defs ...schedule.Definition) *schedule.UserData {
	return &schedule.UserData{
		UserID:    userID,
		Schedules: defs,
		Save:      make(map[string]map[int]*schedule.Save),
	}
}
