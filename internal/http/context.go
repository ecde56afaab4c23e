package http

import (
	"context"

	"github.com/example/dayplanner/internal/planner"
)

type contextKey string

const (
	principalContextKey  contextKey = "principal"
	dayContextKey        contextKey = "day"
	scheduleIDContextKey contextKey = "schedule_id"
)

// ContextWithPrincipal returns a derived context containing the authenticated principal.
func ContextWithPrincipal(ctx context.Context, principal planner.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, principal)
}

// PrincipalFromContext extracts the authenticated principal from context if available.
func PrincipalFromContext(ctx context.Context) (planner.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(planner.Principal)
	return principal, ok
}

// ContextWithDay injects the calendar day resolved from the request path.
func ContextWithDay(ctx context.Context, day string) context.Context {
	return context.WithValue(ctx, dayContextKey, day)
}

// DayFromContext extracts a calendar day previously associated with the context.
func DayFromContext(ctx context.Context) (string, bool) {
	day, ok := ctx.Value(dayContextKey).(string)
	return day, ok
}

// ContextWithScheduleID injects the schedule identifier resolved from the request path.
func ContextWithScheduleID(ctx context.Context, scheduleID string) context.Context {
	return context.WithValue(ctx, scheduleIDContextKey, scheduleID)
}

// ScheduleIDFromContext extracts a schedule identifier previously associated with the context.
func ScheduleIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(scheduleIDContextKey).(string)
	return id, ok
}
