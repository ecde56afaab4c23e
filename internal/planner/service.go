// Package planner hosts the application services: day materialization,
// schedule saves with score settlement, and session-backed authentication.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/dayplanner/internal/persistence"
	"github.com/example/dayplanner/internal/schedule"
)

// UserDataStore captures the persistence interactions for the serialized
// planner document.
type UserDataStore interface {
	GetUserDataRecord(ctx context.Context, userID string) (persistence.UserDataRecord, error)
	PutUserDataRecord(ctx context.Context, record persistence.UserDataRecord) error
}

// AccountService exposes the owner-score operations consumed by settlement.
type AccountService interface {
	GetUserScore(ctx context.Context, userID string) (int, error)
	SetUserScore(ctx context.Context, userID string, score int) error
}

// PlannerService coordinates day materialization and schedule saves over a
// user's persisted aggregate.
type PlannerService struct {
	docs     UserDataStore
	accounts AccountService
	cache    *dayCache
	now      func() time.Time
	detach   func(func())
	logger   *slog.Logger
}

// NewPlannerService constructs a PlannerService with the provided dependencies.
func NewPlannerService(docs UserDataStore, accounts AccountService, now func() time.Time) *PlannerService {
	return NewPlannerServiceWithLogger(docs, accounts, now, nil, 0, 0, nil)
}

// NewPlannerServiceWithLogger constructs a PlannerService with a specified
// detach function, day cache bounds and logger. The detach function runs
// settlement side effects without blocking the save path; nil defaults to a
// plain goroutine. Zero cache bounds fall back to the cache defaults.
func NewPlannerServiceWithLogger(docs UserDataStore, accounts AccountService, now func() time.Time, detach func(func()), cacheTTL time.Duration, cacheEntries int, logger *slog.Logger) *PlannerService {
	if now == nil {
		now = time.Now
	}
	if detach == nil {
		detach = func(fn func()) { go fn() }
	}
	return &PlannerService{
		docs:     docs,
		accounts: accounts,
		cache:    newDayCache(cacheTTL, cacheEntries, now),
		now:      now,
		detach:   detach,
		logger:   defaultLogger(logger),
	}
}

func (s *PlannerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PlannerService", operation, attrs...)
}

// GetDay materializes one calendar day for a user.
func (s *PlannerService) GetDay(ctx context.Context, params GetDayParams) (result schedule.DayData, err error) {
	if s == nil {
		err = fmt.Errorf("PlannerService is nil")
		return
	}

	userID := targetUser(params.Principal, params.UserID)
	logger := s.loggerWith(ctx, "GetDay", "user_id", userID, "day", params.Day.Key())
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "day materialization failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("events", len(result.Events)).InfoContext(ctx, "day materialized")
	}()

	if err = authorize(params.Principal, userID); err != nil {
		return
	}
	if params.Day.IsZero() {
		vErr := &ValidationError{}
		vErr.add("date", "date is required")
		err = vErr
		return
	}

	key := dayCacheKey(userID, params.Day)
	if cached, ok := s.cache.Get(key); ok {
		result = cached
		return
	}

	var data *schedule.UserData
	data, err = s.loadUserData(ctx, userID)
	if err != nil {
		return
	}

	result = schedule.Materialize(params.Day.Time, data)
	s.cache.Store(key, result)
	return
}

// SaveSchedule applies one schedule edit plus its completion record, persists
// the aggregate and returns the refreshed day view. Score settlement against
// the account service runs detached and is never awaited.
func (s *PlannerService) SaveSchedule(ctx context.Context, params SaveScheduleParams) (result schedule.DayData, err error) {
	if s == nil {
		err = fmt.Errorf("PlannerService is nil")
		return
	}

	userID := targetUser(params.Principal, params.UserID)
	logger := s.loggerWith(ctx, "SaveSchedule",
		"user_id", userID,
		"day", params.Day.Key(),
		"schedule_id", params.Definition.ID,
		"mode", string(params.Mode),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "schedule save failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "schedule saved")
	}()

	if err = authorize(params.Principal, userID); err != nil {
		return
	}
	if vErr := validateSaveSchedule(params); vErr.HasErrors() {
		err = vErr
		return
	}

	var data *schedule.UserData
	data, err = s.loadUserData(ctx, userID)
	if err != nil {
		return
	}

	var outcome saveOutcome
	outcome, err = applyScheduleSave(params.Day, data, params.Definition, params.Save, params.Mode)
	if err != nil {
		return
	}

	if err = s.persistUserData(ctx, userID, data); err != nil {
		return
	}
	s.cache.InvalidateUser(userID)

	if outcome.scoreDelta != 0 {
		s.settleScore(userID, outcome.scoreDelta, logger)
	}

	result = schedule.Materialize(params.Day.Time, data)
	s.cache.Store(dayCacheKey(userID, params.Day), result)
	return
}

// DeleteSchedule removes a definition from the canonical list. Save records
// for past occurrences are kept.
func (s *PlannerService) DeleteSchedule(ctx context.Context, params DeleteScheduleParams) error {
	if s == nil {
		return fmt.Errorf("PlannerService is nil")
	}

	userID := targetUser(params.Principal, params.UserID)
	logger := s.loggerWith(ctx, "DeleteSchedule", "user_id", userID, "schedule_id", params.ScheduleID)

	if err := authorize(params.Principal, userID); err != nil {
		logger.ErrorContext(ctx, "schedule delete failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	data, err := s.loadUserData(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "schedule delete failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if !removeDefinition(data, params.ScheduleID) {
		logger.ErrorContext(ctx, "schedule delete failed", "error", ErrNotFound, "error_kind", ErrorKind(ErrNotFound))
		return ErrNotFound
	}

	if err := s.persistUserData(ctx, userID, data); err != nil {
		logger.ErrorContext(ctx, "schedule delete failed", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	s.cache.InvalidateUser(userID)

	logger.InfoContext(ctx, "schedule deleted")
	return nil
}

// ListSchedules returns deep copies of the user's schedule definitions.
func (s *PlannerService) ListSchedules(ctx context.Context, params ListSchedulesParams) ([]schedule.Definition, error) {
	if s == nil {
		return nil, fmt.Errorf("PlannerService is nil")
	}

	userID := targetUser(params.Principal, params.UserID)
	logger := s.loggerWith(ctx, "ListSchedules", "user_id", userID)

	if err := authorize(params.Principal, userID); err != nil {
		logger.ErrorContext(ctx, "schedule listing failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	data, err := s.loadUserData(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "schedule listing failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	defs := make([]schedule.Definition, 0, len(data.Schedules))
	for _, def := range data.Schedules {
		defs = append(defs, def.Clone())
	}
	logger.With("schedules", len(defs)).InfoContext(ctx, "schedules listed")
	return defs, nil
}

// settleScore adjusts the owner's account score by delta without blocking the
// caller. Failures are logged only; the local save state stays committed.
func (s *PlannerService) settleScore(userID string, delta int, logger *slog.Logger) {
	if s.accounts == nil {
		return
	}
	s.detach(func() {
		ctx := context.Background()
		current, err := s.accounts.GetUserScore(ctx, userID)
		if err != nil {
			logger.Error("score settlement fetch failed", "error", err, "delta", delta)
			return
		}
		next := current + delta
		if next < 0 {
			next = 0
		}
		if err := s.accounts.SetUserScore(ctx, userID, next); err != nil {
			logger.Error("score settlement write failed", "error", err, "delta", delta)
			return
		}
		logger.Info("score settled", "delta", delta, "score", next)
	})
}

func (s *PlannerService) loadUserData(ctx context.Context, userID string) (*schedule.UserData, error) {
	if s.docs == nil {
		return nil, fmt.Errorf("user data store not configured")
	}
	record, err := s.docs.GetUserDataRecord(ctx, userID)
	if errors.Is(err, persistence.ErrNotFound) {
		return schedule.DecodeUserData(nil)
	}
	if err != nil {
		return nil, err
	}
	data, err := schedule.DecodeUserData(record.Payload)
	if err != nil {
		return nil, err
	}
	data.UserID = userID
	if data.Name == "" {
		data.Name = record.Name
	}
	return data, nil
}

func (s *PlannerService) persistUserData(ctx context.Context, userID string, data *schedule.UserData) error {
	payload, err := schedule.EncodeUserData(data)
	if err != nil {
		return err
	}
	return s.docs.PutUserDataRecord(ctx, persistence.UserDataRecord{
		UserID:    userID,
		Name:      data.Name,
		Payload:   payload,
		UpdatedAt: s.now(),
	})
}

// targetUser resolves the user a request acts on; an empty target means the
// principal acts on their own data.
func targetUser(principal Principal, userID string) string {
	if userID == "" {
		return principal.UserID
	}
	return userID
}

func authorize(principal Principal, userID string) error {
	if principal.UserID == "" {
		return ErrUnauthorized
	}
	if principal.UserID != userID && !principal.IsAdmin {
		return ErrUnauthorized
	}
	return nil
}

func validateSaveSchedule(params SaveScheduleParams) *ValidationError {
	vErr := &ValidationError{}
	if params.Day.IsZero() {
		vErr.add("date", "date is required")
	}
	if params.Mode == "" {
		vErr.add("mode", "mode is required")
	}
	if params.Definition.ID < schedule.PendingID {
		vErr.add("id", "schedule id must be -1 or a persisted id")
	}
	return vErr
}
