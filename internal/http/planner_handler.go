package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/example/dayplanner/internal/planner"
	"github.com/example/dayplanner/internal/schedule"
)

type plannerService interface {
	GetDay(ctx context.Context, params planner.GetDayParams) (schedule.DayData, error)
	SaveSchedule(ctx context.Context, params planner.SaveScheduleParams) (schedule.DayData, error)
	DeleteSchedule(ctx context.Context, params planner.DeleteScheduleParams) error
	ListSchedules(ctx context.Context, params planner.ListSchedulesParams) ([]schedule.Definition, error)
}

type PlannerHandler struct {
	service   plannerService
	responder responder
	logger    *slog.Logger
}

func NewPlannerHandler(service plannerService, logger *slog.Logger) *PlannerHandler {
	base := defaultLogger(logger)
	return &PlannerHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *PlannerHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "PlannerHandler", operation, attrs...)
}

// GetDay serves GET /planner/days/{date}.
func (h *PlannerHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	day, ok := h.resolveDay(w, r, "GetDay")
	if !ok {
		return
	}

	result, err := h.service.GetDay(r.Context(), planner.GetDayParams{
		Principal: principal,
		UserID:    r.URL.Query().Get("user"),
		Day:       day,
	})
	if err != nil {
		h.log(r.Context(), "GetDay", "day", day.Key()).ErrorContext(r.Context(), "day materialization failed", "error", err, "error_kind", planner.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, newDayResponse(result))
}

// SaveSchedule serves PUT /planner/days/{date}/schedules/{id}.
func (h *PlannerHandler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	day, ok := h.resolveDay(w, r, "SaveSchedule")
	if !ok {
		return
	}
	scheduleID, ok := h.resolveScheduleID(w, r, "SaveSchedule")
	if !ok {
		return
	}

	var req saveScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SaveSchedule", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode save request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	// The path segment is authoritative for the schedule id.
	req.Schedule.ID = scheduleID

	logger := h.log(r.Context(), "SaveSchedule", "day", day.Key(), "schedule_id", scheduleID, "mode", req.Mode)

	result, err := h.service.SaveSchedule(r.Context(), planner.SaveScheduleParams{
		Principal:  principal,
		UserID:     r.URL.Query().Get("user"),
		Day:        day,
		Mode:       planner.SaveMode(req.Mode),
		Definition: req.Schedule,
		Save:       req.Save,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "schedule save failed", "error", err, "error_kind", planner.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "schedule saved")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newDayResponse(result))
}

// ListSchedules serves GET /planner/schedules.
func (h *PlannerHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	defs, err := h.service.ListSchedules(r.Context(), planner.ListSchedulesParams{
		Principal: principal,
		UserID:    r.URL.Query().Get("user"),
	})
	if err != nil {
		h.log(r.Context(), "ListSchedules").ErrorContext(r.Context(), "schedule listing failed", "error", err, "error_kind", planner.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, scheduleListResponse{Schedules: defs})
}

// DeleteSchedule serves DELETE /planner/schedules/{id}.
func (h *PlannerHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingSessionToken)
		return
	}

	scheduleID, ok := h.resolveScheduleID(w, r, "DeleteSchedule")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "DeleteSchedule", "schedule_id", scheduleID)

	if err := h.service.DeleteSchedule(r.Context(), planner.DeleteScheduleParams{
		Principal:  principal,
		UserID:     r.URL.Query().Get("user"),
		ScheduleID: scheduleID,
	}); err != nil {
		logger.ErrorContext(r.Context(), "schedule delete failed", "error", err, "error_kind", planner.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "schedule deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *PlannerHandler) resolveDay(w http.ResponseWriter, r *http.Request, operation string) (schedule.DayTime, bool) {
	raw, ok := DayFromContext(r.Context())
	if !ok || raw == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return schedule.DayTime{}, false
	}
	day, err := schedule.ParseDayKey(raw)
	if err != nil {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "unparseable date in path", "date", raw)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return schedule.DayTime{}, false
	}
	return day, true
}

func (h *PlannerHandler) resolveScheduleID(w http.ResponseWriter, r *http.Request, operation string) (int, bool) {
	raw, ok := ScheduleIDFromContext(r.Context())
	if !ok || raw == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "unparseable schedule id in path", "id", raw)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return 0, false
	}
	return id, true
}

type saveScheduleRequest struct {
	Mode     string              `json:"mode"`
	Schedule schedule.Definition `json:"schedule"`
	Save     schedule.Save       `json:"save"`
}

type dayResponse struct {
	Date   string                 `json:"date"`
	Events []schedule.Definition  `json:"events"`
	Save   map[int]*schedule.Save `json:"save,omitempty"`
}

type scheduleListResponse struct {
	Schedules []schedule.Definition `json:"schedules"`
}

func newDayResponse(day schedule.DayData) dayResponse {
	events := day.Events
	if events == nil {
		events = make([]schedule.Definition, 0)
	}
	return dayResponse{
		Date:   day.Date.Key(),
		Events: events,
		Save:   day.Save,
	}
}
