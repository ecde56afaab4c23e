package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/dayplanner/internal/cronexpr"
	"github.com/example/dayplanner/internal/planner"
)

const (
	defaultCronCount = 5
	maxCronCount     = 100
)

type CronHandler struct {
	now       func() time.Time
	responder responder
	logger    *slog.Logger
}

func NewCronHandler(now func() time.Time, logger *slog.Logger) *CronHandler {
	if now == nil {
		now = time.Now
	}
	base := defaultLogger(logger)
	return &CronHandler{now: now, responder: newResponder(base), logger: base}
}

func (h *CronHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "CronHandler", operation, attrs...)
}

// Next serves GET /cron/next?expr=&count=.
func (h *CronHandler) Next(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("expr"))
	count := defaultCronCount
	if rawCount := r.URL.Query().Get("count"); rawCount != "" {
		parsed, err := strconv.Atoi(rawCount)
		if err != nil || parsed < 1 {
			vErr := &planner.ValidationError{FieldErrors: map[string]string{"count": "count must be a positive integer"}}
			h.responder.handleServiceError(r.Context(), w, vErr)
			return
		}
		count = parsed
	}
	if count > maxCronCount {
		count = maxCronCount
	}

	logger := h.log(r.Context(), "Next", "expr", raw, "count", count)

	expression, err := cronexpr.Parse(raw)
	if err != nil {
		logger.ErrorContext(r.Context(), "cron expression rejected", "error", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	times := expression.NextStrings(h.now(), count)
	logger.With("results", len(times)).InfoContext(r.Context(), "cron projection served")

	h.responder.writeJSON(r.Context(), w, http.StatusOK, cronNextResponse{
		Expression: raw,
		Times:      times,
	})
}

type cronNextResponse struct {
	Expression string   `json:"expression"`
	Times      []string `json:"times"`
}
