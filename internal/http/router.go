package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Auth       *AuthHandler
	Planner    *PlannerHandler
	Cron       *CronHandler
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Auth != nil {
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.CreateSession(w, r)
		})
		mux.HandleFunc("/sessions/current", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Auth.DeleteCurrentSession(w, r)
		})
	}

	if cfg.Planner != nil {
		mux.HandleFunc("/planner/days/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/planner/days/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}

			// Either /planner/days/{date} or /planner/days/{date}/schedules/{id}.
			date, tail, nested := strings.Cut(rest, "/")
			ctx := ContextWithDay(r.Context(), date)

			if !nested {
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Planner.GetDay(w, r.WithContext(ctx))
				return
			}

			id := strings.TrimPrefix(tail, "schedules/")
			if id == "" || id == tail {
				http.NotFound(w, r)
				return
			}
			ctx = ContextWithScheduleID(ctx, id)
			if r.Method != http.MethodPut {
				methodNotAllowed(w, http.MethodPut)
				return
			}
			cfg.Planner.SaveSchedule(w, r.WithContext(ctx))
		})

		mux.HandleFunc("/planner/schedules", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Planner.ListSchedules(w, r)
		})
		mux.HandleFunc("/planner/schedules/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/planner/schedules/")
			if id == "" {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithScheduleID(r.Context(), id)
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Planner.DeleteSchedule(w, r.WithContext(ctx))
		})
	}

	if cfg.Cron != nil {
		mux.HandleFunc("/cron/next", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Cron.Next(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
