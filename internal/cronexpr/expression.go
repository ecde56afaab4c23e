package cronexpr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Layout is the wall-clock format produced by NextStrings.
const Layout = "2006-01-02 15:04:05"

// ErrMalformedExpression indicates the expression does not have exactly six
// whitespace-separated fields.
var ErrMalformedExpression = errors.New("cronexpr: expression must have exactly 6 fields")

// maxIterations bounds the projection loop so unsatisfiable expressions
// terminate with however many results were collected.
const maxIterations = 10000

// Expression is a parsed six-field cron expression
// (second minute hour day month weekday).
type Expression struct {
	seconds  Field
	minutes  Field
	hours    Field
	days     Field
	months   Field
	weekdays Field
}

// Parse splits and parses a six-field cron expression. The field count is the
// only validation failure surfaced; unparseable tokens inside a field degrade
// to "no constraint" per ParseField.
func Parse(expr string) (*Expression, error) {
	fields := strings.Fields(expr)
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: got %d", ErrMalformedExpression, len(fields))
	}
	return &Expression{
		seconds:  ParseField(fields[0], 0, 59),
		minutes:  ParseField(fields[1], 0, 59),
		hours:    ParseField(fields[2], 0, 23),
		days:     ParseField(fields[3], 1, 31),
		months:   ParseField(fields[4], 1, 12),
		weekdays: foldWeekdays(ParseField(fields[5], 0, 7)),
	}, nil
}

// foldWeekdays maps weekday value 7 onto 0; both mean Sunday.
func foldWeekdays(f Field) Field {
	if f.Any {
		return f
	}
	seen := make(map[int]struct{}, len(f.Values))
	folded := make([]int, 0, len(f.Values))
	for _, v := range f.Values {
		if v == 7 {
			v = 0
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		folded = append(folded, v)
	}
	sort.Ints(folded)
	return Field{Values: folded}
}

// Next computes up to n future timestamps satisfying every field, strictly
// after now. The cursor steps forward with per-field jump-ahead, coarsest
// field first; when day-of-month and weekday are both constrained a day
// matching either is accepted.
func (e *Expression) Next(now time.Time, n int) []time.Time {
	if e == nil || n <= 0 {
		return nil
	}

	results := make([]time.Time, 0, n)
	cursor := now.Truncate(time.Second).Add(time.Second)

	for i := 0; i < maxIterations && len(results) < n; i++ {
		if !e.months.matches(int(cursor.Month())) {
			cursor = e.advanceMonth(cursor)
			continue
		}
		if !e.matchesDay(cursor) {
			cursor = startOfDay(cursor).AddDate(0, 0, 1)
			continue
		}
		if !e.hours.matches(cursor.Hour()) {
			cursor = e.advanceHour(cursor)
			continue
		}
		if !e.minutes.matches(cursor.Minute()) {
			cursor = e.advanceMinute(cursor)
			continue
		}
		if !e.seconds.matches(cursor.Second()) {
			cursor = e.advanceSecond(cursor)
			continue
		}

		results = append(results, cursor)
		cursor = cursor.Add(time.Second)
	}

	return results
}

// NextStrings formats the result of Next as "YYYY-MM-DD HH:MM:SS" strings.
func (e *Expression) NextStrings(now time.Time, n int) []string {
	times := e.Next(now, n)
	if len(times) == 0 {
		return nil
	}
	out := make([]string, 0, len(times))
	for _, ts := range times {
		out = append(out, ts.Format(Layout))
	}
	return out
}

func (e *Expression) matchesDay(t time.Time) bool {
	dayConstrained := e.days.constrained()
	weekdayConstrained := e.weekdays.constrained()

	switch {
	case dayConstrained && weekdayConstrained:
		return e.days.matches(t.Day()) || e.weekdays.matches(int(t.Weekday()))
	case dayConstrained:
		return e.days.matches(t.Day())
	case weekdayConstrained:
		return e.weekdays.matches(int(t.Weekday()))
	default:
		return true
	}
}

// advanceMonth jumps to midnight of day one in the next accepted month,
// wrapping to the following year when the field has no later value.
func (e *Expression) advanceMonth(t time.Time) time.Time {
	if m, ok := e.months.next(int(t.Month())); ok {
		return time.Date(t.Year(), time.Month(m), 1, 0, 0, 0, 0, t.Location())
	}
	first := 1
	if e.months.constrained() {
		first = e.months.Values[0]
	}
	return time.Date(t.Year()+1, time.Month(first), 1, 0, 0, 0, 0, t.Location())
}

// advanceHour jumps to the next accepted hour of the same day with minute and
// second reset; finer fields are revalidated by the caller's loop. When the
// field wraps, the cursor moves to the next day's midnight so the day and
// month constraints are rechecked.
func (e *Expression) advanceHour(t time.Time) time.Time {
	if h, ok := e.hours.next(t.Hour()); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), h, 0, 0, 0, t.Location())
	}
	return startOfDay(t).AddDate(0, 0, 1)
}

func (e *Expression) advanceMinute(t time.Time) time.Time {
	if m, ok := e.minutes.next(t.Minute()); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), m, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, t.Location())
}

func (e *Expression) advanceSecond(t time.Time) time.Time {
	if s, ok := e.seconds.next(t.Second()); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), s, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()+1, 0, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
