package cronexpr

import (
	"sort"
	"strconv"
	"strings"
)

// Field holds the accepted values for one position of a cron expression.
//
// A Field with Any set matches every value in its range. A Field with an
// empty Values slice means no token parsed successfully; callers treat such
// a field as unconstrained rather than unsatisfiable.
type Field struct {
	Any    bool
	Values []int
}

// ParseField interprets a single cron field against its valid numeric range.
//
// Each comma-separated token may be "*", a single value, an inclusive range
// "A-B", a stepped wildcard "*/S", or a stepped range "A-B/S". Malformed
// tokens are skipped without error. The resulting value set is deduplicated
// and sorted ascending.
func ParseField(field string, min, max int) Field {
	seen := make(map[int]struct{})
	for _, token := range strings.Split(field, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if token == "*" {
			return Field{Any: true}
		}
		lo, hi, step, ok := parseToken(token, min, max)
		if !ok {
			continue
		}
		for v := lo; v <= hi; v += step {
			if v >= min && v <= max {
				seen[v] = struct{}{}
			}
		}
	}

	values := make([]int, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Ints(values)
	return Field{Values: values}
}

func parseToken(token string, min, max int) (lo, hi, step int, ok bool) {
	step = 1
	base := token
	if stem, stepPart, found := strings.Cut(token, "/"); found {
		s, err := strconv.Atoi(stepPart)
		if err != nil || s <= 0 {
			return 0, 0, 0, false
		}
		// A step is only meaningful on "*" or a range.
		if stem != "*" && !strings.Contains(stem, "-") {
			return 0, 0, 0, false
		}
		step = s
		base = stem
	}

	switch {
	case base == "*":
		return min, max, step, true
	case strings.Contains(base, "-"):
		first, second, _ := strings.Cut(base, "-")
		a, errA := strconv.Atoi(first)
		b, errB := strconv.Atoi(second)
		if errA != nil || errB != nil || a > b {
			return 0, 0, 0, false
		}
		return a, b, step, true
	default:
		v, err := strconv.Atoi(base)
		if err != nil {
			return 0, 0, 0, false
		}
		return v, v, step, true
	}
}

// constrained reports whether the field restricts candidate values at all.
func (f Field) constrained() bool {
	return !f.Any && len(f.Values) > 0
}

// matches reports whether v is accepted by the field. Unconstrained fields
// accept everything.
func (f Field) matches(v int) bool {
	if !f.constrained() {
		return true
	}
	for _, accepted := range f.Values {
		if accepted == v {
			return true
		}
	}
	return false
}

// next returns the smallest accepted value strictly greater than v. The
// second return is false when the field wraps past its largest value.
func (f Field) next(v int) (int, bool) {
	if !f.constrained() {
		return 0, false
	}
	for _, accepted := range f.Values {
		if accepted > v {
			return accepted, true
		}
	}
	return 0, false
}
