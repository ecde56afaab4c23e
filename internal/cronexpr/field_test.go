package cronexpr

import (
	"reflect"
	"testing"
)

func TestParseField_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		min   int
		max   int
		want  []int
	}{
		{name: "stepped wildcard", field: "*/15", min: 0, max: 59, want: []int{0, 15, 30, 45}},
		{name: "range with extra value", field: "10-12,20", min: 0, max: 59, want: []int{10, 11, 12, 20}},
		{name: "single value", field: "7", min: 0, max: 59, want: []int{7}},
		{name: "stepped range", field: "10-30/10", min: 0, max: 59, want: []int{10, 20, 30}},
		{name: "stepped wildcard respects field minimum", field: "*/10", min: 1, max: 31, want: []int{1, 11, 21, 31}},
		{name: "duplicates collapse", field: "5,5,3-5", min: 0, max: 59, want: []int{3, 4, 5}},
		{name: "out of range value dropped", field: "99,12", min: 0, max: 59, want: []int{12}},
		{name: "range clamped to bounds", field: "58-90", min: 0, max: 59, want: []int{58, 59}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ParseField(tc.field, tc.min, tc.max)
			if got.Any {
				t.Fatalf("expected concrete values, got any-sentinel")
			}
			if !reflect.DeepEqual(got.Values, tc.want) {
				t.Fatalf("ParseField(%q) = %v, want %v", tc.field, got.Values, tc.want)
			}
		})
	}
}

func TestParseField_Wildcard(t *testing.T) {
	t.Parallel()

	got := ParseField("*", 0, 59)
	if !got.Any {
		t.Fatalf("expected any-sentinel for %q, got values %v", "*", got.Values)
	}

	// A wildcard token inside a comma list also lifts every constraint.
	got = ParseField("5,*", 0, 59)
	if !got.Any {
		t.Fatalf("expected any-sentinel for %q, got values %v", "5,*", got.Values)
	}
}

func TestParseField_MalformedTokensSkipped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		want  []int
	}{
		{name: "garbage token ignored", field: "abc,15", want: []int{15}},
		{name: "inverted range ignored", field: "30-10,5", want: []int{5}},
		{name: "zero step ignored", field: "*/0,9", want: []int{9}},
		{name: "step on single value ignored", field: "5/10,2", want: []int{2}},
		{name: "nothing parseable yields empty set", field: "x,y-z", want: []int{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ParseField(tc.field, 0, 59)
			if got.Any {
				t.Fatalf("expected concrete values, got any-sentinel")
			}
			if !reflect.DeepEqual(got.Values, tc.want) {
				t.Fatalf("ParseField(%q) = %v, want %v", tc.field, got.Values, tc.want)
			}
		})
	}
}

func TestField_NextWrapsPastLargestValue(t *testing.T) {
	t.Parallel()

	f := ParseField("10,20", 0, 59)

	if v, ok := f.next(10); !ok || v != 20 {
		t.Fatalf("next(10) = %d,%v, want 20,true", v, ok)
	}
	if _, ok := f.next(20); ok {
		t.Fatalf("expected wrap past largest accepted value")
	}
}
