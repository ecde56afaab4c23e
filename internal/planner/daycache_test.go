package planner

import (
	"testing"
	"time"

	"github.com/example/dayplanner/internal/schedule"
)

func TestDayCache_ExpiresEntries(t *testing.T) {
	t.Parallel()

	current := fixedNow()
	cache := newDayCache(time.Minute, 8, func() time.Time { return current })

	day := schedule.NewDay(2024, 3, 14)
	key := dayCacheKey("user-1", day)
	cache.Store(key, schedule.DayData{Date: day})

	if _, ok := cache.Get(key); !ok {
		t.Fatalf("expected fresh entry to be served")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := cache.Get(key); ok {
		t.Fatalf("expected entry to expire after TTL")
	}
}

func TestDayCache_InvalidateUserDropsOnlyThatUser(t *testing.T) {
	t.Parallel()

	cache := newDayCache(time.Minute, 8, fixedNow)
	day := schedule.NewDay(2024, 3, 14)

	cache.Store(dayCacheKey("user-1", day), schedule.DayData{Date: day})
	cache.Store(dayCacheKey("user-2", day), schedule.DayData{Date: day})

	cache.InvalidateUser("user-1")

	if _, ok := cache.Get(dayCacheKey("user-1", day)); ok {
		t.Fatalf("expected user-1 entries to be dropped")
	}
	if _, ok := cache.Get(dayCacheKey("user-2", day)); !ok {
		t.Fatalf("user-2 entries should survive invalidation of user-1")
	}
}

func TestDayCache_ServesCopies(t *testing.T) {
	t.Parallel()

	cache := newDayCache(time.Minute, 8, fixedNow)
	day := schedule.NewDay(2024, 3, 14)
	key := dayCacheKey("user-1", day)

	cache.Store(key, schedule.DayData{
		Date:   day,
		Events: []schedule.Definition{{ID: 1, Title: "Water plants"}},
	})

	first, ok := cache.Get(key)
	if !ok {
		t.Fatalf("expected cached entry")
	}
	first.Events[0].Title = "mutated"

	second, _ := cache.Get(key)
	if second.Events[0].Title != "Water plants" {
		t.Fatalf("cache handed out aliased data: %+v", second.Events)
	}
}
