package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pocket-planner/internal/model"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestFilterByCategory(t *testing.T) {
	work := "cat-work"
	home := "cat-home"
	items := []model.Item{
		{ID: "a", CategoryID: &work},
		{ID: "b", CategoryID: &home},
		{ID: "c"},
	}

	t.Run("nil category returns all", func(t *testing.T) {
		got := FilterByCategory(items, nil)
		assert.Len(t, got, 3)
	})

	t.Run("matching category", func(t *testing.T) {
		got := FilterByCategory(items, &work)
		assert.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("unknown category matches nothing", func(t *testing.T) {
		unknown := "cat-nope"
		assert.Empty(t, FilterByCategory(items, &unknown))
	})
}

func TestFilterByDate(t *testing.T) {
	day := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	items := []model.Item{
		{ID: "morning", StartTime: timePtr(time.Date(2024, 3, 15, 0, 0, 1, 0, time.Local))},
		{ID: "night", StartTime: timePtr(time.Date(2024, 3, 15, 23, 59, 59, 0, time.Local))},
		{ID: "nextday", StartTime: timePtr(time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local))},
		{ID: "unscheduled"},
	}

	got := FilterByDate(items, day)
	ids := make([]string, 0, len(got))
	for _, item := range got {
		ids = append(ids, item.ID)
	}
	assert.ElementsMatch(t, []string{"morning", "night"}, ids)
}

func TestSortByOrder(t *testing.T) {
	items := []model.Item{
		{ID: "c", SortOrder: 2},
		{ID: "a", SortOrder: 0},
		{ID: "b", SortOrder: 1},
	}

	got := SortByOrder(items)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
	// input untouched
	assert.Equal(t, "c", items[0].ID)
}

func TestSortByStartTime(t *testing.T) {
	early := time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local)
	late := time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local)
	items := []model.Item{
		{ID: "no-time-b", SortOrder: 3},
		{ID: "late", StartTime: &late, SortOrder: 0},
		{ID: "no-time-a", SortOrder: 2},
		{ID: "early", StartTime: &early, SortOrder: 1},
	}

	got := SortByStartTime(items)
	ids := []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID}
	assert.Equal(t, []string{"early", "late", "no-time-a", "no-time-b"}, ids)
}

func TestSortByStartTimeTieBreak(t *testing.T) {
	at := time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local)
	items := []model.Item{
		{ID: "z", StartTime: &at, SortOrder: 1},
		{ID: "a", StartTime: &at, SortOrder: 1},
		{ID: "m", StartTime: &at, SortOrder: 0},
	}

	got := SortByStartTime(items)
	assert.Equal(t, []string{"m", "a", "z"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestGroupByHour(t *testing.T) {
	items := []model.Item{
		{ID: "a", StartTime: timePtr(time.Date(2024, 3, 15, 8, 15, 0, 0, time.Local))},
		{ID: "b", StartTime: timePtr(time.Date(2024, 3, 15, 8, 45, 0, 0, time.Local))},
		{ID: "c", StartTime: timePtr(time.Date(2024, 3, 15, 22, 0, 0, 0, time.Local))},
		{ID: "unscheduled"},
	}

	got := GroupByHour(items)
	assert.Len(t, got, 2)
	assert.Len(t, got[8], 2)
	assert.Len(t, got[22], 1)
	assert.NotContains(t, got, 0)
}
