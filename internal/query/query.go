// Package query derives filtered and sorted views of task snapshots for
// display. Every function is pure: it never touches the store and never
// mutates its input slice.
package query

import (
	"sort"
	"time"

	"pocket-planner/internal/model"
)

// FilterByCategory keeps items referencing the given category. A nil
// categoryID means no filter: the full snapshot is returned.
func FilterByCategory(items []model.Item, categoryID *string) []model.Item {
	if categoryID == nil {
		return append([]model.Item(nil), items...)
	}
	var out []model.Item
	for _, item := range items {
		if item.CategoryID != nil && *item.CategoryID == *categoryID {
			out = append(out, item)
		}
	}
	return out
}

// FilterByDate keeps items whose start time falls on the same calendar
// day as date, in date's location. Items without a start time never
// match a day view.
func FilterByDate(items []model.Item, date time.Time) []model.Item {
	var out []model.Item
	for _, item := range items {
		if item.StartTime == nil {
			continue
		}
		if sameDay(item.StartTime.In(date.Location()), date) {
			out = append(out, item)
		}
	}
	return out
}

// SortByOrder returns the items ascending by manual sort position.
func SortByOrder(items []model.Item) []model.Item {
	out := append([]model.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// SortByStartTime returns the items ascending by start time. Items
// without a start time sort last; ties break by sort position, then id,
// so the result is deterministic.
func SortByStartTime(items []model.Item) []model.Item {
	out := append([]model.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.StartTime == nil && b.StartTime == nil:
			// fall through to tie-break
		case a.StartTime == nil:
			return false
		case b.StartTime == nil:
			return true
		case !a.StartTime.Equal(*b.StartTime):
			return a.StartTime.Before(*b.StartTime)
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.ID < b.ID
	})
	return out
}

// GroupByHour buckets items into the 24-slot timeline by the hour
// component of their start time. Items without a start time are absent
// from the result.
func GroupByHour(items []model.Item) map[int][]model.Item {
	out := make(map[int][]model.Item)
	for _, item := range items {
		if item.StartTime == nil {
			continue
		}
		hour := item.StartTime.Local().Hour()
		out[hour] = append(out[hour], item)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
