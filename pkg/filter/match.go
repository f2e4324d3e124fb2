package filter

import (
	"fmt"
	"strings"
	"time"

	"todoshell/pkg/models"
)

var weekdays = map[Due]time.Weekday{
	DueMon: time.Monday,
	DueTue: time.Tuesday,
	DueWed: time.Wednesday,
	DueThu: time.Thursday,
	DueFri: time.Friday,
	DueSat: time.Saturday,
	DueSun: time.Sunday,
}

// Matches reports whether item satisfies every applied criterion of f
func (f Filter) Matches(item models.TodoItem, now time.Time) bool {
	if f.SubjectContains != nil && *f.SubjectContains != "" {
		if !strings.Contains(strings.ToLower(item.Subject), strings.ToLower(*f.SubjectContains)) {
			return false
		}
	}
	if !f.Completed.Matches(item.Completed) {
		return false
	}
	if !f.IsPriority.Matches(item.IsPriority) {
		return false
	}
	if !f.Archived.Matches(item.Archived) {
		return false
	}
	return f.matchesDue(item, now)
}

func (f Filter) matchesDue(item models.TodoItem, now time.Time) bool {
	today := startOfDay(now)

	switch f.Due {
	case DueNone:
		return true
	case DueNoDate:
		return item.Due == nil
	case DueOverdue:
		return item.Due != nil && !item.Completed && startOfDay(item.Due.In(now.Location())).Before(today)
	case DueAgenda:
		return item.Due != nil && !startOfDay(item.Due.In(now.Location())).After(today)
	}

	wd, ok := weekdays[f.Due]
	if !ok {
		// values outside the known set are stored verbatim and not applied
		return true
	}
	if item.Due == nil {
		return false
	}
	day := startOfDay(item.Due.In(now.Location()))
	return day.Weekday() == wd && !day.Before(today) && day.Before(today.AddDate(0, 0, 7))
}

// Apply returns the items matching f, keeping their order
func (f Filter) Apply(items []models.TodoItem, now time.Time) []models.TodoItem {
	out := make([]models.TodoItem, 0, len(items))
	for _, item := range items {
		if f.Matches(item, now) {
			out = append(out, item)
		}
	}
	return out
}

// Chips describes the applied criteria, one label each
func (f Filter) Chips() []string {
	var chips []string
	if s := f.Subject(); s != "" {
		chips = append(chips, fmt.Sprintf("subject: %q", s))
	}
	chips = appendTriChip(chips, "completed", f.Completed)
	chips = appendTriChip(chips, "priority", f.IsPriority)
	chips = appendTriChip(chips, "archived", f.Archived)
	if f.Due != DueNone {
		label := DueLabels[string(f.Due)]
		if label == "" {
			label = string(f.Due)
		}
		chips = append(chips, "due: "+strings.ToLower(label))
	}
	if f.Group != GroupNone {
		chips = append(chips, "grouped by "+string(f.Group))
	}
	return chips
}

func appendTriChip(chips []string, name string, t TriState) []string {
	switch t {
	case True:
		return append(chips, name)
	case False:
		return append(chips, "not "+name)
	}
	return chips
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
