package ui

import (
	"reflect"
	"testing"
	"time"

	"todoshell/pkg/filter"
	"todoshell/pkg/models"
)

func groupNames(groups []GroupedItems) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.GroupName
	}
	return names
}

func TestGroupItems(t *testing.T) {
	d1 := time.Date(2026, 10, 15, 0, 0, 0, 0, time.Local)
	d2 := time.Date(2026, 10, 20, 0, 0, 0, 0, time.Local)
	items := []models.TodoItem{
		{Subject: "b", KanbanColumn: "Done", Due: &d2},
		{Subject: "a", KanbanColumn: "Todo", IsPriority: true},
		{Subject: "c", KanbanColumn: "Someday", Due: &d1},
	}

	tests := []struct {
		name  string
		group filter.Group
		want  []string
	}{
		{"none", filter.GroupNone, []string{""}},
		{"kanban", filter.GroupKanban, []string{"Todo", "Doing", "Done", UnassignedColumn}},
		{"due", filter.GroupDue, []string{"2026-10-15", "2026-10-20", "No due date"}},
		{"priority", filter.GroupPriority, []string{"Priority", "Normal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filter.Default()
			f.Group = tt.group
			if got := groupNames(GroupItems(items, f)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortItems(t *testing.T) {
	due := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	items := []models.TodoItem{
		{Subject: "done", Completed: true, IsPriority: true},
		{Subject: "plain"},
		{Subject: "dated", Due: &due},
		{Subject: "urgent", IsPriority: true},
	}
	var got []string
	for _, item := range SortItems(items) {
		got = append(got, item.Subject)
	}
	want := []string{"urgent", "dated", "plain", "done"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextColumn(t *testing.T) {
	cols := []string{"Todo", "Doing", "Done"}
	tests := []struct {
		current string
		dir     int
		want    string
		ok      bool
	}{
		{"Todo", 1, "Doing", true},
		{"Doing", -1, "Todo", true},
		{"Done", 1, "Done", false},
		{"Todo", -1, "Todo", false},
		{"Someday", 1, "Todo", true},
	}
	for _, tt := range tests {
		got, ok := nextColumn(cols, tt.current, tt.dir)
		if got != tt.want || ok != tt.ok {
			t.Errorf("nextColumn(%q, %d) = %q, %v", tt.current, tt.dir, got, ok)
		}
	}
	if _, ok := nextColumn(nil, "Todo", 1); ok {
		t.Error("no columns means no move")
	}
}
