package ui

import (
	"sort"
	"strings"

	"todoshell/pkg/filter"
	"todoshell/pkg/models"
)

// UnassignedColumn collects items whose kanban column is not in the filter
const UnassignedColumn = "Unassigned"

const noDueGroup = "No due date"

// GroupedItems represents items grouped by a common attribute
type GroupedItems struct {
	GroupName string
	Items     []models.TodoItem
}

// SortItems orders open items before completed ones, then priority first,
// then by due date with undated items last
func SortItems(items []models.TodoItem) []models.TodoItem {
	sorted := make([]models.TodoItem, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.IsPriority != b.IsPriority {
			return a.IsPriority
		}
		switch {
		case a.Due == nil && b.Due == nil:
		case a.Due == nil:
			return false
		case b.Due == nil:
			return true
		case !a.Due.Equal(*b.Due):
			return a.Due.Before(*b.Due)
		}
		return strings.ToLower(a.Subject) < strings.ToLower(b.Subject)
	})

	return sorted
}

// GroupItems groups items according to the filter's grouping. Kanban groups
// follow the column order and are kept even when empty.
func GroupItems(items []models.TodoItem, f filter.Filter) []GroupedItems {
	switch f.Group {
	case filter.GroupKanban:
		return groupByKanban(items, f.KanbanColumns)
	case filter.GroupDue:
		return groupByDue(items)
	case filter.GroupPriority:
		var priority, normal []models.TodoItem
		for _, item := range items {
			if item.IsPriority {
				priority = append(priority, item)
			} else {
				normal = append(normal, item)
			}
		}
		return []GroupedItems{
			{GroupName: "Priority", Items: SortItems(priority)},
			{GroupName: "Normal", Items: SortItems(normal)},
		}
	}
	return []GroupedItems{{GroupName: "", Items: SortItems(items)}}
}

func groupByKanban(items []models.TodoItem, columns []string) []GroupedItems {
	groups := make(map[string][]models.TodoItem)
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	for _, item := range items {
		groupKey := item.KanbanColumn
		if !known[groupKey] {
			groupKey = UnassignedColumn
		}
		groups[groupKey] = append(groups[groupKey], item)
	}

	var result []GroupedItems
	seen := make(map[string]bool)
	for _, c := range columns {
		if seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, GroupedItems{GroupName: c, Items: SortItems(groups[c])})
	}
	if unassigned := groups[UnassignedColumn]; len(unassigned) > 0 && !known[UnassignedColumn] {
		result = append(result, GroupedItems{GroupName: UnassignedColumn, Items: SortItems(unassigned)})
	}
	return result
}

func groupByDue(items []models.TodoItem) []GroupedItems {
	groups := make(map[string][]models.TodoItem)
	for _, item := range items {
		groupKey := noDueGroup
		if item.Due != nil {
			groupKey = item.Due.Local().Format("2006-01-02")
		}
		groups[groupKey] = append(groups[groupKey], item)
	}

	// Convert map to sorted slice
	var groupNames []string
	for name := range groups {
		if name != noDueGroup {
			groupNames = append(groupNames, name)
		}
	}
	sort.Strings(groupNames)
	if _, ok := groups[noDueGroup]; ok {
		groupNames = append(groupNames, noDueGroup)
	}

	result := make([]GroupedItems, 0, len(groupNames))
	for _, name := range groupNames {
		result = append(result, GroupedItems{GroupName: name, Items: SortItems(groups[name])})
	}
	return result
}

// nextColumn returns the column adjacent to current in direction dir (-1 or 1).
// Items outside the column list move to the first column.
func nextColumn(columns []string, current string, dir int) (string, bool) {
	if len(columns) == 0 {
		return "", false
	}
	idx := -1
	for i, c := range columns {
		if c == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return columns[0], true
	}
	target := idx + dir
	if target < 0 || target >= len(columns) {
		return current, false
	}
	return columns[target], true
}
