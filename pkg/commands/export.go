package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"todoshell/pkg/backend"
	"todoshell/pkg/models"
)

// exportFile is the JSON export layout
type exportFile struct {
	Lists []models.TodoList `json:"lists"`
	Items []models.TodoItem `json:"items"`
}

// HandleExportCommand writes every list and todo to filename
func HandleExportCommand(ctx context.Context, b backend.Backend, out io.Writer, filename, exportType string) error {
	lists, err := b.TodoLists(ctx)
	if err != nil {
		return fmt.Errorf("load todo lists: %w", err)
	}
	// Load all todos
	items, err := b.TodoItems(ctx, "")
	if err != nil {
		return fmt.Errorf("load todos: %w", err)
	}

	var content []byte

	switch exportType {
	case "json":
		content, err = json.MarshalIndent(exportFile{Lists: lists, Items: items}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal todos to JSON: %w", err)
		}
	case "txt":
		content = []byte(formatText(lists, items))
	default:
		return fmt.Errorf("unknown export type: %s", exportType)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(filename, content, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Fprintf(out, "Successfully exported %d todo(s) to %s\n", len(items), filename)
	return nil
}

// formatText renders one "# list" section per list with "DD.MM.YYYY:" date
// headers and "- [x] subject" lines. Undated todos come first in a section.
func formatText(lists []models.TodoList, items []models.TodoItem) string {
	byList := make(map[string][]models.TodoItem)
	for _, item := range items {
		byList[item.TodoListUUID] = append(byList[item.TodoListUUID], item)
	}

	var lines []string
	for _, l := range lists {
		listItems := byList[l.UUID]
		if len(listItems) == 0 {
			continue
		}
		lines = append(lines, "", "# "+l.Name)

		var dated []models.TodoItem
		for _, item := range listItems {
			if item.Due == nil {
				lines = append(lines, formatTextItem(item))
			} else {
				dated = append(dated, item)
			}
		}

		var lastDate string
		for _, item := range sortByDue(dated) {
			dateStr := item.Due.Local().Format("02.01.2006")
			if dateStr != lastDate {
				lines = append(lines, fmt.Sprintf("\n%s:", dateStr))
				lastDate = dateStr
			}
			lines = append(lines, formatTextItem(item))
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

func formatTextItem(item models.TodoItem) string {
	status := " "
	if item.Completed {
		status = "x"
	}
	subject := item.Subject
	if item.IsPriority {
		subject = "! " + subject
	}
	return fmt.Sprintf("- [%s] %s", status, subject)
}

func sortByDue(items []models.TodoItem) []models.TodoItem {
	sorted := append([]models.TodoItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Due.Before(*sorted[j].Due)
	})
	return sorted
}
