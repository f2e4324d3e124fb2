package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"todoshell/pkg/backend"
	"todoshell/pkg/models"
	"todoshell/pkg/utils"
)

var dateRegex = regexp.MustCompile(`^(?:(\d{2})\.(\d{2})\.(\d{4})|(\d{4})-(\d{2})-(\d{2})):?$`)

// HandleImportCommand reads a JSON or text export and adds its todos
func HandleImportCommand(ctx context.Context, b backend.Backend, out io.Writer, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var added int
	if trimmed := bytes.TrimSpace(content); len(trimmed) > 0 && trimmed[0] == '{' {
		added, err = importJSON(ctx, b, trimmed)
	} else {
		added, err = importText(ctx, b, string(content))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Successfully imported %d todo(s) from %s\n", added, filename)
	return nil
}

func importJSON(ctx context.Context, b backend.Backend, content []byte) (int, error) {
	if err := validateExport(content); err != nil {
		return 0, err
	}
	var data exportFile
	if err := json.Unmarshal(content, &data); err != nil {
		return 0, fmt.Errorf("decode JSON export: %w", err)
	}

	// map exported list ids onto lists in this database, matched by name
	listIDs := make(map[string]string, len(data.Lists))
	for _, l := range data.Lists {
		list, err := findOrCreateList(ctx, b, l.Name)
		if err != nil {
			return 0, err
		}
		listIDs[l.UUID] = list.UUID
	}

	var added int
	for _, item := range data.Items {
		listUUID, ok := listIDs[item.TodoListUUID]
		if !ok {
			list, err := b.EnsureDefaultList(ctx)
			if err != nil {
				return added, err
			}
			listUUID = list.UUID
		}
		item.UUID = ""
		item.TodoListUUID = listUUID
		if _, err := b.AddTodoItem(ctx, item); err != nil {
			utils.Logger().Warn("skipping todo", "subject", item.Subject, "err", err)
			continue
		}
		added++
	}
	return added, nil
}

func importText(ctx context.Context, b backend.Backend, content string) (int, error) {
	list, err := b.EnsureDefaultList(ctx)
	if err != nil {
		return 0, err
	}

	var currentDate *time.Time
	var added int

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// "# name" starts a new list section
		if strings.HasPrefix(line, "# ") {
			list, err = findOrCreateList(ctx, b, strings.TrimSpace(strings.TrimPrefix(line, "# ")))
			if err != nil {
				return added, err
			}
			currentDate = nil
			continue
		}

		// Check if line contains a date (DD.MM.YYYY: or YYYY-MM-DD: format)
		if dateMatch := dateRegex.FindStringSubmatch(line); dateMatch != nil {
			var day, month, year int
			if dateMatch[1] != "" {
				day, _ = strconv.Atoi(dateMatch[1])
				month, _ = strconv.Atoi(dateMatch[2])
				year, _ = strconv.Atoi(dateMatch[3])
			} else {
				year, _ = strconv.Atoi(dateMatch[4])
				month, _ = strconv.Atoi(dateMatch[5])
				day, _ = strconv.Atoi(dateMatch[6])
			}
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
			currentDate = &d
			continue
		}

		// Check if line is a todo (starts with -)
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(line, "- "))

		completed := false
		if strings.HasPrefix(text, "[x]") {
			completed = true
			text = strings.TrimSpace(strings.TrimPrefix(text, "[x]"))
		} else if strings.HasPrefix(text, "[ ]") {
			text = strings.TrimSpace(strings.TrimPrefix(text, "[ ]"))
		}

		priority := false
		if strings.HasPrefix(text, "! ") {
			priority = true
			text = strings.TrimSpace(strings.TrimPrefix(text, "! "))
		}
		if text == "" {
			continue
		}

		item := models.TodoItem{
			TodoListUUID: list.UUID,
			Subject:      text,
			Completed:    completed,
			IsPriority:   priority,
			Due:          currentDate,
		}
		if _, err := b.AddTodoItem(ctx, item); err != nil {
			utils.Logger().Warn("skipping todo", "subject", text, "err", err)
			continue
		}
		added++
	}

	return added, nil
}

func findOrCreateList(ctx context.Context, b backend.Backend, name string) (models.TodoList, error) {
	if list, err := resolveList(ctx, b, name); err == nil {
		return list, nil
	}
	return b.CreateTodoList(ctx, name)
}
