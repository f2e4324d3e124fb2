package filter

import (
	"encoding/json"
	"strings"
)

// Due selects todo items by due date. The empty value means no due criterion.
type Due string

const (
	DueNone    Due = ""
	DueNoDate  Due = "nodue"
	DueAgenda  Due = "agenda"
	DueOverdue Due = "overdue"
	DueMon     Due = "mon"
	DueTue     Due = "tue"
	DueWed     Due = "wed"
	DueThu     Due = "thu"
	DueFri     Due = "fri"
	DueSat     Due = "sat"
	DueSun     Due = "sun"
)

// DueOptions lists the selectable due values in display order; "none" clears the criterion
var DueOptions = []string{"none", "nodue", "agenda", "overdue", "mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// DueLabels maps due values to the labels shown in the filter dialog
var DueLabels = map[string]string{
	"none":    "No due filter",
	"nodue":   "No date set",
	"agenda":  "Agenda",
	"overdue": "Overdue",
	"mon":     "Monday",
	"tue":     "Tuesday",
	"wed":     "Wednesday",
	"thu":     "Thursday",
	"fri":     "Friday",
	"sat":     "Saturday",
	"sun":     "Sunday",
}

// Group selects how the todo view is grouped. The empty value means no grouping.
type Group string

const (
	GroupNone     Group = ""
	GroupKanban   Group = "kanban"
	GroupDue      Group = "due"
	GroupPriority Group = "priority"
)

// GroupOptions lists the selectable group values in display order
var GroupOptions = []string{"none", "kanban", "due", "priority"}

// DefaultKanbanColumns is used for filters that were never configured
var DefaultKanbanColumns = []string{"Todo", "Doing", "Done"}

func (d Due) MarshalJSON() ([]byte, error) {
	return nullableString(string(d))
}

func (d *Due) UnmarshalJSON(data []byte) error {
	s, err := unmarshalNullableString(data)
	*d = Due(s)
	return err
}

func (g Group) MarshalJSON() ([]byte, error) {
	return nullableString(string(g))
}

func (g *Group) UnmarshalJSON(data []byte) error {
	s, err := unmarshalNullableString(data)
	*g = Group(s)
	return err
}

func nullableString(s string) ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s)
}

func unmarshalNullableString(data []byte) (string, error) {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	if s == nil {
		return "", nil
	}
	return *s, nil
}

// Filter holds the criteria and grouping of a todo view
type Filter struct {
	SubjectContains *string  `json:"subjectContains"`
	Completed       TriState `json:"completed"`
	IsPriority      TriState `json:"isPriority"`
	Archived        TriState `json:"archived"`
	Due             Due      `json:"due"`
	Group           Group    `json:"group"`
	KanbanColumns   []string `json:"kanbanColumns"`

	// last applied values, restored when a criterion is switched back on
	lastCompleted  TriState
	lastIsPriority TriState
	lastArchived   TriState
}

// Default returns the filter used when nothing is stored
func Default() Filter {
	return Filter{
		Completed:     False,
		Archived:      False,
		KanbanColumns: append([]string(nil), DefaultKanbanColumns...),
	}
}

// Clone returns a deep copy of f
func (f Filter) Clone() Filter {
	c := f
	if f.SubjectContains != nil {
		s := *f.SubjectContains
		c.SubjectContains = &s
	}
	if f.KanbanColumns != nil {
		c.KanbanColumns = append([]string(nil), f.KanbanColumns...)
	}
	return c
}

func (f *Filter) ToggleCompleted() {
	toggleValue(&f.Completed)
}

func (f *Filter) ToggleUseCompleted() {
	toggleUse(&f.Completed, &f.lastCompleted)
}

func (f *Filter) ToggleIsPriority() {
	toggleValue(&f.IsPriority)
}

func (f *Filter) ToggleUseIsPriority() {
	toggleUse(&f.IsPriority, &f.lastIsPriority)
}

func (f *Filter) ToggleArchived() {
	toggleValue(&f.Archived)
}

func (f *Filter) ToggleUseArchived() {
	toggleUse(&f.Archived, &f.lastArchived)
}

// toggleValue flips an applied criterion and leaves an unset one alone
func toggleValue(t *TriState) {
	switch *t {
	case True:
		*t = False
	case False:
		*t = True
	}
}

// toggleUse switches between unset and the last applied value, starting at False
func toggleUse(t *TriState, last *TriState) {
	if t.IsSet() {
		*last = *t
		*t = Unset
		return
	}
	if last.IsSet() {
		*t = *last
		return
	}
	*t = False
}

// SetSubjectContains applies a subject substring; the empty string clears it
func (f *Filter) SetSubjectContains(s string) {
	if s == "" {
		f.SubjectContains = nil
		return
	}
	f.SubjectContains = &s
}

// Subject returns the subject substring or "" when not applied
func (f Filter) Subject() string {
	if f.SubjectContains == nil {
		return ""
	}
	return *f.SubjectContains
}

// SetDue stores v verbatim, except "none" which clears the criterion
func (f *Filter) SetDue(v string) {
	if v == "none" {
		f.Due = DueNone
		return
	}
	f.Due = Due(v)
}

// SetGroup stores v verbatim, except "none" which clears the grouping
func (f *Filter) SetGroup(v string) {
	if v == "none" {
		f.Group = GroupNone
		return
	}
	f.Group = Group(v)
}

// SetKanbanColumns replaces the column list
func (f *Filter) SetKanbanColumns(cols []string) {
	f.KanbanColumns = append([]string(nil), cols...)
}

// KanbanColumnNames returns a copy of the column list
func (f Filter) KanbanColumnNames() []string {
	return append([]string(nil), f.KanbanColumns...)
}

// MoveColumn moves the column at index from to index to
func MoveColumn(cols []string, from, to int) []string {
	out := append([]string(nil), cols...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	name := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{name}, out[to:]...)...)
	return out
}

// RemoveColumn drops every column called name
func RemoveColumn(cols []string, name string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if c != name {
			out = append(out, c)
		}
	}
	return out
}

// AddColumn appends the trimmed name
func AddColumn(cols []string, name string) []string {
	out := append([]string(nil), cols...)
	return append(out, strings.TrimSpace(name))
}
