package domain

import (
	"slices"
	"strings"
)

// Attribute is one caller-supplied markup attribute copied onto a task block.
type Attribute struct {
	Name  string `json:"name" toml:"name"`
	Value string `json:"value" toml:"value"`
}

// Task is one calendar annotation pinned to a single day.
type Task struct {
	Year        int         `json:"year" toml:"year"`
	Month       int         `json:"month" toml:"month"`
	Day         int         `json:"day" toml:"day"`
	Task        string      `json:"task" toml:"task"`
	Description string      `json:"description,omitempty" toml:"description,omitempty"`
	Color       string      `json:"color,omitempty" toml:"color,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty" toml:"attributes,omitempty"`
}

// OnDate reports whether the task belongs to the given calendar day.
func (t Task) OnDate(year, month, day int) bool {
	return t.Year == year && t.Month == month && t.Day == day
}

// HasDescription reports whether a long form exists for the task.
func (t Task) HasDescription() bool {
	return t.Description != ""
}

// LongText returns "{task} - {description}", or the bare task code.
func (t Task) LongText() string {
	if !t.HasDescription() {
		return t.Task
	}
	return t.Task + " - " + t.Description
}

// ShortText returns the bare task code.
func (t Task) ShortText() string {
	return t.Task
}

// Validate performs presence checks only.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Task) == "" {
		return ErrInvalidTask
	}
	return nil
}

// Clone returns a deep copy so attribute slices are never shared.
func (t Task) Clone() Task {
	t.Attributes = slices.Clone(t.Attributes)
	return t
}

// CloneTasks deep-copies a task list.
func CloneTasks(in []Task) []Task {
	if in == nil {
		return nil
	}
	out := make([]Task, len(in))
	for i, task := range in {
		out[i] = task.Clone()
	}
	return out
}

// TasksOn filters tasks for one day, preserving input order.
func TasksOn(tasks []Task, year, month, day int) []Task {
	out := make([]Task, 0)
	for _, task := range tasks {
		if task.OnDate(year, month, day) {
			out = append(out, task.Clone())
		}
	}
	return out
}
