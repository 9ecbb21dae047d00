package app

import (
	"context"

	"github.com/evanschultz/moncal/internal/domain"
)

// TaskSource supplies the task list the calendar annotates.
type TaskSource interface {
	ListTasks(context.Context) ([]domain.Task, error)
}

// StaticTasks is an in-memory TaskSource.
type StaticTasks []domain.Task

// ListTasks returns a copy of the held tasks.
func (s StaticTasks) ListTasks(context.Context) ([]domain.Task, error) {
	return domain.CloneTasks(s), nil
}
