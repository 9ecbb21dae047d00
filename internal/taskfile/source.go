package taskfile

import (
	"context"

	"github.com/evanschultz/moncal/internal/domain"
)

// Source re-reads a task file on every call so edits show up without a restart.
type Source struct {
	Path string
}

// ListTasks loads the file at s.Path.
func (s Source) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path)
}
