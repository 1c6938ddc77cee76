package tui

import (
	"context"

	"github.com/pdxmph/tarefas-tui/internal/task"
)

// TaskService is the backend the views talk to. *api.Client implements it.
type TaskService interface {
	Create(ctx context.Context, t task.Task) (task.Record, error)
	ListAll(ctx context.Context) ([]task.Record, error)
	GetByID(ctx context.Context, id string) (task.Record, error)
	Update(ctx context.Context, id string, t task.Task) (task.Record, error)
	DeleteByID(ctx context.Context, id string) error
}
