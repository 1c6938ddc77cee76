package tui

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pdxmph/tarefas-tui/internal/api"
	"github.com/pdxmph/tarefas-tui/internal/task"
)

// fakeService is an in-memory TaskService. The clock advances one minute per
// mutation so updatedAt always moves forward.
type fakeService struct {
	mu     sync.Mutex
	tasks  []task.Record
	nextID int
	now    time.Time

	// errs forces a failure for an operation: "create", "list", "get", "update", "delete"
	errs  map[string]error
	calls []string
	ctxs  []context.Context
}

func newFakeService(seed ...task.Task) *fakeService {
	f := &fakeService{
		now:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		errs: map[string]error{},
	}
	for _, t := range seed {
		f.insert(t)
	}
	return f
}

func notFound(op string) error {
	return &api.TransportError{Op: op, StatusCode: http.StatusNotFound, Message: "Tarefa não encontrada", Err: api.ErrNotFound}
}

func (f *fakeService) record(ctx context.Context, call string) {
	f.calls = append(f.calls, call)
	f.ctxs = append(f.ctxs, ctx)
}

func (f *fakeService) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fakeService) insert(t task.Task) task.Record {
	f.nextID++
	now := f.tick()
	rec := task.Record{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   task.NewTimestamp(now),
		UpdatedAt:   task.NewTimestamp(now),
	}
	f.tasks = append(f.tasks, rec)
	return rec
}

func (f *fakeService) index(id string) int {
	for i, r := range f.tasks {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeService) Create(ctx context.Context, t task.Task) (task.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx, "create")

	if err := f.errs["create"]; err != nil {
		return task.Record{}, err
	}
	if err := t.Validate(); err != nil {
		return task.Record{}, err
	}
	return f.insert(t), nil
}

func (f *fakeService) ListAll(ctx context.Context) ([]task.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx, "list")

	if err := f.errs["list"]; err != nil {
		return nil, err
	}
	out := make([]task.Record, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeService) GetByID(ctx context.Context, id string) (task.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx, "get:"+id)

	if err := f.errs["get"]; err != nil {
		return task.Record{}, err
	}
	i := f.index(id)
	if i < 0 {
		return task.Record{}, notFound("get")
	}
	return f.tasks[i], nil
}

func (f *fakeService) Update(ctx context.Context, id string, t task.Task) (task.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx, "update:"+id)

	if err := f.errs["update"]; err != nil {
		return task.Record{}, err
	}
	i := f.index(id)
	if i < 0 {
		return task.Record{}, notFound("update")
	}
	rec := f.tasks[i]
	rec.Title = t.Title
	rec.Description = t.Description
	rec.Status = t.Status
	rec.UpdatedAt = task.NewTimestamp(f.tick())
	f.tasks[i] = rec
	return rec, nil
}

func (f *fakeService) DeleteByID(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx, "delete:"+id)

	if err := f.errs["delete"]; err != nil {
		return err
	}
	i := f.index(id)
	if i < 0 {
		return notFound("delete")
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

func (f *fakeService) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

var _ TaskService = (*fakeService)(nil)
var _ TaskService = (*api.Client)(nil)
