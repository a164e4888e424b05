package todo

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
)

// memoryGateway keeps todos in a map; enough to exercise the usecase rules.
type memoryGateway struct {
	todos  map[uint]entity.Todo
	nextID uint
	clock  time.Time
}

var _ db.TodoGateway = (*memoryGateway)(nil)

func newMemoryGateway() *memoryGateway {
	return &memoryGateway{
		todos: make(map[uint]entity.Todo),
		clock: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (g *memoryGateway) FindAllActive(context.Context) ([]entity.Todo, error) {
	out := make([]entity.Todo, 0)
	for _, todo := range g.todos {
		if !todo.IsDeleted {
			out = append(out, todo)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsCompleted != out[j].IsCompleted {
			return !out[i].IsCompleted
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (g *memoryGateway) FindByID(_ context.Context, id uint) (*entity.Todo, error) {
	todo, ok := g.todos[id]
	if !ok {
		return nil, db.ErrTodoNotFound
	}
	return &todo, nil
}

func (g *memoryGateway) Create(_ context.Context, todo entity.Todo) (*entity.Todo, error) {
	g.nextID++
	g.clock = g.clock.Add(time.Second)
	todo.ID = g.nextID
	todo.CreatedAt = g.clock
	g.todos[todo.ID] = todo
	return &todo, nil
}

func (g *memoryGateway) UpdateByID(_ context.Context, id uint, mutate func(*entity.Todo) error) (*entity.Todo, error) {
	todo, ok := g.todos[id]
	if !ok {
		return nil, db.ErrTodoNotFound
	}
	if err := mutate(&todo); err != nil {
		return nil, err
	}
	g.todos[id] = todo
	return &todo, nil
}

func (g *memoryGateway) SoftDeleteByID(_ context.Context, id uint) error {
	todo, ok := g.todos[id]
	if !ok {
		return db.ErrTodoNotFound
	}
	todo.IsDeleted = true
	g.todos[id] = todo
	return nil
}

func (g *memoryGateway) CountByState(context.Context) (entity.TodoStats, error) {
	return entity.TodoStats{}, nil
}

func newTestUseCase(gateway db.TodoGateway, now time.Time) *todoUseCase {
	return &todoUseCase{
		gateway:  gateway,
		validate: validator.New(),
		now:      func() time.Time { return now },
	}
}

func ptr[T any](v T) *T { return &v }

func TestCreateTrimsContent(t *testing.T) {
	uc := newTestUseCase(newMemoryGateway(), time.Now())

	todo, err := uc.Create(context.Background(), model.CreateTodoDTO{Content: "  Test todo item \n"})
	if err != nil {
		t.Fatal(err)
	}
	if todo.Content != "Test todo item" {
		t.Errorf("Content = %q", todo.Content)
	}
}

func TestCreateRejectsBlankContent(t *testing.T) {
	uc := newTestUseCase(newMemoryGateway(), time.Now())

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := uc.Create(context.Background(), model.CreateTodoDTO{Content: content})

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("Create(%q) error = %v, want ValidationError", content, err)
		}
		if validationErr.Message != "content is required" {
			t.Errorf("Message = %q", validationErr.Message)
		}
	}
}

func TestUpdateCompletionTransitions(t *testing.T) {
	gateway := newMemoryGateway()
	completedAt := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	uc := newTestUseCase(gateway, completedAt)
	ctx := context.Background()

	created, _ := uc.Create(ctx, model.CreateTodoDTO{Content: "walk the dog"})

	todo, err := uc.Update(ctx, created.ID, model.UpdateTodoDTO{IsCompleted: ptr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if !todo.IsCompleted || todo.CompletedAt == nil || !todo.CompletedAt.Equal(completedAt) {
		t.Fatalf("after completing: %+v", todo)
	}

	// re-affirming true keeps the first completion time
	uc.now = func() time.Time { return completedAt.Add(time.Hour) }
	todo, err = uc.Update(ctx, created.ID, model.UpdateTodoDTO{IsCompleted: ptr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if !todo.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt = %v, want %v", todo.CompletedAt, completedAt)
	}

	todo, err = uc.Update(ctx, created.ID, model.UpdateTodoDTO{IsCompleted: ptr(false)})
	if err != nil {
		t.Fatal(err)
	}
	if todo.IsCompleted || todo.CompletedAt != nil {
		t.Errorf("after reopening: %+v", todo)
	}
}

func TestUpdateIsPartial(t *testing.T) {
	uc := newTestUseCase(newMemoryGateway(), time.Now())
	ctx := context.Background()

	created, _ := uc.Create(ctx, model.CreateTodoDTO{Content: "first"})
	if _, err := uc.Update(ctx, created.ID, model.UpdateTodoDTO{IsCompleted: ptr(true)}); err != nil {
		t.Fatal(err)
	}

	todo, err := uc.Update(ctx, created.ID, model.UpdateTodoDTO{Content: ptr("  second  ")})
	if err != nil {
		t.Fatal(err)
	}
	if todo.Content != "second" {
		t.Errorf("Content = %q, want second", todo.Content)
	}
	if !todo.IsCompleted || todo.CompletedAt == nil {
		t.Errorf("content-only update touched completion: %+v", todo)
	}
}

func TestUpdateRejectsEmptyContent(t *testing.T) {
	gateway := newMemoryGateway()
	uc := newTestUseCase(gateway, time.Now())
	ctx := context.Background()

	created, _ := uc.Create(ctx, model.CreateTodoDTO{Content: "keep"})

	_, err := uc.Update(ctx, created.ID, model.UpdateTodoDTO{Content: ptr("   "), IsCompleted: ptr(true)})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Message != "content cannot be empty" {
		t.Fatalf("error = %v, want content cannot be empty", err)
	}

	stored := gateway.todos[created.ID]
	if stored.Content != "keep" || stored.IsCompleted {
		t.Errorf("rejected update was applied: %+v", stored)
	}
}

func TestUpdateAndDeleteNotFound(t *testing.T) {
	uc := newTestUseCase(newMemoryGateway(), time.Now())
	ctx := context.Background()

	if _, err := uc.Update(ctx, 99999, model.UpdateTodoDTO{Content: ptr("")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update error = %v, want ErrNotFound", err)
	}
	if err := uc.Delete(ctx, 99999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete error = %v, want ErrNotFound", err)
	}
}

func TestDeletedTodoCanStillBeUpdated(t *testing.T) {
	uc := newTestUseCase(newMemoryGateway(), time.Now())
	ctx := context.Background()

	created, _ := uc.Create(ctx, model.CreateTodoDTO{Content: "gone"})
	if err := uc.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}

	todo, err := uc.Update(ctx, created.ID, model.UpdateTodoDTO{Content: ptr("still here")})
	if err != nil {
		t.Fatalf("Update on deleted todo error = %v", err)
	}
	if !todo.IsDeleted || todo.Content != "still here" {
		t.Errorf("todo = %+v", todo)
	}
	if err := uc.Delete(ctx, created.ID); err != nil {
		t.Errorf("second Delete error = %v", err)
	}

	todos, _ := uc.List(ctx)
	if len(todos) != 0 {
		t.Errorf("List() = %v, want empty", todos)
	}
}
