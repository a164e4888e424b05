package db

import (
	"context"
	"errors"

	"todo-api/internal/domain/entity"
)

var ErrTodoNotFound = errors.New("todo not found")

type TodoGateway interface {
	// FindAllActive returns non-deleted todos, open ones first, newest first within each group.
	FindAllActive(ctx context.Context) ([]entity.Todo, error)
	// FindByID resolves deleted todos too.
	FindByID(ctx context.Context, id uint) (*entity.Todo, error)
	Create(ctx context.Context, todo entity.Todo) (*entity.Todo, error)
	// UpdateByID loads the todo, applies mutate and saves it in one transaction.
	// An error returned by mutate aborts the transaction.
	UpdateByID(ctx context.Context, id uint, mutate func(todo *entity.Todo) error) (*entity.Todo, error)
	SoftDeleteByID(ctx context.Context, id uint) error
	CountByState(ctx context.Context) (entity.TodoStats, error)
}
