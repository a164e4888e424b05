package todo

import (
	"context"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

type UseCase interface {
	// List returns the todos that were not deleted, open ones first and newest first.
	List(ctx context.Context) ([]entity.Todo, error)
	Create(ctx context.Context, dto model.CreateTodoDTO) (*entity.Todo, error)
	// Update applies only the fields present in dto.
	Update(ctx context.Context, id uint, dto model.UpdateTodoDTO) (*entity.Todo, error)
	Delete(ctx context.Context, id uint) error
}
