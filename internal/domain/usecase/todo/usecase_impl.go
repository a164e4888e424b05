package todo

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

type todoUseCase struct {
	gateway  db.TodoGateway
	validate *validator.Validate
	now      func() time.Time
}

func NewTodoUseCase(gateway db.TodoGateway) UseCase {
	return &todoUseCase{
		gateway:  gateway,
		validate: validator.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (uc *todoUseCase) List(ctx context.Context) ([]entity.Todo, error) {
	return uc.gateway.FindAllActive(ctx)
}

func (uc *todoUseCase) Create(ctx context.Context, dto model.CreateTodoDTO) (*entity.Todo, error) {
	dto.Content = strings.TrimSpace(dto.Content)
	if err := uc.validate.Struct(dto); err != nil {
		return nil, &ValidationError{Message: msg.GetMessage("todo.error.content-required")}
	}

	created, err := uc.gateway.Create(ctx, entity.Todo{Content: dto.Content})
	if err != nil {
		return nil, err
	}

	log.Debug(msg.GetMessage("todo.created", created.ID), zap.Uint("todo_id", created.ID))
	return created, nil
}

func (uc *todoUseCase) Update(ctx context.Context, id uint, dto model.UpdateTodoDTO) (*entity.Todo, error) {
	updated, err := uc.gateway.UpdateByID(ctx, id, func(todo *entity.Todo) error {
		if dto.Content != nil {
			content := strings.TrimSpace(*dto.Content)
			if content == "" {
				return &ValidationError{Message: msg.GetMessage("todo.error.content-empty")}
			}
			todo.Content = content
		}

		if dto.IsCompleted != nil {
			todo.SetCompleted(*dto.IsCompleted, uc.now())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug(msg.GetMessage("todo.updated", id), zap.Uint("todo_id", id))
	return updated, nil
}

func (uc *todoUseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.gateway.SoftDeleteByID(ctx, id); err != nil {
		return err
	}

	log.Debug(msg.GetMessage("todo.deleted", id), zap.Uint("todo_id", id))
	return nil
}
