package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todo-api/internal/domain/entity"
)

type GormTodoGateway struct {
	DB  *gorm.DB
	Now func() time.Time
}

var _ TodoGateway = (*GormTodoGateway)(nil)

func NewGormTodoGateway(db *gorm.DB) *GormTodoGateway {
	return &GormTodoGateway{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

func (gateway *GormTodoGateway) FindAllActive(ctx context.Context) ([]entity.Todo, error) {
	todos := make([]entity.Todo, 0)
	err := gateway.DB.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("is_completed ASC").
		Order("created_at DESC").
		Order("id DESC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (gateway *GormTodoGateway) FindByID(ctx context.Context, id uint) (*entity.Todo, error) {
	var todo entity.Todo
	err := gateway.DB.WithContext(ctx).First(&todo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo %d: %w", id, err)
	}
	return &todo, nil
}

func (gateway *GormTodoGateway) Create(ctx context.Context, todo entity.Todo) (*entity.Todo, error) {
	todo.ID = 0
	todo.IsCompleted = false
	todo.IsDeleted = false
	todo.CompletedAt = nil
	todo.CreatedAt = gateway.Now()

	if err := gateway.DB.WithContext(ctx).Create(&todo).Error; err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return &todo, nil
}

func (gateway *GormTodoGateway) UpdateByID(ctx context.Context, id uint, mutate func(todo *entity.Todo) error) (*entity.Todo, error) {
	var todo entity.Todo
	err := gateway.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&todo, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTodoNotFound
			}
			return fmt.Errorf("failed to load todo %d: %w", id, err)
		}

		if err := mutate(&todo); err != nil {
			return err
		}

		// Select("*") writes false and nil values too
		if err := tx.Model(&todo).Select("*").Omit("id", "created_at").Updates(&todo).Error; err != nil {
			return fmt.Errorf("failed to update todo %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (gateway *GormTodoGateway) SoftDeleteByID(ctx context.Context, id uint) error {
	result := gateway.DB.WithContext(ctx).
		Model(&entity.Todo{}).
		Where("id = ?", id).
		Update("is_deleted", true)
	if result.Error != nil {
		return fmt.Errorf("failed to delete todo %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (gateway *GormTodoGateway) CountByState(ctx context.Context) (entity.TodoStats, error) {
	var stats entity.TodoStats
	err := gateway.DB.WithContext(ctx).
		Model(&entity.Todo{}).
		Select(
			"COALESCE(SUM(CASE WHEN is_deleted = ? AND is_completed = ? THEN 1 ELSE 0 END), 0) AS active, "+
				"COALESCE(SUM(CASE WHEN is_deleted = ? AND is_completed = ? THEN 1 ELSE 0 END), 0) AS completed, "+
				"COALESCE(SUM(CASE WHEN is_deleted = ? THEN 1 ELSE 0 END), 0) AS deleted",
			false, false, false, true, true).
		Scan(&stats).Error
	if err != nil {
		return entity.TodoStats{}, fmt.Errorf("failed to count todos: %w", err)
	}
	return stats, nil
}
