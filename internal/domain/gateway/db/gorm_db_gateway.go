package db

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo-api/internal/domain/model"
)

const activeConnectionsQuery = "SELECT count(*) FROM pg_stat_activity WHERE state = 'active'"

type GormHealthDBGateway struct {
	DB *gorm.DB
}

var _ HealthDBGateway = (*GormHealthDBGateway)(nil)

func NewGormHealthDBGateway(db *gorm.DB) *GormHealthDBGateway {
	return &GormHealthDBGateway{DB: db}
}

func (gateway *GormHealthDBGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	sqlDB, err := gateway.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return model.ComponentHealthStatus{
			Status: model.StatusDown,
			Details: map[string]string{
				"dialect": gateway.DB.Dialector.Name(),
				"message": err.Error(),
			},
		}
	}

	return model.ComponentHealthStatus{
		Status: model.StatusUp,
		Details: map[string]string{
			"dialect": gateway.DB.Dialector.Name(),
		},
	}
}

func (gateway *GormHealthDBGateway) ActiveConnections(ctx context.Context) (int64, error) {
	var count int64
	err := gateway.DB.
		Session(&gorm.Session{Logger: logger.Discard}).
		WithContext(ctx).
		Raw(activeConnectionsQuery).
		Scan(&count).Error
	return count, err
}
