package health

import (
	"context"

	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/gateway/limiter"
	"todo-api/internal/domain/model"
)

type healthUseCase struct {
	dbGateway      db.HealthDBGateway
	limiterGateway limiter.HealthGateway
}

func NewHealthUseCase(dbGateway db.HealthDBGateway, limiterGateway limiter.HealthGateway) UseCase {
	return &healthUseCase{
		dbGateway:      dbGateway,
		limiterGateway: limiterGateway,
	}
}

func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	return model.HealthResponse{Status: model.StatusHealthy}
}

func (useCase *healthUseCase) CheckReadiness(ctx context.Context) model.ReadinessResponse {
	dbHealth := useCase.dbGateway.Health(ctx)
	redisHealth := useCase.limiterGateway.Health(ctx)

	overallStatus := model.StatusUp
	if dbHealth.Status != model.StatusUp || redisHealth.Status == model.StatusDown {
		overallStatus = model.StatusDown
	}

	return model.ReadinessResponse{
		Status:   overallStatus,
		Database: dbHealth,
		Redis:    redisHealth,
	}
}
