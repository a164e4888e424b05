package health

import (
	"context"

	"todo-api/internal/domain/model"
)

type UseCase interface {
	// CheckHealth answers liveness and never touches dependencies.
	CheckHealth() model.HealthResponse
	// CheckReadiness pings the database and, when configured, Redis.
	CheckReadiness(ctx context.Context) model.ReadinessResponse
}
