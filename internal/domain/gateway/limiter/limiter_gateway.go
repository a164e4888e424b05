package limiter

import (
	"context"

	"todo-api/internal/domain/model"
)

// Limiter hands out request slots. Acquire errors wrapping redis.ErrLimitReached mean the
// caller must be rejected; any other error means the limiter could not decide.
type Limiter interface {
	Acquire(ctx context.Context) (string, error)
	Release(ctx context.Context, transactionID string) error
}

type HealthGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
}
