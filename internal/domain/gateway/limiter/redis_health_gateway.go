package limiter

import (
	"context"

	"todo-api/internal/domain/model"
	"todo-api/pkg/redis"
)

type RedisHealthGateway struct {
	client *redis.Client
}

var _ HealthGateway = (*RedisHealthGateway)(nil)

// NewRedisHealthGateway accepts a nil client, which reports the component as disabled.
func NewRedisHealthGateway(client *redis.Client) *RedisHealthGateway {
	return &RedisHealthGateway{client: client}
}

func (gateway *RedisHealthGateway) Health(ctx context.Context) model.ComponentHealthStatus {
	if gateway.client == nil {
		return model.ComponentHealthStatus{Status: model.StatusDisabled}
	}

	check := gateway.client.HealthCheck(ctx)
	status := model.StatusDown
	if check.Status == redis.StatusUp {
		status = model.StatusUp
	}
	return model.ComponentHealthStatus{Status: status, Details: check.Details}
}
