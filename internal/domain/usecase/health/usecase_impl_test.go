package health

import (
	"context"
	"testing"

	"todo-api/internal/domain/model"
)

type stubDBGateway struct {
	status model.HealthStatus
}

func (s stubDBGateway) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: s.status}
}

func (s stubDBGateway) ActiveConnections(context.Context) (int64, error) {
	return 0, nil
}

type stubLimiterGateway struct {
	status model.HealthStatus
}

func (s stubLimiterGateway) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: s.status}
}

func TestCheckHealthIsUnconditional(t *testing.T) {
	useCase := NewHealthUseCase(stubDBGateway{status: model.StatusDown}, stubLimiterGateway{status: model.StatusDown})

	if got := useCase.CheckHealth(); got.Status != model.StatusHealthy {
		t.Errorf("CheckHealth() = %+v, want healthy", got)
	}
}

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name   string
		db     model.HealthStatus
		redis  model.HealthStatus
		expect model.HealthStatus
	}{
		{name: "all up", db: model.StatusUp, redis: model.StatusUp, expect: model.StatusUp},
		{name: "redis disabled", db: model.StatusUp, redis: model.StatusDisabled, expect: model.StatusUp},
		{name: "database down", db: model.StatusDown, redis: model.StatusDisabled, expect: model.StatusDown},
		{name: "redis down", db: model.StatusUp, redis: model.StatusDown, expect: model.StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := NewHealthUseCase(stubDBGateway{status: tt.db}, stubLimiterGateway{status: tt.redis})
			got := useCase.CheckReadiness(context.Background())
			if got.Status != tt.expect {
				t.Errorf("Status = %s, want %s", got.Status, tt.expect)
			}
			if got.Database.Status != tt.db || got.Redis.Status != tt.redis {
				t.Errorf("components = %+v / %+v", got.Database, got.Redis)
			}
		})
	}
}
