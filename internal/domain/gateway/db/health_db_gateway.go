package db

import (
	"context"

	"todo-api/internal/domain/model"
)

type HealthDBGateway interface {
	Health(ctx context.Context) model.ComponentHealthStatus
	// ActiveConnections reads the active connection count from the database system view.
	// Engines without such a view return an error.
	ActiveConnections(ctx context.Context) (int64, error)
}
