package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/infra/metrics"
)

type statsGateway struct {
	db.TodoGateway
	stats entity.TodoStats
	err   error
}

func (g *statsGateway) CountByState(context.Context) (entity.TodoStats, error) {
	return g.stats, g.err
}

func TestRefreshTodoStats(t *testing.T) {
	m := metrics.New()
	gateway := &statsGateway{stats: entity.TodoStats{Active: 4, Completed: 2, Deleted: 9}}
	scheduler := NewTodoStatsScheduler(gateway, m)

	scheduler.RefreshTodoStats()

	for state, want := range map[string]float64{"active": 4, "completed": 2, "deleted": 9} {
		if got := testutil.ToFloat64(m.TodoItems.WithLabelValues(state)); got != want {
			t.Errorf("todo_items{state=%q} = %v, want %v", state, got, want)
		}
	}

	// a failed refresh keeps the previous values
	gateway.err = errors.New("database is gone")
	gateway.stats = entity.TodoStats{}
	scheduler.RefreshTodoStats()

	if got := testutil.ToFloat64(m.TodoItems.WithLabelValues("active")); got != 4 {
		t.Errorf("active = %v after failed refresh, want 4", got)
	}
}

func TestInitTodoStatsScheduleTasks(t *testing.T) {
	scheduler := NewTodoStatsScheduler(&statsGateway{}, metrics.New())

	if err := scheduler.InitTodoStatsScheduleTasks("not a cron"); err == nil {
		t.Error("invalid expression returned nil error")
	}
	if err := scheduler.InitTodoStatsScheduleTasks(""); err != nil {
		t.Errorf("empty expression error = %v", err)
	}
	if len(scheduler.cron.Entries()) != 0 {
		t.Errorf("entries = %d, want 0", len(scheduler.cron.Entries()))
	}

	if err := scheduler.InitTodoStatsScheduleTasks("@every 1h"); err != nil {
		t.Fatal(err)
	}
	defer scheduler.Stop()
	if len(scheduler.cron.Entries()) != 1 {
		t.Errorf("entries = %d, want 1", len(scheduler.cron.Entries()))
	}
}
