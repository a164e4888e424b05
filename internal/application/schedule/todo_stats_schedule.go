package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/infra/metrics"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
)

const refreshTimeout = 10 * time.Second

type TodoStatsScheduler struct {
	cron    *cron.Cron
	gateway db.TodoGateway
	metrics *metrics.Metrics
}

func NewTodoStatsScheduler(gateway db.TodoGateway, m *metrics.Metrics) *TodoStatsScheduler {
	return &TodoStatsScheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		gateway: gateway,
		metrics: m,
	}
}

// InitTodoStatsScheduleTasks registers the statistics refresh. An empty expression disables it.
func (scheduler *TodoStatsScheduler) InitTodoStatsScheduleTasks(expression string) error {
	if expression == "" {
		return nil
	}

	if _, err := scheduler.cron.AddFunc(expression, scheduler.RefreshTodoStats); err != nil {
		return err
	}

	scheduler.cron.Start()
	return nil
}

// Stop waits for a running refresh to finish.
func (scheduler *TodoStatsScheduler) Stop() {
	<-scheduler.cron.Stop().Done()
}

func (scheduler *TodoStatsScheduler) RefreshTodoStats() {
	runID := uuid.NewString()
	log.Debug(msg.GetMessage("todo-stats.cron.start"), zap.String("run_id", runID))

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	stats, err := scheduler.gateway.CountByState(ctx)
	if err != nil {
		log.Error(msg.GetMessage("todo-stats.error.refresh-failed"), zap.String("run_id", runID), zap.Error(err))
		return
	}
	scheduler.metrics.SetTodoStats(stats)

	log.Debug(msg.GetMessage("todo-stats.cron.end"),
		zap.String("run_id", runID),
		zap.Int64("active", stats.Active),
		zap.Int64("completed", stats.Completed),
		zap.Int64("deleted", stats.Deleted))
}
