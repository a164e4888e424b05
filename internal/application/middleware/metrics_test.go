package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"todo-api/internal/domain/model"
	"todo-api/internal/infra/metrics"
)

type fakeHealthDBGateway struct {
	connections int64
	err         error
	calls       int
}

func (g *fakeHealthDBGateway) Health(context.Context) model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: model.StatusUp}
}

func (g *fakeHealthDBGateway) ActiveConnections(context.Context) (int64, error) {
	g.calls++
	return g.connections, g.err
}

func newMetricsEcho(m *metrics.Metrics, gateway *fakeHealthDBGateway) *echo.Echo {
	e := echo.New()
	e.Use(Metrics(m, gateway))
	e.RouteNotFound(NotFoundRoute, func(c echo.Context) error {
		return echo.ErrNotFound
	})
	e.GET("/todos", func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	})
	e.GET("/todos/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound)
	})
	e.POST("/todos", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "content is required"})
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})
	return e
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

func TestMetricsRecordsRouteTemplates(t *testing.T) {
	m := metrics.New()
	e := newMetricsEcho(m, &fakeHealthDBGateway{connections: 4})

	serve(e, http.MethodGet, "/todos")
	serve(e, http.MethodGet, "/todos")
	serve(e, http.MethodGet, "/todos/1")
	serve(e, http.MethodGet, "/todos/2")
	serve(e, http.MethodPost, "/todos")

	tests := []struct {
		method, path, status string
		want                 float64
	}{
		{"GET", "/todos", "200", 2},
		{"GET", "/todos/:id", "404", 2},
		{"POST", "/todos", "400", 1},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues(tt.method, tt.path, tt.status))
		if got != tt.want {
			t.Errorf("requests{%s,%s,%s} = %v, want %v", tt.method, tt.path, tt.status, got, tt.want)
		}
	}
	if got := testutil.CollectAndCount(m.RequestDuration); got != 3 {
		t.Errorf("duration series = %d, want 3", got)
	}
}

func TestMetricsUnmatchedAndFailedRequests(t *testing.T) {
	m := metrics.New()
	e := newMetricsEcho(m, &fakeHealthDBGateway{})

	if recorder := serve(e, http.MethodGet, "/does-not-exist"); recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", recorder.Code)
	}
	if recorder := serve(e, http.MethodGet, "/boom"); recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", recorder.Code)
	}

	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "not_found", "404")); got != 1 {
		t.Errorf("not_found requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/boom", "500")); got != 1 {
		t.Errorf("/boom requests = %v, want 1", got)
	}
}

func TestMetricsConnectionGauge(t *testing.T) {
	m := metrics.New()
	gateway := &fakeHealthDBGateway{connections: 6}
	e := newMetricsEcho(m, gateway)

	serve(e, http.MethodGet, "/todos")
	if got := testutil.ToFloat64(m.DBConnections); got != 6 {
		t.Fatalf("db connections = %v, want 6", got)
	}

	// a failing query keeps the last value and the response untouched
	gateway.err = errors.New("no pg_stat_activity")
	gateway.connections = 0
	if recorder := serve(e, http.MethodGet, "/todos"); recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if got := testutil.ToFloat64(m.DBConnections); got != 6 {
		t.Errorf("db connections = %v, want 6", got)
	}
	if gateway.calls != 2 {
		t.Errorf("ActiveConnections calls = %d, want 2", gateway.calls)
	}
}
