package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"todo-api/internal/domain/gateway/limiter"
	"todo-api/internal/domain/model"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"
)

// RateLimit rejects requests with 429 once the limiter refuses a slot.
// The limiter failing for any other reason lets the request through.
func RateLimit(rateLimiter limiter.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			transactionID, err := rateLimiter.Acquire(ctx)
			if errors.Is(err, redis.ErrLimitReached) {
				return c.JSON(http.StatusTooManyRequests, model.ErrorResponse{Error: msg.GetMessage("rate-limit.exceeded")})
			}
			if err != nil {
				log.Warn(msg.GetMessage("rate-limit.unavailable"), zap.Error(err))
				return next(c)
			}

			defer func() {
				if err := rateLimiter.Release(context.WithoutCancel(ctx), transactionID); err != nil {
					log.Warn(msg.GetMessage("rate-limit.unavailable"), zap.Error(err))
				}
			}()
			return next(c)
		}
	}
}
