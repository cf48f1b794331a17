package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/platform-admin/internal/auth"
	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
)

// APILogRecorder persists one api_logs row per request. Rows feed the admin
// traffic and latency widgets; inserts are best effort and never block or
// fail the request.
func APILogRecorder(logs repository.APILogRepository, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		row := &domain.APILog{
			Method:     c.Method(),
			Path:       c.Path(),
			StatusCode: c.Response().StatusCode(),
			LatencyMS:  time.Since(start).Milliseconds(),
			CreatedAt:  start.UTC(),
		}
		if p, ok := auth.PrincipalFromContext(c); ok {
			row.CallerID = &p.User.ID
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if insertErr := logs.Insert(ctx, row); insertErr != nil {
				logger.Warn("api log insert failed", zap.Error(insertErr))
			}
		}()

		return err
	}
}
