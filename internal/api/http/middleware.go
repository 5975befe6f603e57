package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/micorpx/acquisitions/internal/auth"
	"github.com/micorpx/acquisitions/internal/observability"
	"github.com/micorpx/acquisitions/internal/security"
	apperrors "github.com/micorpx/acquisitions/pkg/util"
)

// MiddlewareDeps bundles the pipeline's collaborators.
type MiddlewareDeps struct {
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Gate    *auth.Gate
	Shield  *security.Shield
	Timeout time.Duration
}

// RegisterMiddlewares attaches the global pipeline. Order matters:
// correlation tagging first so every later stage logs with the id, the
// error normalizer next so it catches everything downstream, then the
// optional identity resolution the shield needs to pick a rate tier.
func RegisterMiddlewares(app *fiber.App, deps MiddlewareDeps) {
	if deps.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(deps.Timeout))
	}
	app.Use(observability.CorrelationMiddleware())
	app.Use(errorHandlingMiddleware(deps.Logger, deps.Metrics))
	app.Use(observability.RequestLogger(deps.Logger, deps.Metrics))
	app.Use(deps.Gate.Optional())
	app.Use(deps.Shield.Guard())
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware is the single terminal error stage. Every
// failure raised downstream converges here, is logged with the request's
// correlation id, and is rendered as the canonical envelope. Unexpected
// errors degrade to a generic 500; their detail stays in the logs.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

				reqLogger := observability.WithCorrelation(logger, observability.CorrelationID(c))
				fields := []zap.Field{
					zap.String("code", domainErr.Code),
					zap.String("path", c.Path()),
					zap.String("method", c.Method()),
					zap.String("ip", c.IP()),
				}
				if domainErr.HTTPStatus >= 500 {
					reqLogger.Error("request failed", append(fields, zap.Error(domainErr))...)
				} else {
					reqLogger.Warn("request rejected", append(fields, zap.String("message", domainErr.Message))...)
				}

				errBody := fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}
				if len(domainErr.Details) > 0 {
					errBody["details"] = domainErr.Details
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{
					"success": false,
					"error":   errBody,
				})
				err = nil
			}
		}()
		return c.Next()
	}
}
