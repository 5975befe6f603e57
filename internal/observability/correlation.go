package observability

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderCorrelationID is the inbound/outbound trace-identifier header.
const HeaderCorrelationID = "X-Correlation-Id"

const correlationKey = "correlation_id"

// CorrelationMiddleware reuses the caller-supplied correlation id or
// generates a fresh one, attaches it to the request, and mirrors it onto
// the response so client and server logs can be matched up.
func CorrelationMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		correlationID := strings.TrimSpace(c.Get(HeaderCorrelationID))
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		c.Locals(correlationKey, correlationID)
		c.Set(HeaderCorrelationID, correlationID)
		return c.Next()
	}
}

// CorrelationID returns the request's correlation id, or "" when the
// tagger has not run.
func CorrelationID(c *fiber.Ctx) string {
	id, _ := c.Locals(correlationKey).(string)
	return id
}
