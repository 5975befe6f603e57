package security

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/micorpx/acquisitions/internal/auth"
	"github.com/micorpx/acquisitions/internal/domain"
	"github.com/micorpx/acquisitions/internal/events"
	"github.com/micorpx/acquisitions/internal/observability"
	apperrors "github.com/micorpx/acquisitions/pkg/util"
)

// Client-facing messages per denial reason.
const (
	msgBot       = "Automated requests are not allowed"
	msgShield    = "Request blocked by security policy"
	msgRateLimit = "Too many requests"
	msgBackend   = "Something went wrong with security checks"
)

// Probe is the request snapshot the classifier evaluates.
type Probe struct {
	Tier      domain.RateTier
	CallerKey string
	IP        string
	Path      string
	Query     string
	Method    string
	UserAgent string
}

// Shield classifies each request with three independent signals: the
// static policy, the bot detector, and the role-tiered rate limiter.
type Shield struct {
	policy     *ShieldPolicy
	bots       *BotDetector
	limiter    *RateLimiter
	timeout    time.Duration
	enabled    bool
	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
}

// ShieldDeps bundles collaborator handles for NewShield.
type ShieldDeps struct {
	Limiter    *RateLimiter
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
}

// NewShield builds the abuse shield. When enabled is false the guard
// passes every request through, which keeps test runs deterministic and
// independent of redis.
func NewShield(enabled bool, timeout time.Duration, deps ShieldDeps) *Shield {
	return &Shield{
		policy:     NewShieldPolicy(),
		bots:       NewBotDetector(),
		limiter:    deps.Limiter,
		timeout:    timeout,
		enabled:    enabled,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		dispatcher: deps.Dispatcher,
	}
}

// Evaluate runs all three checks and merges their verdicts. Only the
// limiter can fail; its error propagates so the caller fails closed.
func (s *Shield) Evaluate(ctx context.Context, probe Probe) (Decision, error) {
	decision := s.bots.Check(probe.UserAgent)
	decision = decision.merge(s.policy.Check(probe.Path, probe.Query))

	limited, err := s.limiter.Check(ctx, probe.Tier, probe.CallerKey)
	if err != nil {
		return Decision{}, err
	}
	return decision.merge(limited), nil
}

// Guard is the request middleware. It resolves the caller's rate tier
// from the identity attached earlier in the chain (guest when anonymous),
// evaluates the classifier under a timeout, and converts any denial or
// backend fault into the error taxonomy.
func (s *Shield) Guard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.enabled {
			return c.Next()
		}

		identity, _ := auth.IdentityFromContext(c)
		tier := domain.TierFor(identity)

		probe := Probe{
			Tier:      tier,
			CallerKey: callerKey(identity, c.IP()),
			IP:        c.IP(),
			Path:      c.Path(),
			Query:     string(c.Request().URI().QueryString()),
			Method:    c.Method(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), s.timeout)
		defer cancel()

		decision, err := s.Evaluate(ctx, probe)
		if err != nil {
			// Backend unavailability is never treated as permission.
			s.logger.Error("abuse classification backend failed",
				zap.Error(err),
				zap.String("path", probe.Path),
				zap.String("ip", probe.IP),
			)
			return apperrors.NewServiceError(msgBackend, err)
		}

		if !decision.Denied {
			return c.Next()
		}

		reason, _ := decision.Top()
		s.recordDenial(c, probe, reason)

		switch reason {
		case ReasonBot:
			return apperrors.NewForbidden(msgBot)
		case ReasonShield:
			return apperrors.NewForbidden(msgShield)
		default:
			return apperrors.NewForbidden(msgRateLimit)
		}
	}
}

func (s *Shield) recordDenial(c *fiber.Ctx, probe Probe, reason Reason) {
	s.logger.Warn("request denied by abuse shield",
		zap.String("reason", string(reason)),
		zap.String("tier", string(probe.Tier)),
		zap.String("ip", probe.IP),
		zap.String("path", probe.Path),
		zap.String("method", probe.Method),
		zap.String("user_agent", probe.UserAgent),
	)
	s.metrics.RecordShieldDenial(string(reason), string(probe.Tier))

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(c.UserContext(), events.Event{
			ID:            uuid.NewString(),
			Type:          events.EventSecurityDenied,
			CorrelationID: observability.CorrelationID(c),
			Timestamp:     time.Now(),
			Payload: events.SecurityDeniedPayload{
				Reason: string(reason),
				Tier:   string(probe.Tier),
				IP:     probe.IP,
				Path:   probe.Path,
				Method: probe.Method,
			},
		})
	}
}

// callerKey scopes rate counters per caller: account id for
// authenticated tiers, remote IP for guests.
func callerKey(identity *domain.Identity, ip string) string {
	if identity != nil {
		return "id:" + strconv.FormatInt(identity.ID, 10)
	}
	return "ip:" + ip
}
