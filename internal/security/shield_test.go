package security

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/micorpx/acquisitions/internal/config"
	"github.com/micorpx/acquisitions/internal/domain"
	"github.com/micorpx/acquisitions/internal/observability"
	apperrors "github.com/micorpx/acquisitions/pkg/util"
)

func newTestShield(t *testing.T, enabled bool) (*Shield, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiter(client, config.SecurityConfig{
		WindowSeconds: 60,
		GuestCeiling:  2,
		UserCeiling:   5,
		AdminCeiling:  10,
	})
	shield := NewShield(enabled, 200*time.Millisecond, ShieldDeps{
		Limiter: limiter,
		Logger:  zap.NewNop(),
		Metrics: observability.NewMetrics(),
	})
	return shield, mr
}

func TestEvaluateReasonPriority(t *testing.T) {
	shield, _ := newTestShield(t, true)
	ctx := context.Background()

	probe := Probe{
		Tier:      domain.TierGuest,
		CallerKey: "ip:10.0.0.9",
		Path:      "/api/../etc/passwd",
		UserAgent: "python-requests/2.31",
	}

	// Exhaust the guest ceiling so all three signals deny at once.
	for i := 0; i < 3; i++ {
		_, err := shield.Evaluate(ctx, probe)
		require.NoError(t, err)
	}

	decision, err := shield.Evaluate(ctx, probe)
	require.NoError(t, err)
	require.True(t, decision.Denied)
	assert.True(t, decision.Has(ReasonBot))
	assert.True(t, decision.Has(ReasonShield))
	assert.True(t, decision.Has(ReasonRateLimit))

	top, ok := decision.Top()
	require.True(t, ok)
	assert.Equal(t, ReasonBot, top)
}

// shieldApp wires the guard behind a minimal terminal error stage so
// typed denials render with their taxonomy status, as in the real app.
func shieldApp(shield *Shield) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}
		domainErr := apperrors.ToDomainError(err)
		return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
			"success": false,
			"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			},
		})
	})
	app.Use(shield.Guard())
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope
}

func TestGuardDeniesBots(t *testing.T) {
	shield, _ := newTestShield(t, true)
	app := shieldApp(shield)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("User-Agent", "badbot/1.0")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	errObj := envelope["error"].(map[string]any)
	assert.Equal(t, "FORBIDDEN_ERROR", errObj["code"])
	assert.Equal(t, "Automated requests are not allowed", errObj["message"])
}

func TestGuardRateLimitsGuests(t *testing.T) {
	shield, _ := newTestShield(t, true)
	app := shieldApp(shield)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("User-Agent", "curl/8.4.0")
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d within ceiling", i+1)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("User-Agent", "curl/8.4.0")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	errObj := envelope["error"].(map[string]any)
	assert.Equal(t, "Too many requests", errObj["message"])
}

func TestGuardFailsClosedOnBackendFault(t *testing.T) {
	shield, mr := newTestShield(t, true)
	mr.Close()
	app := shieldApp(shield)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("User-Agent", "curl/8.4.0")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	errObj := envelope["error"].(map[string]any)
	assert.Equal(t, "SERVICE_ERROR", errObj["code"])
}

func TestGuardBypassWhenDisabled(t *testing.T) {
	shield, mr := newTestShield(t, false)
	// Even a dead backend must not matter in bypass mode.
	mr.Close()
	app := shieldApp(shield)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("User-Agent", "badbot/1.0")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
