package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// SessionCookies writes and clears the HTTP-only session cookie. The
// Secure flag is dropped only in local development so browsers accept
// the cookie over plain HTTP.
type SessionCookies struct {
	ttl    time.Duration
	secure bool
}

// NewSessionCookies builds the cookie helper. ttl should match the token
// expiry horizon.
func NewSessionCookies(ttl time.Duration, secure bool) *SessionCookies {
	return &SessionCookies{ttl: ttl, secure: secure}
}

// Set attaches the session cookie holding the signed token.
func (s *SessionCookies) Set(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		Expires:  time.Now().Add(s.ttl),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Clear overwrites the cookie with an empty, already-expired value so the
// browser discards it regardless of prior flags.
func (s *SessionCookies) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
