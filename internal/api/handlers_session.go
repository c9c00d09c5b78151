package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	sessionAttemptsLimit  = 10
	sessionAttemptsWindow = 15 * time.Minute
)

func (handler *Handler) CreateSession(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c)
	if handler.sessionLimiter.blocked(limiterKey, now) {
		return handler.apiError(c, fiber.StatusTooManyRequests, "api.error.too_many_attempts")
	}

	tokenValue, ok := bearerToken(c)
	if !ok {
		handler.sessionLimiter.recordFailure(limiterKey, now)
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}
	claims, err := handler.parseCustomerToken(tokenValue)
	if err != nil {
		handler.sessionLimiter.recordFailure(limiterKey, now)
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}

	sealed, err := handler.cookies.seal(sessionPurpose, []byte(tokenValue))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create session"})
	}
	handler.sessionLimiter.reset(limiterKey)

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    sealed,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  sessionExpiry(claims, now.Add(24*time.Hour)),
	})
	return c.JSON(fiber.Map{"ok": true, "customer": claims.Subject})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearSessionCookie(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
