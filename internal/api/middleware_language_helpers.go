package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	c.Locals(contextLanguageKey, handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)))
	return c.Next()
}
