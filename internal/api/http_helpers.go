package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecart/internal/logger"
	"github.com/terraincognita07/cyclecart/internal/services"
)

func (handler *Handler) apiError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{"error": handler.i18n.Translate(currentLanguage(c), key)})
}

func (handler *Handler) cycleError(c *fiber.Ctx, customerID string, err error) error {
	if errors.Is(err, services.ErrInvalidInput) {
		return handler.apiError(c, fiber.StatusBadRequest, "api.error.invalid_date")
	}

	var persistenceErr *services.PersistenceError
	if errors.As(err, &persistenceErr) && persistenceErr.Op == "load" {
		logger.Error("load cycle data failed", "user", customerID, "err", err)
		return handler.apiError(c, fiber.StatusInternalServerError, "api.error.load_failed")
	}

	logger.Error("save cycle data failed", "user", customerID, "err", err)
	return handler.apiError(c, fiber.StatusInternalServerError, "api.error.save_failed")
}
