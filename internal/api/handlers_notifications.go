package api

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecart/internal/logger"
	"github.com/terraincognita07/cyclecart/internal/models"
)

var telegramChatIDRegex = regexp.MustCompile(`^(-?\d{1,20}|@[A-Za-z][A-Za-z0-9_]{4,31})$`)

func (handler *Handler) SubscribeNotifications(c *fiber.Ctx) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}

	input := subscriptionInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "api.error.invalid_subscription")
	}
	chatID := strings.TrimSpace(input.TelegramChatID)
	if !telegramChatIDRegex.MatchString(chatID) {
		return handler.apiError(c, fiber.StatusBadRequest, "api.error.invalid_subscription")
	}

	language := currentLanguage(c)
	if strings.TrimSpace(input.Language) != "" {
		language = handler.i18n.NormalizeLanguage(input.Language)
	}
	if language == "" {
		language = handler.i18n.DefaultLanguage()
	}

	subscription := &models.ReminderSubscription{
		UserID:         customerID,
		TelegramChatID: chatID,
		Language:       language,
	}
	if err := handler.subscriptions.UpsertReminderSubscription(c.UserContext(), subscription); err != nil {
		logger.Error("save reminder subscription failed", "user", customerID, "err", err)
		return handler.apiError(c, fiber.StatusInternalServerError, "api.error.save_failed")
	}

	logger.Info("reminder subscription saved", "user", customerID, "language", language)
	return c.JSON(fiber.Map{"ok": true, "language": language})
}

func (handler *Handler) UnsubscribeNotifications(c *fiber.Ctx) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}

	if err := handler.subscriptions.DeleteReminderSubscription(c.UserContext(), customerID); err != nil {
		logger.Error("delete reminder subscription failed", "user", customerID, "err", err)
		return handler.apiError(c, fiber.StatusInternalServerError, "api.error.save_failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
