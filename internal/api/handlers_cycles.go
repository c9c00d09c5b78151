package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecart/internal/logger"
	"github.com/terraincognita07/cyclecart/internal/services"
)

func (handler *Handler) GetCycles(c *fiber.Ctx) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}

	timeline, err := handler.cycles.Load(c.UserContext(), customerID)
	if err != nil {
		return handler.cycleError(c, customerID, err)
	}
	return c.JSON(handler.cycles.Snapshot(timeline, handler.now()))
}

func (handler *Handler) LogCycleStart(c *fiber.Ctx) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}

	date, err := handler.parseBodyDate(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "api.error.invalid_date")
	}

	timeline, err := handler.cycles.Load(c.UserContext(), customerID)
	if err != nil {
		return handler.cycleError(c, customerID, err)
	}
	updated, _, err := handler.cycles.LogNewStartAndSave(c.UserContext(), timeline, date)
	if err != nil {
		return handler.cycleError(c, customerID, err)
	}

	logger.Info("cycle start logged", "user", customerID, "date", services.FormatISODate(date))
	return c.Status(fiber.StatusCreated).JSON(handler.cycles.Snapshot(updated, handler.now()))
}

func (handler *Handler) EditCycleStart(c *fiber.Ctx) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}

	oldDate, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "api.error.invalid_date")
	}
	newDate, err := handler.parseBodyDate(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "api.error.invalid_date")
	}

	timeline, err := handler.cycles.Load(c.UserContext(), customerID)
	if err != nil {
		return handler.cycleError(c, customerID, err)
	}
	updated, _, err := handler.cycles.EditStartAndSave(c.UserContext(), timeline, oldDate, newDate)
	if err != nil {
		return handler.cycleError(c, customerID, err)
	}

	logger.Info("cycle start edited", "user", customerID, "from", services.FormatISODate(oldDate), "to", services.FormatISODate(newDate))
	return c.JSON(handler.cycles.Snapshot(updated, handler.now()))
}

func (handler *Handler) DeleteCycleStart(c *fiber.Ctx) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}

	date, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "api.error.invalid_date")
	}

	timeline, err := handler.cycles.Load(c.UserContext(), customerID)
	if err != nil {
		return handler.cycleError(c, customerID, err)
	}
	updated, _, err := handler.cycles.DeleteStartAndSave(c.UserContext(), timeline, date)
	if err != nil {
		return handler.cycleError(c, customerID, err)
	}

	logger.Info("cycle start deleted", "user", customerID, "date", services.FormatISODate(date))
	return c.JSON(handler.cycles.Snapshot(updated, handler.now()))
}

func (handler *Handler) GetReminderStatus(c *fiber.Ctx) error {
	customerID, ok := currentCustomer(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}

	today, err := parseTodayQuery(strings.TrimSpace(c.Query("today")), handler.now(), handler.location)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "api.error.invalid_date")
	}

	timeline, err := handler.cycles.Load(c.UserContext(), customerID)
	if err != nil {
		return handler.cycleError(c, customerID, err)
	}

	status := reminderStatus{}
	if prediction := services.PredictTimeline(timeline.Intervals); prediction != nil {
		status.Due = services.IsReminderDueToday(prediction.ReminderDate, today)
		status.NextPeriodDate = services.FormatISODate(prediction.NextStartDate)
		status.NotificationDate = services.FormatISODate(prediction.ReminderDate)
	}
	return c.JSON(status)
}

func (handler *Handler) parseBodyDate(c *fiber.Ctx) (time.Time, error) {
	input := cycleDateInput{}
	if err := c.BodyParser(&input); err != nil {
		return time.Time{}, err
	}
	return parseDayParam(input.Date, handler.location)
}
