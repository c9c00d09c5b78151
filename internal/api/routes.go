package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api", handler.LanguageMiddleware)

	session := api.Group("/session")
	session.Post("", handler.CreateSession)
	session.Post("/logout", handler.Logout)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.GetCycles)
	cycles.Post("", handler.LogCycleStart)
	cycles.Get("/reminder", handler.GetReminderStatus)
	cycles.Put("/:date", handler.EditCycleStart)
	cycles.Delete("/:date", handler.DeleteCycleStart)

	notifications := api.Group("/notifications", handler.AuthRequired)
	notifications.Post("/subscribe", handler.SubscribeNotifications)
	notifications.Delete("/subscribe", handler.UnsubscribeNotifications)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
