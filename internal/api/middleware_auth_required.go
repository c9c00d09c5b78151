package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	customerID, err := handler.authenticateRequest(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusUnauthorized, "api.error.unauthorized")
	}

	c.Locals(contextCustomerKey, customerID)
	return c.Next()
}
