package api

import "github.com/gofiber/fiber/v2"

const (
	sessionCookieName  = "cyclecart_session"
	sessionPurpose     = "session"
	contextCustomerKey = "current_customer"
	contextLanguageKey = "current_language"
)

func currentCustomer(c *fiber.Ctx) (string, bool) {
	customerID, ok := c.Locals(contextCustomerKey).(string)
	return customerID, ok && customerID != ""
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}
