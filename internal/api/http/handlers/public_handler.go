package handlers

import "github.com/gofiber/fiber/v2"

// PublicHandler serves the unauthenticated sanity endpoints.
type PublicHandler struct{}

// NewPublicHandler returns a new handler instance.
func NewPublicHandler() *PublicHandler {
	return &PublicHandler{}
}

// Hello GET /hello.
func (h *PublicHandler) Hello(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Hello, world!"})
}

// Public GET /public.
func (h *PublicHandler) Public(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "This is a public endpoint"})
}
