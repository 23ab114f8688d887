// Package httpx berisi perekat HTTP bersama: envelope respons, error handler
// fiber, binding + validasi body, dan parsing parameter path.
package httpx

import "github.com/gofiber/fiber/v2"

// Envelope adalah bentuk semua respons JSON API.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func OK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}
