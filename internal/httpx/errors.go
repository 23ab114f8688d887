package httpx

import (
	"errors"
	"log"

	"gudang-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

const internalMessage = "Terjadi kesalahan pada server"

// ErrorHandler dipasang sebagai fiber.Config.ErrorHandler. Pesan error internal
// tidak pernah dikirim ke klien, hanya ditulis ke log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		msg := appErr.Message
		if appErr.Kind == apperror.KindInternal {
			log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
			if msg == "" {
				msg = internalMessage
			}
		}
		return c.Status(appErr.Kind.HTTPStatus()).JSON(Envelope{
			Success: false,
			Message: msg,
			Errors:  appErr.Fields,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(Envelope{Success: false, Message: fiberErr.Message})
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
		Success: false,
		Message: internalMessage,
	})
}
