package notifikasi

import (
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"

	"github.com/gofiber/fiber/v2"
)

// GET /api/notifikasi
func ListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		list, err := svc.List(c.UserContext(), p)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", list)
	}
}

// POST /api/notifikasi
func CreateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		var body CreateInput
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}
		n, err := svc.Create(c.UserContext(), p, body)
		if err != nil {
			return err
		}
		return httpx.Created(c, "Notifikasi berhasil dibuat", n)
	}
}

// PATCH /api/notifikasi/:id/read
func MarkReadHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		n, err := svc.MarkRead(c.UserContext(), p, id)
		if err != nil {
			return err
		}
		return httpx.OK(c, "Notifikasi ditandai sudah dibaca", n)
	}
}

// DELETE /api/notifikasi/:id
func DeleteHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), p, id); err != nil {
			return err
		}
		return httpx.OK(c, "Notifikasi berhasil dihapus", nil)
	}
}
