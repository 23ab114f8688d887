package permintaan

import (
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"

	"github.com/gofiber/fiber/v2"
)

// GET /api/permintaan
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

// GET /api/permintaan/:id
func GetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		req, err := svc.Get(c.UserContext(), p, id)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", req)
	}
}

// POST /api/permintaan (PetugasOperasional)
func CreateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		if err := svc.AuthorizeCreate(p); err != nil {
			return err
		}
		var body CreateInput
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}
		req, err := svc.Create(c.UserContext(), p, body)
		if err != nil {
			return err
		}
		return httpx.Created(c, "Permintaan berhasil diajukan", req)
	}
}

// PATCH /api/permintaan/:id/approve (AdminGudang)
func ApproveHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		req, err := svc.Approve(c.UserContext(), p, id)
		if err != nil {
			return err
		}
		return httpx.OK(c, "Permintaan berhasil disetujui", req)
	}
}

// PATCH /api/permintaan/:id/reject (AdminGudang)
func RejectHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		req, err := svc.Reject(c.UserContext(), p, id)
		if err != nil {
			return err
		}
		return httpx.OK(c, "Permintaan ditolak", req)
	}
}
