package kategori

import (
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"

	"github.com/gofiber/fiber/v2"
)

// GET /api/kategori
func ListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return httpx.OK(c, "", list)
	}
}

// GET /api/kategori/:id
func GetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		k, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", k)
	}
}

// POST /api/kategori (AdminGudang)
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
		k, err := svc.Create(c.UserContext(), p, body)
		if err != nil {
			return err
		}
		return httpx.Created(c, "Kategori berhasil ditambahkan", k)
	}
}

// PUT /api/kategori/:id (AdminGudang)
func UpdateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body UpdateInput
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}
		k, err := svc.Update(c.UserContext(), p, id, body)
		if err != nil {
			return err
		}
		return httpx.OK(c, "Kategori berhasil diperbarui", k)
	}
}

// DELETE /api/kategori/:id (AdminGudang)
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
		return httpx.OK(c, "Kategori berhasil dihapus", nil)
	}
}
