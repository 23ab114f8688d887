package laporan

import (
	"fmt"

	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"

	"github.com/gofiber/fiber/v2"
)

// GET /api/laporan
func ListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext())
		if err != nil {
			return err
		}
		return httpx.OK(c, "", list)
	}
}

// GET /api/laporan/:id
func GetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		d, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", d)
	}
}

// POST /api/laporan (AdminGudang, KepalaDivisi)
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
		l, err := svc.Create(c.UserContext(), p, body)
		if err != nil {
			return err
		}
		return httpx.Created(c, "Laporan berhasil dibuat", l)
	}
}

// GET /api/laporan/:id/pdf
// GET /api/laporan/:id/excel
func DownloadHandler(svc *Service, format Format) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		file, err := svc.Render(c.UserContext(), id, format)
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, file.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", file.Name))
		return c.Send(file.Body)
	}
}
