package transaksi

import (
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/transaksi-masuk
// GET /api/transaksi-keluar
func ListHandler(svc *Service, jenis models.JenisTransaksi) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext(), jenis)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", list)
	}
}

// POST /api/transaksi-keluar (AdminGudang)
func CreateKeluarHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		if err := svc.AuthorizeKeluar(p); err != nil {
			return err
		}
		var body KeluarInput
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}
		trx, err := svc.CreateKeluar(c.UserContext(), p, body)
		if err != nil {
			return err
		}
		return httpx.Created(c, "Transaksi keluar berhasil dicatat", trx)
	}
}

// POST /api/transaksi-masuk (AdminGudang)
func CreateMasukHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		if err := svc.AuthorizeMasuk(p); err != nil {
			return err
		}
		var body MasukInput
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}
		trx, err := svc.CreateMasuk(c.UserContext(), p, body)
		if err != nil {
			return err
		}
		return httpx.Created(c, "Transaksi masuk berhasil dicatat", trx)
	}
}
