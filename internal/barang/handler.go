package barang

import (
	"fmt"
	"strings"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"

	"github.com/gofiber/fiber/v2"
)

// GET /api/barang?q=&id_kategori=
func ListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kategoriID, err := httpx.QueryID(c, "id_kategori")
		if err != nil {
			return err
		}

		list, err := svc.List(c.UserContext(), Filter{
			Q:          strings.TrimSpace(c.Query("q")),
			KategoriID: kategoriID,
		})
		if err != nil {
			return err
		}
		return httpx.OK(c, "", list)
	}
}

// GET /api/barang/:id
func GetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		b, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", b)
	}
}

// POST /api/barang (AdminGudang)
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
		b, err := svc.Create(c.UserContext(), p, body)
		if err != nil {
			return err
		}
		return httpx.Created(c, "Barang berhasil ditambahkan", b)
	}
}

// PUT /api/barang/:id (AdminGudang)
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
		b, err := svc.Update(c.UserContext(), p, id, body)
		if err != nil {
			return err
		}
		return httpx.OK(c, "Barang berhasil diperbarui", b)
	}
}

// DELETE /api/barang/:id (AdminGudang)
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
		return httpx.OK(c, "Barang berhasil dihapus", nil)
	}
}

// PATCH /api/barang/:id/stok (AdminGudang)
func SetStokHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body SetStokInput
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}
		b, err := svc.SetStok(c.UserContext(), p, id, *body.Stok)
		if err != nil {
			return err
		}
		return httpx.OK(c, "Stok berhasil diperbarui", b)
	}
}

// PATCH /api/barang/:id/cek-minimum (AdminGudang)
func CekMinimumHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		st, err := svc.CekMinimum(c.UserContext(), id)
		if err != nil {
			return err
		}
		msg := "Stok barang aman"
		if st.DiBawahMinimum {
			msg = "Stok barang di bawah minimum, notifikasi dikirim ke Admin Gudang"
		}
		return httpx.OK(c, msg, st)
	}
}

// POST /api/barang/import (AdminGudang), multipart field "file" berisi .xlsx
func ImportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return apperror.Field("file", "wajib diisi")
		}
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".xlsx") {
			return apperror.Field("file", "hanya file .xlsx yang didukung")
		}
		file, err := fh.Open()
		if err != nil {
			return apperror.Internal("Gagal membuka file", err)
		}
		defer file.Close()

		res, err := svc.Import(c.UserContext(), p, file)
		if err != nil {
			return err
		}
		return httpx.OK(c, fmt.Sprintf("%d barang diimpor, %d dilewati", res.Created, res.Skipped), res)
	}
}
