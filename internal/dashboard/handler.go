package dashboard

import (
	"strconv"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/httpx"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/ringkasan
func RingkasanHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Ringkasan(c.UserContext())
		if err != nil {
			return err
		}
		return httpx.OK(c, "", out)
	}
}

// GET /api/dashboard/stok-chart?period=daily&count=7
func StokChartHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var count int
		if raw := c.Query("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return apperror.Field("count", "harus berupa angka positif")
			}
			count = n
		}
		out, err := svc.StokChart(c.UserContext(), c.Query("period", PeriodDaily), count)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", out)
	}
}
