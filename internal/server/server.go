// Package server menyusun aplikasi fiber dan tabel route API gudang.
package server

import (
	"strings"

	"gudang-backend/internal/audit"
	"gudang-backend/internal/auth"
	"gudang-backend/internal/barang"
	"gudang-backend/internal/config"
	"gudang-backend/internal/dashboard"
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/kategori"
	"gudang-backend/internal/laporan"
	"gudang-backend/internal/models"
	"gudang-backend/internal/notifikasi"
	"gudang-backend/internal/permintaan"
	"gudang-backend/internal/transaksi"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const msgAdminOnly = "Hanya Admin Gudang yang dapat melakukan aksi ini"

// Services adalah seluruh service yang dipasang ke route.
type Services struct {
	Auth       *auth.Service
	Audit      *audit.Service
	Notifikasi *notifikasi.Service
	Kategori   *kategori.Service
	Barang     *barang.Service
	Permintaan *permintaan.Service
	Transaksi  *transaksi.Service
	Laporan    *laporan.Service
	Dashboard  *dashboard.Service
}

func New(cfg *config.Config, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.ServiceName,
		ErrorHandler: httpx.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     normalizeOrigins(cfg.CORSOrigins),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return httpx.OK(c, "Gudang API is running", nil)
	})

	cookies := auth.CookieSettings{
		Name:   cfg.CookieName,
		Secure: cfg.SecureCookies(),
		TTL:    cfg.TokenTTL(),
	}

	api := app.Group("/api")
	api.Use(auth.CookieToHeader(cfg.CookieName))

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(svc.Auth, cookies))
	api.Post("/auth/login", auth.LoginHandler(svc.Auth, cookies))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(svc.Auth))

	adminOnly := auth.RequireRole(msgAdminOnly, models.RoleAdminGudang)

	protected.Get("/auth/me", auth.MeHandler(svc.Auth))
	protected.Get("/auth/profile", auth.MeHandler(svc.Auth))
	protected.Post("/auth/logout", auth.LogoutHandler(svc.Auth, cookies))

	// Kategori
	protected.Get("/kategori", kategori.ListHandler(svc.Kategori))
	protected.Get("/kategori/:id", kategori.GetHandler(svc.Kategori))
	protected.Post("/kategori", adminOnly, kategori.CreateHandler(svc.Kategori))
	protected.Put("/kategori/:id", adminOnly, kategori.UpdateHandler(svc.Kategori))
	protected.Delete("/kategori/:id", adminOnly, kategori.DeleteHandler(svc.Kategori))

	// Barang
	protected.Get("/barang", barang.ListHandler(svc.Barang))
	protected.Get("/barang/:id", barang.GetHandler(svc.Barang))
	protected.Post("/barang", adminOnly, barang.CreateHandler(svc.Barang))
	protected.Post("/barang/import", adminOnly, barang.ImportHandler(svc.Barang))
	protected.Put("/barang/:id", adminOnly, barang.UpdateHandler(svc.Barang))
	protected.Delete("/barang/:id", adminOnly, barang.DeleteHandler(svc.Barang))
	protected.Patch("/barang/:id/stok", adminOnly, barang.SetStokHandler(svc.Barang))
	protected.Patch("/barang/:id/cek-minimum", adminOnly, barang.CekMinimumHandler(svc.Barang))

	// Permintaan: aturan role ada di service karena pesannya berbeda per aksi.
	protected.Get("/permintaan", permintaan.ListHandler(svc.Permintaan))
	protected.Get("/permintaan/:id", permintaan.GetHandler(svc.Permintaan))
	protected.Post("/permintaan", permintaan.CreateHandler(svc.Permintaan))
	protected.Patch("/permintaan/:id/approve", permintaan.ApproveHandler(svc.Permintaan))
	protected.Patch("/permintaan/:id/reject", permintaan.RejectHandler(svc.Permintaan))

	// Transaksi
	protected.Get("/transaksi-masuk", transaksi.ListHandler(svc.Transaksi, models.JenisMasuk))
	protected.Post("/transaksi-masuk", transaksi.CreateMasukHandler(svc.Transaksi))
	protected.Get("/transaksi-keluar", transaksi.ListHandler(svc.Transaksi, models.JenisKeluar))
	protected.Post("/transaksi-keluar", transaksi.CreateKeluarHandler(svc.Transaksi))

	// Laporan
	protected.Get("/laporan", laporan.ListHandler(svc.Laporan))
	protected.Post("/laporan", laporan.CreateHandler(svc.Laporan))
	protected.Get("/laporan/:id", laporan.GetHandler(svc.Laporan))
	protected.Get("/laporan/:id/pdf", laporan.DownloadHandler(svc.Laporan, laporan.FormatPDF))
	protected.Get("/laporan/:id/excel", laporan.DownloadHandler(svc.Laporan, laporan.FormatExcel))

	// Dashboard
	protected.Get("/dashboard/ringkasan", dashboard.RingkasanHandler(svc.Dashboard))
	protected.Get("/dashboard/stok-chart", dashboard.StokChartHandler(svc.Dashboard))

	// Log aktivitas
	protected.Get("/logs", audit.ListLogsHandler(svc.Audit))
	protected.Get("/logs/user/:id", audit.ListUserLogsHandler(svc.Audit))

	// Notifikasi
	protected.Get("/notifikasi", notifikasi.ListHandler(svc.Notifikasi))
	protected.Post("/notifikasi", notifikasi.CreateHandler(svc.Notifikasi))
	protected.Patch("/notifikasi/:id/read", notifikasi.MarkReadHandler(svc.Notifikasi))
	protected.Delete("/notifikasi/:id", notifikasi.DeleteHandler(svc.Notifikasi))

	return app
}

// normalizeOrigins menerima daftar origin dipisah koma dengan spasi bebas.
func normalizeOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
