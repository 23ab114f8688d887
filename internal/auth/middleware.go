package auth

import (
	"strings"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/identity"
	"gudang-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CookieToHeader memindahkan token dari cookie ke header Authorization bila
// header belum membawa bearer token, supaya JWTMiddleware cukup membaca header.
func CookieToHeader(cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if bearerToken(c) == "" {
			if token := c.Cookies(cookieName); token != "" {
				c.Request().Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
			}
		}
		return c.Next()
	}
}

func JWTMiddleware(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return apperror.Unauthenticated("Token tidak ditemukan")
		}

		p, err := svc.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		identity.Store(c, p)
		return c.Next()
	}
}

// RequireRole menolak request dengan 403 dan pesan yang diberikan bila role
// principal tidak ada di daftar.
func RequireRole(message string, allowed ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		for _, r := range allowed {
			if p.Role == r {
				return c.Next()
			}
		}
		return apperror.Forbidden(message)
	}
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
