package auth

import (
	"time"

	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"

	"github.com/gofiber/fiber/v2"
)

// CookieSettings diambil dari konfigurasi saat startup.
type CookieSettings struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/auth/register
func RegisterHandler(svc *Service, cs CookieSettings) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterInput
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}

		res, err := svc.Register(c.UserContext(), body)
		if err != nil {
			return err
		}

		setTokenCookie(c, cs, res.AccessToken)
		return httpx.Created(c, "Registrasi berhasil", res)
	}
}

// POST /api/auth/login
func LoginHandler(svc *Service, cs CookieSettings) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}

		res, err := svc.Login(c.UserContext(), body.Username, body.Password)
		if err != nil {
			return err
		}

		setTokenCookie(c, cs, res.AccessToken)
		return httpx.OK(c, "Login berhasil", res)
	}
}

// GET /api/auth/me
// GET /api/auth/profile
func MeHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		user, err := svc.Me(c.UserContext(), p)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", user)
	}
}

// POST /api/auth/logout
func LogoutHandler(svc *Service, cs CookieSettings) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// cookie dihapus apa pun hasil pencabutan token
		clearTokenCookie(c, cs)

		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		if err := svc.Logout(c.UserContext(), p); err != nil {
			return err
		}
		return httpx.OK(c, "Logout berhasil", nil)
	}
}

func setTokenCookie(c *fiber.Ctx, cs CookieSettings, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cs.Name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(cs.TTL),
		MaxAge:   int(cs.TTL.Seconds()),
		HTTPOnly: true,
		Secure:   cs.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearTokenCookie(c *fiber.Ctx, cs CookieSettings) {
	c.Cookie(&fiber.Cookie{
		Name:     cs.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cs.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
