// Package identity menyimpan principal hasil autentikasi di fiber Locals.
package identity

import (
	"time"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const localsKey = "principal"

type Principal struct {
	UserID    uint
	Username  string
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}

func Store(c *fiber.Ctx, p Principal) {
	c.Locals(localsKey, p)
}

// FromContext mengembalikan 401 bila middleware tidak memasang principal.
func FromContext(c *fiber.Ctx) (Principal, error) {
	p, ok := c.Locals(localsKey).(Principal)
	if !ok || p.UserID == 0 {
		return Principal{}, apperror.Unauthenticated("Tidak ada pengguna yang sedang login")
	}
	return p, nil
}
