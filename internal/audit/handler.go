package audit

import (
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"

	"github.com/gofiber/fiber/v2"
)

// GET /api/logs
func ListLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		logs, err := svc.List(c.UserContext(), p)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", logs)
	}
}

// GET /api/logs/user/:id
func ListUserLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := identity.FromContext(c)
		if err != nil {
			return err
		}
		userID, err := httpx.ParamID(c, "id")
		if err != nil {
			return err
		}
		logs, err := svc.ListForUser(c.UserContext(), p, userID)
		if err != nil {
			return err
		}
		return httpx.OK(c, "", logs)
	}
}
