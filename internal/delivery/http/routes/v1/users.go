package v1

import (
	"skill-passport/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterProfile(r fiber.Router, profileHandler *handler.ProfileHandler, statsHandler *handler.StatsHandler) {
	if r == nil {
		return
	}
	if profileHandler != nil {
		profileHandler.RegisterRoutes(r)
	}
	if statsHandler != nil {
		statsHandler.RegisterRoutes(r)
	}
}
