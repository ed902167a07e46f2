package v1

import (
	"skill-passport/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Profile *handler.ProfileHandler
	Match   *handler.MatchHandler
	Stats   *handler.StatsHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	RegisterProfile(r, h.Profile, h.Stats)
	RegisterMatches(r, h.Match)
}
