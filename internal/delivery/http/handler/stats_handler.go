package handler

import (
	"skill-passport/internal/pkg/response"
	"skill-passport/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StatsHandler struct {
	uc usecase.StatsUsecase
}

func NewStatsHandler(uc usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/stats", h.GetStats)
	r.Get("/skill-stats", h.GetStats)
}

func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	res, err := h.uc.GetStats(c.Context(), activeUserID(c))
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}
	return response.JSON(c, fiber.StatusOK, response.MessageOK, res)
}
