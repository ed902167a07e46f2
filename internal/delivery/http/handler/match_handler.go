package handler

import (
	"skill-passport/internal/delivery/http/dto"
	"skill-passport/internal/pkg/response"
	"skill-passport/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matches", h.GetMatches)
	r.Get("/job-match/:job_id", h.GetJobMatch)
}

func (h *MatchHandler) GetMatches(c fiber.Ctx) error {
	res, err := h.uc.GetMatches(c.Context(), activeUserID(c))
	if err != nil {
		return mapUsecaseError(err, "Not found")
	}

	out := dto.MatchesResponse{
		User:    res.User,
		Matches: make([]dto.MatchResultResponse, 0, len(res.Results)),
	}
	for _, r := range res.Results {
		out.Matches = append(out.Matches, dto.NewMatchResultResponse(r, res.HardSkills))
	}

	return response.JSON(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) GetJobMatch(c fiber.Ctx) error {
	res, err := h.uc.GetJobMatch(c.Context(), activeUserID(c), c.Params("job_id"))
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}

	return response.JSON(c, fiber.StatusOK, response.MessageOK, dto.NewJobMatchResponse(res))
}
