package handler

import (
	"encoding/json"
	"strings"

	"skill-passport/internal/delivery/http/dto"
	"skill-passport/internal/delivery/http/middleware"
	"skill-passport/internal/pkg/decode"
	"skill-passport/internal/pkg/response"
	"skill-passport/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileMergeUsecase
}

func NewProfileHandler(uc usecase.ProfileMergeUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/profile", h.Merge)
}

func (h *ProfileHandler) Merge(c fiber.Ctx) error {
	var body map[string]any
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid JSON body", nil, err)
	}

	var req dto.MergeProfileRequest
	if err := decode.Weak(body, &req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid profile payload", nil, err)
	}
	if strings.TrimSpace(req.UserID) == "" || req.FormInput == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "user_uid and form_input are required", nil, nil)
	}

	merged, err := h.uc.Merge(c.Context(), req.UserID, *req.FormInput)
	if err != nil {
		return mapUsecaseError(err, "Profile source not found")
	}

	return response.JSON(c, fiber.StatusOK, "Profile saved successfully", merged)
}
