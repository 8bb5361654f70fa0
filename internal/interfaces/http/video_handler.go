package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/application/usecase"
	"github.com/overdrive-app/overdrive-api/internal/domain"
)

// VideoHandler endpoints de análisis de fotogramas (caras y emociones).
type VideoHandler struct {
	uc *usecase.VideoUseCase
}

// NewVideoHandler construye el handler inyectando el caso de uso.
func NewVideoHandler(uc *usecase.VideoUseCase) *VideoHandler {
	return &VideoHandler{uc: uc}
}

// Emotion godoc
// @Summary      Emoción dominante de la primera cara de la imagen
// @Tags         video
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImageRequest  true  "imagen como data-URI base64"
// @Success      200   {object}  dto.EmotionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/video/emotion [post]
func (h *VideoHandler) Emotion(c *fiber.Ctx) error {
	var in dto.ImageRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	out, err := h.uc.DetectEmotion(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Faces godoc
// @Summary      Todas las caras detectadas en la imagen
// @Tags         video
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImageRequest  true  "imagen como data-URI base64"
// @Success      200   {object}  dto.FacesResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/video/faces [post]
func (h *VideoHandler) Faces(c *fiber.Ctx) error {
	var in dto.ImageRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	out, err := h.uc.DetectFaces(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
