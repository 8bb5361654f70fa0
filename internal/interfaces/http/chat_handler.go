package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/application/usecase"
	"github.com/overdrive-app/overdrive-api/internal/domain"
)

// ChatHandler proxy HTTP hacia el backend de chat (Claude).
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler inyectando el caso de uso.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Ask godoc
// @Summary      Preguntar al agente
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AskRequest  true  "query, history, systemContext, webSearch"
// @Success      200   {object}  dto.AskResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /agent/ask [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var in dto.AskRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	out, err := h.uc.Ask(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CacheStats godoc
// @Summary      Estadísticas del caché de respuestas
// @Tags         chat
// @Produce      json
// @Success      200  {object}  dto.CacheStatsResponse
// @Router       /agent/cache/stats [get]
func (h *ChatHandler) CacheStats(c *fiber.Ctx) error {
	return c.JSON(h.uc.CacheStats())
}

// ClearCache godoc
// @Summary      Vaciar el caché de respuestas
// @Tags         chat
// @Success      204  "vaciado"
// @Router       /agent/cache [delete]
func (h *ChatHandler) ClearCache(c *fiber.Ctx) error {
	h.uc.ClearCache()
	return c.SendStatus(fiber.StatusNoContent)
}
