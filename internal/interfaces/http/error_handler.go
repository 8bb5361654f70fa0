package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/domain"
)

// ErrorHandler mapea errores a respuestas HTTP en un único punto.
// *domain.APIError lleva su status en la variante; todo lo demás es un
// 500 con el detalle solo en el log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status()).JSON(dto.ErrorResponse{
			Code:    apiErr.Code(),
			Message: apiErr.Error(),
		})
	}

	// Errores propios de fiber (404 de ruta, body demasiado grande...)
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
			Code:    "ERROR",
			Message: fiberErr.Message,
		})
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.OriginalURL()).Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "internal server error",
	})
}
