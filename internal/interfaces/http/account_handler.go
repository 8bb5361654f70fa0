package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/application/usecase"
	"github.com/overdrive-app/overdrive-api/internal/domain"
)

// AccountHandler maneja las peticiones HTTP para el recurso Account.
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler inyectando el caso de uso.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// List godoc
// @Summary      Listar todas las cuentas (solo uber-admin)
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  dto.AccountListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return domain.NewValidationError("invalid query parameters")
	}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetMine godoc
// @Summary      Cuenta de la sesión actual
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  dto.AccountResponse
// @Success      204  "la sesión no tiene cuenta"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/accounts/me [get]
func (h *AccountHandler) GetMine(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil || sess.Account == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(dto.ToAccountResponse(sess.Account))
}

// Create godoc
// @Summary      Crear cuenta (solo uber-admin)
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.AccountResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cuenta (solo uber-admin, parche parcial)
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        accountId  path  string  true  "ID de la cuenta"
// @Param        body       body  dto.AccountUpdateRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{accountId} [put]
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	id := c.Params("accountId")
	var in dto.AccountUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cuenta (solo uber-admin)
// @Tags         accounts
// @Param        accountId  path  string  true  "ID de la cuenta"
// @Success      204  "eliminada"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{accountId} [delete]
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("accountId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LinkUser godoc
// @Summary      Vincular usuario a cuenta (solo uber-admin)
// @Tags         accounts
// @Produce      json
// @Param        accountId  path  string  true  "ID de la cuenta"
// @Param        userId     path  string  true  "ID del usuario"
// @Success      201  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{accountId}/user/{userId} [put]
func (h *AccountHandler) LinkUser(c *fiber.Ctx) error {
	out, err := h.uc.LinkUser(c.Params("accountId"), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"account": out})
}

// UnlinkUser godoc
// @Summary      Desvincular usuario de cuenta (solo uber-admin, idempotente)
// @Tags         accounts
// @Param        accountId  path  string  true  "ID de la cuenta"
// @Param        userId     path  string  true  "ID del usuario"
// @Success      204  "desvinculado (o ya no pertenecía)"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{accountId}/user/{userId} [delete]
func (h *AccountHandler) UnlinkUser(c *fiber.Ctx) error {
	if err := h.uc.UnlinkUser(c.Params("accountId"), c.Params("userId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
