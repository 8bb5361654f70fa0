package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/application/usecase"
	"github.com/overdrive-app/overdrive-api/internal/domain"
)

// UserHandler maneja las peticiones HTTP para el recurso User.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler inyectando el caso de uso.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// ListAccountUsers godoc
// @Summary      Usuarios de la cuenta de la sesión (admin)
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) ListAccountUsers(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil || sess.Account == nil {
		// Sesión sin cuenta: un override de uber-admin hacia una cuenta
		// inexistente cae aquí.
		return domain.NewNotFoundError("Account", c.Get(HeaderAccountID))
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return domain.NewValidationError("invalid query parameters")
	}
	page.DefaultPage()
	out, err := h.uc.ListByAccount(sess.Account.ID, page.Limit, page.Offset)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Todos los usuarios del sistema (solo uber-admin)
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users/search [post]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return domain.NewValidationError("invalid query parameters")
	}
	page.DefaultPage()
	out, err := h.uc.Search(page.Limit, page.Offset)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetMe godoc
// @Summary      Usuario y cuenta de la sesión actual
// @Tags         users
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	sess := GetSession(c)
	if sess == nil {
		return domain.NewAuthError("authentication failed")
	}
	return c.JSON(dto.SessionResponse{
		User:    *dto.ToUserResponse(sess.User),
		Account: dto.ToAccountResponse(sess.Account),
	})
}

// Get godoc
// @Summary      Obtener usuario por ID (admin)
// @Tags         users
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{userId} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario (admin, parche parcial)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Param        body    body  dto.UserUpdateRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/users/{userId} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UserUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	out, err := h.uc.Update(c.Params("userId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrado blando de usuario (admin): status pasa a deleted
// @Tags         users
// @Produce      json
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{userId} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
