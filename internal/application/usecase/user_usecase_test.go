package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overdrive-app/overdrive-api/internal/application/dto"
	"github.com/overdrive-app/overdrive-api/internal/application/usecase"
	"github.com/overdrive-app/overdrive-api/internal/domain"
	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
)

// TestUserUpdate_PatchParcial verifica el parche parcial: preferences y rol
// cambian, el resto se conserva, y un patch vacío no escribe.
func TestUserUpdate_PatchParcial(t *testing.T) {
	users := newStubUserRepo()
	users.byID["u-1"] = &entity.User{
		ID: "u-1", Email: "ana@acme.com", Name: "Ana",
		Role: entity.RoleUser, Status: entity.StatusActive,
	}
	uc := usecase.NewUserUseCase(users)

	out, err := uc.Update("u-1", dto.UserUpdateRequest{
		Preferences: entity.Preferences{"theme": "dark"},
		Role:        strPtr("admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", out.Role)
	assert.Equal(t, "Ana", out.Name, "los campos ausentes no se tocan")
	assert.Equal(t, "dark", out.Preferences["theme"])
	assert.Len(t, users.updated, 1)

	_, err = uc.Update("u-1", dto.UserUpdateRequest{})
	require.NoError(t, err)
	assert.Len(t, users.updated, 1, "un patch vacío no debe persistir")
}

// TestUserUpdate_Validaciones cubre rol y estado desconocidos.
func TestUserUpdate_Validaciones(t *testing.T) {
	users := newStubUserRepo()
	users.byID["u-1"] = &entity.User{ID: "u-1", Role: entity.RoleUser, Status: entity.StatusActive}
	uc := usecase.NewUserUseCase(users)

	var apiErr *domain.APIError
	_, err := uc.Update("u-1", dto.UserUpdateRequest{Role: strPtr("root")})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status())

	_, err = uc.Update("u-1", dto.UserUpdateRequest{Status: strPtr("archived")})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status())

	assert.Equal(t, entity.RoleUser, users.byID["u-1"].Role, "nada debe persistirse tras un 422")
}

// TestUserDelete_BorradoBlando verifica que el borrado solo transiciona el
// estado a deleted: la fila sigue existiendo.
func TestUserDelete_BorradoBlando(t *testing.T) {
	users := newStubUserRepo()
	users.byID["u-1"] = &entity.User{ID: "u-1", Status: entity.StatusActive}
	uc := usecase.NewUserUseCase(users)

	out, err := uc.Delete("u-1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDeleted), out.Status)
	require.NotNil(t, users.byID["u-1"], "la fila no se elimina")
	assert.Equal(t, entity.StatusDeleted, users.byID["u-1"].Status)
}

// TestUserGetByID_NoEncontrado verifica el 404 estándar.
func TestUserGetByID_NoEncontrado(t *testing.T) {
	uc := usecase.NewUserUseCase(newStubUserRepo())

	_, err := uc.GetByID("nadie")
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status())
	assert.Equal(t, "The object of type User with id nadie could not be found.", apiErr.Message)
}

// TestListByAccount verifica el filtrado por cuenta.
func TestListByAccount(t *testing.T) {
	users := newStubUserRepo()
	users.byID["u-1"] = &entity.User{ID: "u-1", AccountID: strPtr("acc-1")}
	users.byID["u-2"] = &entity.User{ID: "u-2", AccountID: strPtr("acc-2")}
	users.byID["u-3"] = &entity.User{ID: "u-3"}
	uc := usecase.NewUserUseCase(users)

	out, err := uc.ListByAccount("acc-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Users, 1)
	assert.Equal(t, "u-1", out.Users[0].ID)
}
