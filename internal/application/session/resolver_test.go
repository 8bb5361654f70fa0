package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overdrive-app/overdrive-api/internal/application/ports"
	"github.com/overdrive-app/overdrive-api/internal/application/session"
	"github.com/overdrive-app/overdrive-api/internal/domain"
	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
)

// ── Dobles de prueba ──────────────────────────────────────────────────────────

// fakeVerifier devuelve un perfil fijo o un error, y cuenta las llamadas.
type fakeVerifier struct {
	profile *ports.Profile
	err     error
	calls   int
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*ports.Profile, error) {
	f.calls++
	return f.profile, f.err
}

// fakeUserRepo repositorio de usuarios en memoria, indexado por email.
type fakeUserRepo struct {
	byEmail   map[string]*entity.User
	accounts  map[string]*entity.Account // cuenta asociada por email
	created   []*entity.User
	lookupErr error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:  make(map[string]*entity.User),
		accounts: make(map[string]*entity.Account),
	}
}

func (f *fakeUserRepo) Create(user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) GetByEmailWithAccount(email string) (*entity.User, *entity.Account, error) {
	if f.lookupErr != nil {
		return nil, nil, f.lookupErr
	}
	return f.byEmail[email], f.accounts[email], nil
}

func (f *fakeUserRepo) Update(user *entity.User) error { return nil }

func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) ListByAccount(accountID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Delete(id string) error { return nil }

// fakeAccountRepo repositorio de cuentas en memoria.
type fakeAccountRepo struct {
	byID     map[string]*entity.Account
	getCalls []string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: make(map[string]*entity.Account)}
}

func (f *fakeAccountRepo) Create(account *entity.Account) error { return nil }

func (f *fakeAccountRepo) GetByID(id string) (*entity.Account, error) {
	f.getCalls = append(f.getCalls, id)
	return f.byID[id], nil
}

func (f *fakeAccountRepo) Update(account *entity.Account) error { return nil }

func (f *fakeAccountRepo) List(limit, offset int) ([]*entity.Account, error) { return nil, nil }

func (f *fakeAccountRepo) Delete(id string) error { return nil }

func activeUser(email string, role entity.Role) *entity.User {
	return &entity.User{
		ID:     "u-" + email,
		Email:  email,
		Role:   role,
		Status: entity.StatusActive,
	}
}

func assertAuthError(t *testing.T, err error, message string) {
	t.Helper()
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr, "el error debe ser un APIError")
	assert.Equal(t, 401, apiErr.Status())
	assert.Equal(t, message, apiErr.Message)
}

// ── Secuencia de resolución ───────────────────────────────────────────────────

// TestResolve_SinToken verifica que sin token la resolución falla sin llegar
// a llamar al verificador externo.
func TestResolve_SinToken(t *testing.T) {
	verifier := &fakeVerifier{}
	r := session.NewResolver(verifier, newFakeUserRepo(), newFakeAccountRepo())

	sess, err := r.Resolve(context.Background(), "", "")

	assert.Nil(t, sess)
	assertAuthError(t, err, "authentication failed (no token)")
	assert.Zero(t, verifier.calls, "el verificador no debe llamarse sin token")
}

// TestResolve_TokenInvalido verifica que un fallo del verificador se traduce
// en la variante de autenticación, sin exponer la causa.
func TestResolve_TokenInvalido(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("token expirado")}
	r := session.NewResolver(verifier, newFakeUserRepo(), newFakeAccountRepo())

	sess, err := r.Resolve(context.Background(), "un-token", "")

	assert.Nil(t, sess)
	assertAuthError(t, err, "authentication failed (bad token)")
}

// TestResolve_PerfilSinEmail cubre el caso de un perfil verificado pero sin
// email: sin clave de correlación no hay sesión posible.
func TestResolve_PerfilSinEmail(t *testing.T) {
	verifier := &fakeVerifier{profile: &ports.Profile{Name: "Ana"}}
	r := session.NewResolver(verifier, newFakeUserRepo(), newFakeAccountRepo())

	sess, err := r.Resolve(context.Background(), "un-token", "")

	assert.Nil(t, sess)
	assertAuthError(t, err, "authentication failed (no profile)")
}

// TestResolve_ErrorDeDB verifica que un fallo de la base de datos se propaga
// tal cual, sin disfrazarse de fallo de autenticación.
func TestResolve_ErrorDeDB(t *testing.T) {
	verifier := &fakeVerifier{profile: &ports.Profile{Email: "ana@acme.com"}}
	users := newFakeUserRepo()
	users.lookupErr = errors.New("conexión cerrada")
	r := session.NewResolver(verifier, users, newFakeAccountRepo())

	sess, err := r.Resolve(context.Background(), "un-token", "")

	assert.Nil(t, sess)
	require.Error(t, err)
	var apiErr *domain.APIError
	assert.False(t, errors.As(err, &apiErr), "un error de DB no debe ser un APIError")
}

// ── Alta perezosa ─────────────────────────────────────────────────────────────

// TestResolve_AltaPerezosa verifica que la primera petición con un email
// desconocido crea el usuario en pending con rol user explícito, y que la
// sesión queda rechazada porque pending no es active.
func TestResolve_AltaPerezosa(t *testing.T) {
	verifier := &fakeVerifier{profile: &ports.Profile{
		Email:   "nueva@acme.com",
		Name:    "Nueva Usuaria",
		Picture: "https://cdn/avatar.png",
	}}
	users := newFakeUserRepo()
	r := session.NewResolver(verifier, users, newFakeAccountRepo())

	sess, err := r.Resolve(context.Background(), "un-token", "")

	assert.Nil(t, sess)
	assertAuthError(t, err, "authentication failed (user not active)")

	require.Len(t, users.created, 1, "debe crearse exactamente un usuario")
	created := users.created[0]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "nueva@acme.com", created.Email)
	assert.Equal(t, "Nueva Usuaria", created.Name)
	assert.Equal(t, "https://cdn/avatar.png", created.Avatar)
	assert.Equal(t, entity.RoleUser, created.Role)
	assert.Equal(t, entity.StatusPending, created.Status)
	assert.Nil(t, created.AccountID, "un usuario nuevo no pertenece a ninguna cuenta")
}

// TestResolve_AltaPerezosaIdempotente verifica que la segunda petición con el
// mismo email no vuelve a crear el usuario.
func TestResolve_AltaPerezosaIdempotente(t *testing.T) {
	verifier := &fakeVerifier{profile: &ports.Profile{Email: "nueva@acme.com"}}
	users := newFakeUserRepo()
	r := session.NewResolver(verifier, users, newFakeAccountRepo())

	_, _ = r.Resolve(context.Background(), "un-token", "")
	_, _ = r.Resolve(context.Background(), "un-token", "")

	assert.Len(t, users.created, 1, "el alta debe ocurrir a lo sumo una vez")
}

// TestResolve_UsuarioActivo es el camino feliz: usuario existente y activo,
// con su cuenta cargada por el join.
func TestResolve_UsuarioActivo(t *testing.T) {
	verifier := &fakeVerifier{profile: &ports.Profile{Email: "ana@acme.com"}}
	users := newFakeUserRepo()
	account := &entity.Account{ID: "acc-1", Name: "Acme"}
	users.byEmail["ana@acme.com"] = activeUser("ana@acme.com", entity.RoleUser)
	users.accounts["ana@acme.com"] = account
	r := session.NewResolver(verifier, users, newFakeAccountRepo())

	sess, err := r.Resolve(context.Background(), "un-token", "")

	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "ana@acme.com", sess.User.Email)
	assert.Same(t, account, sess.Account)
	assert.Empty(t, users.created, "no debe crearse nada para un usuario existente")
}

// ── Override de cuenta ────────────────────────────────────────────────────────

// TestResolve_OverrideUberAdmin verifica que un uber-admin puede suplantar la
// cuenta de la sesión vía header, sin tocar su usuario persistido.
func TestResolve_OverrideUberAdmin(t *testing.T) {
	verifier := &fakeVerifier{profile: &ports.Profile{Email: "root@acme.com"}}
	users := newFakeUserRepo()
	users.byEmail["root@acme.com"] = activeUser("root@acme.com", entity.RoleUberAdmin)
	users.accounts["root@acme.com"] = &entity.Account{ID: "acc-propia"}

	accounts := newFakeAccountRepo()
	otra := &entity.Account{ID: "acc-ajena", Name: "Otra"}
	accounts.byID["acc-ajena"] = otra

	r := session.NewResolver(verifier, users, accounts)
	sess, err := r.Resolve(context.Background(), "un-token", "acc-ajena")

	require.NoError(t, err)
	assert.Same(t, otra, sess.Account, "la sesión debe llevar la cuenta suplantada")
	assert.Nil(t, sess.User.AccountID, "el usuario persistido no cambia con el override")
}

// TestResolve_OverrideCuentaInexistente verifica que un override hacia una
// cuenta que no existe deja la sesión sin cuenta, sin error.
func TestResolve_OverrideCuentaInexistente(t *testing.T) {
	verifier := &fakeVerifier{profile: &ports.Profile{Email: "root@acme.com"}}
	users := newFakeUserRepo()
	users.byEmail["root@acme.com"] = activeUser("root@acme.com", entity.RoleUberAdmin)
	users.accounts["root@acme.com"] = &entity.Account{ID: "acc-propia"}

	r := session.NewResolver(verifier, users, newFakeAccountRepo())
	sess, err := r.Resolve(context.Background(), "un-token", "no-existe")

	require.NoError(t, err)
	assert.Nil(t, sess.Account, "cuenta inexistente en el override = sesión sin cuenta")
}

// TestResolve_OverrideIgnoradoParaNoUber verifica que el header se ignora en
// silencio para roles por debajo de uber-admin.
func TestResolve_OverrideIgnoradoParaNoUber(t *testing.T) {
	for _, role := range []entity.Role{entity.RoleUser, entity.RoleAdmin} {
		verifier := &fakeVerifier{profile: &ports.Profile{Email: "ana@acme.com"}}
		users := newFakeUserRepo()
		propia := &entity.Account{ID: "acc-propia"}
		users.byEmail["ana@acme.com"] = activeUser("ana@acme.com", role)
		users.accounts["ana@acme.com"] = propia

		accounts := newFakeAccountRepo()
		accounts.byID["acc-ajena"] = &entity.Account{ID: "acc-ajena"}

		r := session.NewResolver(verifier, users, accounts)
		sess, err := r.Resolve(context.Background(), "un-token", "acc-ajena")

		require.NoError(t, err)
		assert.Same(t, propia, sess.Account, "rol %s: debe conservar su propia cuenta", role)
		assert.Empty(t, accounts.getCalls, "rol %s: no debe consultarse la cuenta ajena", role)
	}
}

// TestResolve_EstadoDespuesDelOverride verifica que un uber-admin suspendido
// queda rechazado aunque el override se haya resuelto antes.
func TestResolve_EstadoDespuesDelOverride(t *testing.T) {
	verifier := &fakeVerifier{profile: &ports.Profile{Email: "root@acme.com"}}
	users := newFakeUserRepo()
	suspended := activeUser("root@acme.com", entity.RoleUberAdmin)
	suspended.Status = entity.StatusSuspended
	users.byEmail["root@acme.com"] = suspended

	accounts := newFakeAccountRepo()
	accounts.byID["acc-ajena"] = &entity.Account{ID: "acc-ajena"}

	r := session.NewResolver(verifier, users, accounts)
	sess, err := r.Resolve(context.Background(), "un-token", "acc-ajena")

	assert.Nil(t, sess)
	assertAuthError(t, err, "authentication failed (user not active)")
	assert.Len(t, accounts.getCalls, 1, "el override se evalúa antes del chequeo de estado")
}

// TestResolve_EstadosNoActivos recorre todos los estados que no dan sesión.
func TestResolve_EstadosNoActivos(t *testing.T) {
	for _, status := range []entity.UserStatus{
		entity.StatusPending, entity.StatusInvited, entity.StatusSuspended, entity.StatusDeleted,
	} {
		verifier := &fakeVerifier{profile: &ports.Profile{Email: "ana@acme.com"}}
		users := newFakeUserRepo()
		u := activeUser("ana@acme.com", entity.RoleUser)
		u.Status = status
		users.byEmail["ana@acme.com"] = u

		r := session.NewResolver(verifier, users, newFakeAccountRepo())
		sess, err := r.Resolve(context.Background(), "un-token", "")

		assert.Nil(t, sess, "estado %s no debe producir sesión", status)
		assertAuthError(t, err, "authentication failed (user not active)")
	}
}
