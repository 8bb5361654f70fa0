package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/overdrive-app/overdrive-api/internal/application/ports"
	"github.com/overdrive-app/overdrive-api/internal/domain"
	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
	"github.com/overdrive-app/overdrive-api/internal/domain/repository"
)

// Session sesión resuelta para una petición. La Account va al lado del
// User, no dentro: un override de cuenta de un uber-admin vive solo aquí
// y nunca puede colarse en un save posterior de la entidad.
type Session struct {
	User    *entity.User
	Account *entity.Account
}

// Resolver resuelve una petición entrante a un User persistido (creándolo
// la primera vez que se ve su email) más su Account. Cada fallo devuelve
// la misma variante de autenticación; la causa concreta va al log.
type Resolver struct {
	verifier ports.TokenVerifier
	users    repository.UserRepository
	accounts repository.AccountRepository
}

// NewResolver construye el resolver de sesión.
func NewResolver(verifier ports.TokenVerifier, users repository.UserRepository, accounts repository.AccountRepository) *Resolver {
	return &Resolver{verifier: verifier, users: users, accounts: accounts}
}

// Resolve ejecuta la secuencia completa: token → perfil → usuario
// (creándolo si no existe) → override de cuenta (solo uber-admin) →
// chequeo de estado. overrideAccountID es el valor del header
// X-Account-Id, vacío si no vino.
//
// El chequeo de estado va DESPUÉS del override: un uber-admin no activo
// queda rechazado aunque el override se haya aplicado en memoria.
func (r *Resolver) Resolve(ctx context.Context, token, overrideAccountID string) (*Session, error) {
	if token == "" {
		log.Error().Msg("authentication failed (no token)")
		return nil, domain.NewAuthError("authentication failed (no token)")
	}

	profile, err := r.verifier.Verify(ctx, token)
	if err != nil {
		// La causa (red, token malformado, expirado) se registra pero no
		// se expone: hacia fuera todo es el mismo 401.
		log.Error().Err(err).Msg("error verifying token")
		return nil, domain.NewAuthError("authentication failed (bad token)")
	}

	if profile == nil || profile.Email == "" {
		log.Error().Msg("authentication failed (no profile)")
		return nil, domain.NewAuthError("authentication failed (no profile)")
	}

	// Un fallo de la DB no es un fallo de autenticación: se propaga tal
	// cual y el boundary HTTP lo convierte en 500.
	user, account, err := r.users.GetByEmailWithAccount(profile.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Primera vez que vemos este email: alta perezosa en pending.
		// El rol por defecto es explícito; no dependemos del default de
		// la columna. Si dos peticiones concurrentes compiten por el
		// mismo email, el índice único de la DB decide.
		log.Debug().Str("email", profile.Email).Msg("creating user")
		now := time.Now()
		user = &entity.User{
			ID:        uuid.New().String(),
			Email:     profile.Email,
			Name:      profile.Name,
			Avatar:    profile.Picture,
			Role:      entity.RoleUser,
			Status:    entity.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.users.Create(user); err != nil {
			return nil, err
		}
	}

	// Un uber-admin puede operar como cualquier cuenta indicándola por
	// header. El override es solo de sesión; si la cuenta no existe la
	// sesión queda sin cuenta, sin error (el handler que exija cuenta
	// fallará con su propio not-found).
	if overrideAccountID != "" && user.Role == entity.RoleUberAdmin {
		account, _ = r.accounts.GetByID(overrideAccountID)
	}

	if user.Status != entity.StatusActive {
		log.Error().Str("email", user.Email).Str("status", string(user.Status)).Msg("authentication failed (user not active)")
		return nil, domain.NewAuthError("authentication failed (user not active)")
	}

	return &Session{User: user, Account: account}, nil
}
