package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/overdrive-app/overdrive-api/internal/domain/entity"
	"github.com/overdrive-app/overdrive-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, account_id, email, name, avatar, preferences, role, status, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// El índice único sobre email resuelve la carrera de dos peticiones
// creando el mismo usuario a la vez; el resolver no hace locking.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.AccountID, user.Email, user.Name, user.Avatar,
		user.Preferences, user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user: el email ya está registrado: %w", err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id), "get user by id")
}

// GetByEmail obtiene un usuario por email. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, email), "get user by email")
}

// GetByEmailWithAccount obtiene el usuario por email y su cuenta asociada
// en una sola consulta (LEFT JOIN). La cuenta es nil si no pertenece a
// ninguna. Devuelve (nil, nil, nil) si el usuario no existe.
func (r *UserRepo) GetByEmailWithAccount(email string) (*entity.User, *entity.Account, error) {
	query := `
		SELECT u.id, u.account_id, u.email, u.name, u.avatar, u.preferences, u.role, u.status, u.created_at, u.updated_at,
		       a.id, a.name, a.avatar, a.status, a.master_price_unit, a.master_price, a.created_at, a.updated_at
		FROM users u
		LEFT JOIN accounts a ON a.id = u.account_id
		WHERE u.email = $1 LIMIT 1`

	var u entity.User
	var acc entity.Account
	var accID, accName, accAvatar, accStatus, accUnit *string
	var accPrice *decimal.Decimal
	var accCreated, accUpdated *time.Time

	row := r.pool.QueryRow(context.Background(), query, email)
	err := row.Scan(
		&u.ID, &u.AccountID, &u.Email, &u.Name, &u.Avatar, &u.Preferences, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
		&accID, &accName, &accAvatar, &accStatus, &accUnit, &accPrice, &accCreated, &accUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get user with account: %w", err)
	}

	if accID == nil {
		return &u, nil, nil
	}
	acc.ID = *accID
	if accName != nil {
		acc.Name = *accName
	}
	if accAvatar != nil {
		acc.Avatar = *accAvatar
	}
	if accStatus != nil {
		acc.Status = entity.AccountStatus(*accStatus)
	}
	if accUnit != nil {
		acc.MasterPriceUnit = entity.PricingUnit(*accUnit)
	}
	if accPrice != nil {
		acc.MasterPrice = *accPrice
	}
	if accCreated != nil {
		acc.CreatedAt = *accCreated
	}
	if accUpdated != nil {
		acc.UpdatedAt = *accUpdated
	}
	return &u, &acc, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET account_id = $2, email = $3, name = $4, avatar = $5, preferences = $6, role = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.AccountID, user.Email, user.Name, user.Avatar,
		user.Preferences, user.Role, user.Status, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista todos los usuarios con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return r.scanAll(rows)
}

// ListByAccount lista los usuarios de una cuenta con paginación.
func (r *UserRepo) ListByAccount(accountID string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users by account: %w", err)
	}
	return r.scanAll(rows)
}

// Delete elimina un usuario por ID (borrado duro; la API usa el blando).
func (r *UserRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.AccountID, &u.Email, &u.Name, &u.Avatar, &u.Preferences, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

func (r *UserRepo) scanAll(rows pgx.Rows) ([]*entity.User, error) {
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.AccountID, &u.Email, &u.Name, &u.Avatar, &u.Preferences, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// isUniqueViolation detecta el error 23505 (unique_violation) de Postgres.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
