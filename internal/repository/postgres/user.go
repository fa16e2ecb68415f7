package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/auxesia/auxesia-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// uniqueViolation is the Postgres error code raised by the unique email index.
const uniqueViolation = "23505"

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, email, username, password_hash, verified, active, superuser, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.Verified, &user.Active, &user.Superuser,
		&user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, username, password_hash, verified, active, superuser, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + userColumns

	savedUser, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.Verified, user.Active, user.Superuser,
		user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

// SetVerified flips the verified flag in a single statement. Re-running it
// for an already verified account succeeds again with the same end state.
func (r *UserRepository) SetVerified(ctx context.Context, email string) (model.User, error) {
	query := `UPDATE users SET verified = TRUE, updated_at = now()
			  WHERE email = $1
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to set user verified: %w", err)
	}

	return user, nil
}

func (r *UserRepository) UpdatePrivileges(ctx context.Context, id uuid.UUID, patch model.PrivilegesPatch) (model.User, error) {
	query := `UPDATE users SET
				superuser = COALESCE($2, superuser),
				active = COALESCE($3, active),
				updated_at = now()
			  WHERE id = $1
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(ctx, query, id, patch.Superuser, patch.Active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user privileges: %w", err)
	}

	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
