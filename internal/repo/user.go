package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/davemarr/asset-inventory/internal/models"
)

const userColumns = `id, username, email, password_hash, role, created_at`

type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// Create inserts a user. passwordHash must already be a bcrypt hash; this
// repo never sees plaintext passwords.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash, role string) (*models.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		username, email, passwordHash, role))
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	return n, err
}
