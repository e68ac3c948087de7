package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dtroode/otp-signup/internal/model"
)

// DBTX is the subset of database/sql used by repositories. *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts one confirmed registration. Email is not unique; repeated confirmations add rows.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, email, mobile, password_hash, city, age, file_name, org_name, file_path, role_type, token)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.Mobile, user.PasswordHash, user.City, user.Age,
		user.FileName, user.OrgName, user.FilePath, user.Role, user.Token,
	).Scan(&user.CreatedAt)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
