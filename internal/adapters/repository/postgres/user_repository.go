package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, google_id, email, name, profile_img, refresh_token, created_at, updated_at`

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var profileImg sql.NullString
	err := row.Scan(
		&user.ID,
		&user.GoogleID,
		&user.Email,
		&user.Name,
		&profileImg,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.ProfileImg = profileImg.String
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, googleID))
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (google_id, email, name, profile_img)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query, user.GoogleID, user.Email, user.Name, user.ProfileImg).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, googleID, name, profileImg string) (*domain.User, error) {
	query := `
		UPDATE users
		SET google_id = $2, name = $3, profile_img = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	return r.scanUser(r.db.QueryRowContext(ctx, query, id, googleID, name, profileImg))
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, token)
	return err
}

func (r *UserRepository) GetByIDAndRefreshToken(ctx context.Context, id int64, token string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND refresh_token = $2`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id, token))
}
