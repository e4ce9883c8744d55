package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/database"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	apperrors "github.com/thec1rclehost123-cmd/thec1rcle-sub002/pkg/app_errors"
)

// UserRepository is the local profile directory used for gender gating and
// transfer recipient matching.
type UserRepository interface {
	Upsert(ctx context.Context, profile *model.Profile) error
	FindByID(ctx context.Context, userID string) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func (r *UserRepositoryImpl) Upsert(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO user_profiles (user_id, email, name, gender)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET email = EXCLUDED.email, name = EXCLUDED.name, gender = EXCLUDED.gender
	`
	_, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		profile.UserID, strings.ToLower(profile.Email), profile.Name, string(profile.Gender))
	return err
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, userID string) (*model.Profile, error) {
	return r.findOne(ctx, `SELECT user_id, email, name, gender FROM user_profiles WHERE user_id = $1`, userID)
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return r.findOne(ctx, `SELECT user_id, email, name, gender FROM user_profiles WHERE lower(email) = $1`,
		strings.ToLower(email))
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, query string, arg string) (*model.Profile, error) {
	var (
		profile model.Profile
		gender  string
	)
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&profile.UserID,
		&profile.Email,
		&profile.Name,
		&gender,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	profile.Gender = model.Gender(gender)
	return &profile, nil
}
