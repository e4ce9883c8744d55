package external

import (
	"context"

	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/model"
	"github.com/thec1rclehost123-cmd/thec1rcle-sub002/internal/repository"
)

// RepositoryDirectory serves profiles from the local user_profiles table.
type RepositoryDirectory struct {
	users repository.UserRepository
}

func NewRepositoryDirectory(users repository.UserRepository) *RepositoryDirectory {
	return &RepositoryDirectory{users: users}
}

func (d *RepositoryDirectory) Lookup(ctx context.Context, userID string) (*model.Profile, error) {
	return d.users.FindByID(ctx, userID)
}
