// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package auth_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
	"github.com/haiphamduc/streamora/internal/users/auth"
)

// errWriteRefused simulates a storage outage for atomicity tests.
var errWriteRefused = errors.New("storage write refused")

/*
memoryUserRepository is an in-memory [auth.UserRepository] used by the service
and token tests. It mirrors the Postgres implementation's observable behavior:
case-insensitive identifier matching, apperr.NotFound on misses, and
apperr.Conflict on duplicate identities.
*/
type memoryUserRepository struct {
	mu         sync.Mutex
	users      map[string]*auth.User
	failWrites bool
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*auth.User)}
}

func (repo *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWrites {
		return apperr.Persistence("user insert", errWriteRefused)
	}

	for _, existing := range repo.users {
		if strings.EqualFold(existing.Username, user.Username) || strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("User already exists")
		}
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if user, ok := repo.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return repo.findBy(func(user *auth.User) bool {
		return strings.EqualFold(user.Username, username)
	})
}

func (repo *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return repo.findBy(func(user *auth.User) bool {
		return strings.EqualFold(user.Email, email)
	})
}

func (repo *memoryUserRepository) FindByLogin(_ context.Context, login string) (*auth.User, error) {
	return repo.findBy(func(user *auth.User) bool {
		return strings.EqualFold(user.Username, login) || strings.EqualFold(user.Email, login)
	})
}

func (repo *memoryUserRepository) Update(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWrites {
		return apperr.Persistence("user update", errWriteRefused)
	}

	stored, ok := repo.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}

	stored.Email = user.Email
	stored.FullName = user.FullName
	stored.AvatarURL = user.AvatarURL
	stored.CoverImageURL = user.CoverImageURL
	stored.UpdatedAt = time.Now()
	return nil
}

func (repo *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	return repo.mutate(userID, func(user *auth.User) { user.PasswordHash = newHash })
}

func (repo *memoryUserRepository) UpdateRefreshToken(_ context.Context, userID, token string) error {
	return repo.mutate(userID, func(user *auth.User) { user.RefreshToken = token })
}

func (repo *memoryUserRepository) ClearRefreshToken(_ context.Context, userID string) error {
	return repo.mutate(userID, func(user *auth.User) { user.RefreshToken = "" })
}

func (repo *memoryUserRepository) findBy(match func(*auth.User) bool) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUserRepository) mutate(userID string, apply func(*auth.User)) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failWrites {
		return apperr.Persistence("user update", errWriteRefused)
	}

	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}

	apply(user)
	user.UpdatedAt = time.Now()
	return nil
}

// storedRefreshToken reads the session slot directly for assertions.
func (repo *memoryUserRepository) storedRefreshToken(userID string) string {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if user, ok := repo.users[userID]; ok {
		return user.RefreshToken
	}
	return ""
}
