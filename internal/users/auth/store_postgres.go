// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
	"github.com/haiphamduc/streamora/internal/platform/dberr"
)

// # User Repository (PostgreSQL)

// userColumns is the canonical select list for hydration of [User].
//
// The session slot is nullable in the schema; an empty slot hydrates as "".
const userColumns = `
	id, username, email, passwordhash, fullname,
	avatarurl, coverimageurl, COALESCE(refreshtoken, ''),
	createdat, updatedat`

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, initializing timestamps when the
entity does not carry them yet.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on unique violations, or persistence failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, passwordhash, fullname,
			avatarurl, coverimageurl, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.AvatarURL,
		user.CoverImageURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "User")
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`

	return repository.scanOne(context, query, id)
}

/*
FindByUsername retrieves a user record by its canonical username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE lower(username) = lower($1)`

	return repository.scanOne(context, query, username)
}

/*
FindByEmail retrieves a user record by its email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE lower(email) = lower($1)`

	return repository.scanOne(context, query, email)
}

/*
FindByLogin retrieves a user record by username or email.

Description: Supports the login form where members type either identifier into
a single field.

Parameters:
  - context: context.Context
  - login: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByLogin(context context.Context, login string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE lower(username) = lower($1) OR lower(email) = lower($1)`

	return repository.scanOne(context, query, login)
}

/*
Update persists mutable profile fields of an existing account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.NotFound, apperr.Conflict (duplicate email), or persistence failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET email = $2, fullname = $3, avatarurl = $4, coverimageurl = $5, updatedat = $6
		WHERE id = $1`

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.FullName,
		user.AvatarURL,
		user.CoverImageURL,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
UpdatePassword replaces only the stored password hash.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `UPDATE users.account SET passwordhash = $2, updatedat = $3 WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
UpdateRefreshToken overwrites the single session slot of an account.

Description: This write is the rotation point for the refresh token lifecycle.
Concurrent refreshes race on this row; the last writer wins and earlier tokens
become stale.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresUserRepository) UpdateRefreshToken(context context.Context, userID, token string) error {
	const query = `UPDATE users.account SET refreshtoken = $2, updatedat = $3 WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, userID, token, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
ClearRefreshToken empties the session slot of an account (logout).

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresUserRepository) ClearRefreshToken(context context.Context, userID string) error {
	const query = `UPDATE users.account SET refreshtoken = NULL, updatedat = $2 WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// scanOne runs a single-row query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, args ...interface{}) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}
