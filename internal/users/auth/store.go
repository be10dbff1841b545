// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Usernames and emails are stored canonically (lowercase); implementations
// must compare them case-insensitively.
type UserRepository interface {

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate username/email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByLogin returns the account whose username OR email matches login.

		Parameters:
		  - context: context.Context
		  - login: string (Username or email, matched case-insensitively)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByLogin(context context.Context, login string) (*User, error)

	/*
		Update persists changes to mutable profile fields (email, full name,
		avatar and cover image URLs).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on a duplicate email, or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		UpdateRefreshToken overwrites the account's session slot with token.

		The slot holds at most one live refresh token; writing it is the
		rotation point of the session lifecycle.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - token: string (Signed refresh JWT, stored verbatim)

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateRefreshToken(context context.Context, userID, token string) error

	/*
		ClearRefreshToken empties the account's session slot (logout).

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	ClearRefreshToken(context context.Context, userID string) error
}
