// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-passkey.
//
// go-passkey is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package passkey

import "context"

// UserStore is the interface for user persistence. Implementations
// must enforce the email uniqueness invariant atomically with Create.
type UserStore interface {
	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID retrieves a user by id.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*User, error)

	// Exists reports whether a user with the given email exists.
	Exists(ctx context.Context, email string) (bool, error)

	// Create creates a new user with the given email and name.
	// Returns ErrUserExists if the email is already taken.
	Create(ctx context.Context, email, name string) (*User, error)

	// List returns all users in insertion order.
	List(ctx context.Context) ([]*User, error)

	// Count returns the number of users.
	Count(ctx context.Context) (int, error)
}

// CredentialStore is the interface for credential persistence.
// Implementations must enforce the (userID, credential id) uniqueness
// invariant atomically with Create.
type CredentialStore interface {
	// GetByUserAndCredentialID retrieves the credential record bound to
	// the user with the given ceremony credential identifier.
	// Returns ErrCredentialNotFound if no such record exists.
	GetByUserAndCredentialID(ctx context.Context, userID, credentialID string) (*Credential, error)

	// FirstByUser retrieves the user's first registered credential.
	// Returns ErrCredentialNotFound if the user has none.
	FirstByUser(ctx context.Context, userID string) (*Credential, error)

	// Create stores a new credential for the user.
	// Returns ErrCredentialExists if a record already exists for the
	// (userID, data.ID) pair.
	Create(ctx context.Context, userID string, data CredentialData) (*Credential, error)

	// CountForUser returns the number of credentials bound to the user.
	CountForUser(ctx context.Context, userID string) (int, error)

	// Count returns the total number of credentials.
	Count(ctx context.Context) (int, error)
}
