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

import (
	"context"
	"fmt"
)

// Service provides user registration, credential binding, and
// authentication operations over the injected stores.
type Service struct {
	users UserStore
	creds CredentialStore
}

// ServiceParams contains dependencies for creating a Service.
type ServiceParams struct {
	// UserStore is the user persistence layer (required).
	UserStore UserStore

	// CredentialStore is the credential persistence layer (required).
	CredentialStore CredentialStore
}

// NewService creates a new Service with the provided dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.UserStore == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if params.CredentialStore == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	return &Service{
		users: params.UserStore,
		creds: params.CredentialStore,
	}, nil
}

// RegisterUser creates a new user. No session is issued; the caller is
// expected to follow up with a credential registration ceremony.
func (s *Service) RegisterUser(ctx context.Context, email, name string) (*User, error) {
	if email == "" || name == "" {
		return nil, NewError("register user", ErrInvalidInput)
	}

	user, err := s.users.Create(ctx, email, name)
	if err != nil {
		return nil, WrapError("register user", err)
	}

	return user, nil
}

// UserExists reports whether a user with the given email is
// registered. An unknown email is not an error.
func (s *Service) UserExists(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, NewError("check user", ErrInvalidInput)
	}

	exists, err := s.users.Exists(ctx, email)
	if err != nil {
		return false, WrapError("check user", err)
	}
	return exists, nil
}

// GetUser retrieves a user by id.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, WrapError("get user", err)
	}
	return user, nil
}

// ListUsers returns all registered users in insertion order.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, WrapError("list users", err)
	}
	return users, nil
}

// RegisterCredential binds a ceremony credential blob to the user with
// the given email. The blob is stored verbatim; only its credential
// identifier is examined.
func (s *Service) RegisterCredential(ctx context.Context, email string, data CredentialData) (*Credential, error) {
	if email == "" || data.ID == "" {
		return nil, NewError("register credential", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, WrapError("register credential", err)
	}

	cred, err := s.creds.Create(ctx, user.ID, data)
	if err != nil {
		return nil, WrapError("register credential", err)
	}

	return cred, nil
}

// CredentialInfo returns the user and their first registered credential
// blob, for the client to build an assertion ceremony against.
func (s *Service) CredentialInfo(ctx context.Context, email string) (*User, *Credential, error) {
	if email == "" {
		return nil, nil, NewError("credential info", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, WrapError("credential info", err)
	}

	cred, err := s.creds.FirstByUser(ctx, user.ID)
	if err != nil {
		return nil, nil, WrapError("credential info", err)
	}

	return user, cred, nil
}

// VerifyCredential checks a presented ceremony blob against the user's
// stored credentials. The match is by credential identifier only; no
// signature verification is performed. A non-nil user means verified.
func (s *Service) VerifyCredential(ctx context.Context, email string, data CredentialData) (*User, error) {
	if email == "" || data.ID == "" {
		return nil, NewError("verify credential", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, WrapError("verify credential", err)
	}

	if _, err := s.creds.GetByUserAndCredentialID(ctx, user.ID, data.ID); err != nil {
		return nil, WrapError("verify credential", err)
	}

	return user, nil
}

// Login resolves the user for a session. The user must exist and have
// at least one registered credential; the transport layer issues the
// session cookie from the returned user's id.
func (s *Service) Login(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, NewError("login", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, WrapError("login", err)
	}

	count, err := s.creds.CountForUser(ctx, user.ID)
	if err != nil {
		return nil, WrapError("login", err)
	}
	if count == 0 {
		return nil, NewError("login", ErrNoCredentials)
	}

	return user, nil
}

// Counts returns the number of users and credentials on record.
func (s *Service) Counts(ctx context.Context) (users, credentials int, err error) {
	users, err = s.users.Count(ctx)
	if err != nil {
		return 0, 0, WrapError("counts", err)
	}
	credentials, err = s.creds.Count(ctx)
	if err != nil {
		return 0, 0, WrapError("counts", err)
	}
	return users, credentials, nil
}

// VerifyToken resolves a session token to its user. The token is the
// raw user id carried by the session cookie.
func (s *Service) VerifyToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, NewError("verify token", ErrUnauthorized)
	}

	user, err := s.users.GetByID(ctx, token)
	if err != nil {
		if IsNotFound(err) {
			return nil, NewError("verify token", ErrUnauthorized)
		}
		return nil, WrapError("verify token", err)
	}

	return user, nil
}
