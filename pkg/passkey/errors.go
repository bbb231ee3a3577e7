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
	"errors"
	"fmt"
)

// Sentinel errors for passkey operations.
var (
	// ErrInvalidInput is returned when a required field is missing.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserExists is returned when attempting to register an email
	// that is already taken.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrCredentialExists is returned when attempting to register a
	// duplicate (user, credential id) pairing.
	ErrCredentialExists = errors.New("credential already registered")

	// ErrCredentialNotFound is returned when a credential cannot be found.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrNoCredentials is returned at login when the user has no
	// registered credentials.
	ErrNoCredentials = errors.New("user has no registered credentials")

	// ErrUnauthorized is returned when a session token is missing or
	// does not resolve to a known user.
	ErrUnauthorized = errors.New("unauthorized")
)

// PasskeyError wraps an error with the operation that produced it.
type PasskeyError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

// Error returns the error message.
func (e *PasskeyError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PasskeyError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches.
func (e *PasskeyError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new PasskeyError with the given operation and error.
func NewError(op string, err error) error {
	return &PasskeyError{
		Op:  op,
		Err: err,
	}
}

// WrapError wraps an error with an operation name if it's not nil.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(op, err)
}

// IsConflict returns true if the error indicates a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrUserExists) || errors.Is(err, ErrCredentialExists)
}

// IsNotFound returns true if the error indicates a missing user or credential.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrCredentialNotFound)
}

// IsInvalidInput returns true if the error indicates missing or malformed input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnauthorized returns true if the error indicates a failed session or
// credential check.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNoCredentials)
}
