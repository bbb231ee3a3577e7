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

package rest

import "github.com/jeremyhahn/go-passkey/pkg/passkey"

// RegisterUserRequest is the body for POST /api/users/register.
type RegisterUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RegisterUserResponse is the success body for user registration.
type RegisterUserResponse struct {
	Message string             `json:"message"`
	User    passkey.PublicUser `json:"user"`
}

// CheckUserResponse is the body for GET /api/users/check.
type CheckUserResponse struct {
	Exists bool `json:"exists"`
}

// RegisterCredentialRequest is the body for POST /api/credentials/register.
type RegisterCredentialRequest struct {
	Email      string                 `json:"email"`
	Credential passkey.CredentialData `json:"credential"`
}

// RegisterCredentialResponse is the success body for credential registration.
type RegisterCredentialResponse struct {
	Message      string `json:"message"`
	CredentialID string `json:"credentialId"`
}

// CredentialInfoResponse is the body for GET /api/credentials/get-info.
type CredentialInfoResponse struct {
	User       passkey.PublicUser     `json:"user"`
	Credential passkey.CredentialData `json:"credential"`
}

// VerifyCredentialRequest is the body for POST /api/credentials/verify.
type VerifyCredentialRequest struct {
	Email      string                 `json:"email"`
	Credential passkey.CredentialData `json:"credential"`
}

// VerifyCredentialResponse is the success body for credential verification.
type VerifyCredentialResponse struct {
	Verified bool               `json:"verified"`
	User     passkey.PublicUser `json:"user"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email string `json:"email"`
}

// LoginResponse is the success body for login.
type LoginResponse struct {
	Message string             `json:"message"`
	User    passkey.PublicUser `json:"user"`
}

// VerifyAuthResponse is the body for GET /api/auth/verify.
type VerifyAuthResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          passkey.PublicUser `json:"user"`
}

// MessageResponse is a generic success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body for all error replies.
type ErrorResponse struct {
	Error string `json:"error"`
}
