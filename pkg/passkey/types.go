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
	"encoding/json"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
)

// User is an account record. Users are created during registration and
// are never mutated or deleted afterwards. Email is the unique,
// case-sensitive lookup key.
type User struct {
	// ID is the opaque unique identifier assigned at creation.
	ID string `json:"id"`

	// Email is the unique account key.
	Email string `json:"email"`

	// Name is the display name shown in the UI.
	Name string `json:"name"`

	// CreatedAt is when the user registered.
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the projection of a User returned by authentication
// responses (registration, login, verify).
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public returns the user's public fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// CredentialData is the ceremony blob produced by the browser's
// platform authenticator. Only ID is examined by the server; the
// remaining fields are stored and replayed verbatim.
type CredentialData struct {
	// ID is the credential identifier assigned by the authenticator.
	ID string `json:"id"`

	// RawID is the base64-encoded raw credential identifier.
	RawID string `json:"rawId,omitempty"`

	// Type is the credential type, "public-key" for WebAuthn.
	Type string `json:"type,omitempty"`

	// Transports lists the transports reported by the authenticator.
	Transports []protocol.AuthenticatorTransport `json:"transports,omitempty"`

	// Response carries the attestation or assertion fields. The server
	// treats it as opaque.
	Response json.RawMessage `json:"response,omitempty"`
}

// Credential is a stored credential record bound to a user. Records
// are created during credential registration and never mutated or
// deleted. At most one record exists per (UserID, Data.ID) pair.
type Credential struct {
	// ID is the record identifier assigned by the store.
	ID string `json:"id"`

	// UserID references the owning user.
	UserID string `json:"userId"`

	// Data is the ceremony blob as received from the client.
	Data CredentialData `json:"credential"`

	// CreatedAt is when the credential was registered.
	CreatedAt time.Time `json:"createdAt"`
}
