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

// Package passkey implements the user and credential model behind the
// passwordless sign-up/sign-in demo.
//
// The package follows a two-phase registration flow: a user record is
// created first, then the browser performs a platform-authenticator
// ceremony and posts the resulting credential blob back for binding.
// The two phases are not atomic; a user with zero credentials is a
// valid, non-terminal state.
//
// Credential verification compares the presented credential identifier
// against the stored record. No signature or attestation validation is
// performed. This matches the demo's contract and must not be mistaken
// for real WebAuthn assertion verification.
//
// Storage is behind the UserStore and CredentialStore interfaces.
// The in-memory implementations in this package are suitable for the
// demo and for tests; a production deployment would back them with a
// database enforcing the same uniqueness constraints.
package passkey
