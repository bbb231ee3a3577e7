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

// Package rest implements the HTTP/JSON API for the passkey demo.
//
// The surface mirrors the browser client's expectations:
//
//	POST /api/users/register        - create a user
//	GET  /api/users/check?email=    - existence check
//	GET  /api/users/{id}            - fetch by id
//	GET  /api/users                 - list all users
//	POST /api/credentials/register  - bind a ceremony credential
//	GET  /api/credentials/get-info  - user + stored credential for login
//	POST /api/credentials/verify    - identifier-match verification
//	POST /api/auth/login            - issue the session cookie
//	POST /api/auth/logout           - clear the session cookie
//	GET  /api/auth/verify           - resolve the session cookie
//
// Errors are returned as {"error": message} with 400 for missing
// fields and conflicts, 404 for unknown users/credentials, and 401 for
// session failures.
package rest
