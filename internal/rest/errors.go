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

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jeremyhahn/go-passkey/pkg/passkey"
)

// Client-facing error messages. These match what the browser front end
// displays, so they are part of the API contract.
const (
	msgMissingUserFields       = "Email and name are required"
	msgMissingEmail            = "Email is required"
	msgMissingCredentialFields = "Email and credential are required"
	msgInvalidBody             = "Invalid request body"
	msgUserExists              = "User already exists"
	msgUserNotFound            = "User not found"
	msgCredentialExists        = "Credential already registered"
	msgCredentialNotFound      = "Credential not found"
	msgNoCredential            = "No credential found for this user"
	msgNotAuthenticated        = "Not authenticated"
	msgInvalidAuthentication   = "Invalid authentication"
	msgInternalError           = "Internal Server Error"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already written, can only log the failure.
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError writes an error response to the client.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

// handleServiceError maps a passkey service error to an HTTP response.
// This is the single error boundary: every failure is terminal for the
// request and surfaced verbatim.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, passkey.ErrUserExists):
		writeError(w, msgUserExists, http.StatusBadRequest)
	case errors.Is(err, passkey.ErrCredentialExists):
		writeError(w, msgCredentialExists, http.StatusBadRequest)
	case errors.Is(err, passkey.ErrUserNotFound):
		writeError(w, msgUserNotFound, http.StatusNotFound)
	case errors.Is(err, passkey.ErrCredentialNotFound):
		writeError(w, msgCredentialNotFound, http.StatusNotFound)
	case errors.Is(err, passkey.ErrNoCredentials):
		writeError(w, msgNoCredential, http.StatusUnauthorized)
	case errors.Is(err, passkey.ErrUnauthorized):
		writeError(w, msgInvalidAuthentication, http.StatusUnauthorized)
	case errors.Is(err, passkey.ErrInvalidInput):
		writeError(w, msgInvalidBody, http.StatusBadRequest)
	default:
		slog.Error("Unhandled service error", "error", err)
		writeError(w, msgInternalError, http.StatusInternalServerError)
	}
}
