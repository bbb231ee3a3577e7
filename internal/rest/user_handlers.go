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
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jeremyhahn/go-passkey/pkg/metrics"
)

// RegisterUserHandler handles POST /api/users/register.
//
// This is phase one of the two-phase registration flow: the user
// record is created without a credential and without a session. The
// client is expected to run the creation ceremony and post the result
// to the credential registration endpoint.
func (h *Handlers) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordOperation(metrics.OpRegisterUser, metrics.StatusInvalid)
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Name == "" {
		metrics.RecordOperation(metrics.OpRegisterUser, metrics.StatusInvalid)
		writeError(w, msgMissingUserFields, http.StatusBadRequest)
		return
	}

	user, err := h.service.RegisterUser(r.Context(), req.Email, req.Name)
	if err != nil {
		metrics.RecordOperation(metrics.OpRegisterUser, metrics.StatusConflict)
		handleServiceError(w, err)
		return
	}

	h.logger.Info("User registered",
		"email", SanitizeString(user.Email),
		"user_id", user.ID)
	metrics.RecordOperation(metrics.OpRegisterUser, metrics.StatusSuccess)
	h.updateStoreGauges(r)

	writeJSON(w, RegisterUserResponse{
		Message: "User registered successfully",
		User:    user.Public(),
	}, http.StatusCreated)
}

// CheckUserHandler handles GET /api/users/check?email=.
// An unknown email is not an error; it reports exists=false so the
// client can gate the biometric step.
func (h *Handlers) CheckUserHandler(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		metrics.RecordOperation(metrics.OpCheckUser, metrics.StatusInvalid)
		writeError(w, msgMissingEmail, http.StatusBadRequest)
		return
	}

	exists, err := h.service.UserExists(r.Context(), email)
	if err != nil {
		metrics.RecordOperation(metrics.OpCheckUser, metrics.StatusError)
		handleServiceError(w, err)
		return
	}

	metrics.RecordOperation(metrics.OpCheckUser, metrics.StatusSuccess)
	writeJSON(w, CheckUserResponse{Exists: exists}, http.StatusOK)
}

// GetUserHandler handles GET /api/users/{id}. The full record,
// including createdAt, is returned.
func (h *Handlers) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, user, http.StatusOK)
}

// ListUsersHandler handles GET /api/users. Users are returned in
// registration order.
func (h *Handlers) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, users, http.StatusOK)
}
