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

	"github.com/jeremyhahn/go-passkey/pkg/metrics"
	"github.com/jeremyhahn/go-passkey/pkg/passkey"
)

// RegisterCredentialHandler handles POST /api/credentials/register.
//
// Phase two of registration: the ceremony blob from the browser is
// bound to the user created in phase one. The blob is stored verbatim.
func (h *Handlers) RegisterCredentialHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordOperation(metrics.OpRegisterCredential, metrics.StatusInvalid)
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Credential.ID == "" {
		metrics.RecordOperation(metrics.OpRegisterCredential, metrics.StatusInvalid)
		writeError(w, msgMissingCredentialFields, http.StatusBadRequest)
		return
	}

	cred, err := h.service.RegisterCredential(r.Context(), req.Email, req.Credential)
	if err != nil {
		metrics.RecordOperation(metrics.OpRegisterCredential, operationStatus(err))
		handleServiceError(w, err)
		return
	}

	h.logger.Info("Credential registered",
		"email", SanitizeString(req.Email),
		"credential_id", cred.ID)
	metrics.RecordOperation(metrics.OpRegisterCredential, metrics.StatusSuccess)
	h.updateStoreGauges(r)

	writeJSON(w, RegisterCredentialResponse{
		Message:      "Credential registered successfully",
		CredentialID: cred.ID,
	}, http.StatusCreated)
}

// GetCredentialInfoHandler handles GET /api/credentials/get-info?email=.
// The client uses the returned ceremony blob to build the assertion
// request for the local authenticator.
func (h *Handlers) GetCredentialInfoHandler(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		metrics.RecordOperation(metrics.OpCredentialInfo, metrics.StatusInvalid)
		writeError(w, msgMissingEmail, http.StatusBadRequest)
		return
	}

	user, cred, err := h.service.CredentialInfo(r.Context(), email)
	if err != nil {
		metrics.RecordOperation(metrics.OpCredentialInfo, operationStatus(err))
		handleServiceError(w, err)
		return
	}

	metrics.RecordOperation(metrics.OpCredentialInfo, metrics.StatusSuccess)
	writeJSON(w, CredentialInfoResponse{
		User:       user.Public(),
		Credential: cred.Data,
	}, http.StatusOK)
}

// VerifyCredentialHandler handles POST /api/credentials/verify.
//
// Verification is by credential identifier only; the assertion's
// signature fields are not checked. A match yields verified=true.
func (h *Handlers) VerifyCredentialHandler(w http.ResponseWriter, r *http.Request) {
	var req VerifyCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordOperation(metrics.OpVerifyCredential, metrics.StatusInvalid)
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Credential.ID == "" {
		metrics.RecordOperation(metrics.OpVerifyCredential, metrics.StatusInvalid)
		writeError(w, msgMissingCredentialFields, http.StatusBadRequest)
		return
	}

	user, err := h.service.VerifyCredential(r.Context(), req.Email, req.Credential)
	if err != nil {
		metrics.RecordOperation(metrics.OpVerifyCredential, operationStatus(err))
		handleServiceError(w, err)
		return
	}

	h.logger.Info("Credential verified",
		"email", SanitizeString(req.Email),
		"user_id", user.ID)
	metrics.RecordOperation(metrics.OpVerifyCredential, metrics.StatusSuccess)

	writeJSON(w, VerifyCredentialResponse{
		Verified: true,
		User:     user.Public(),
	}, http.StatusOK)
}

// operationStatus maps a service error to a metrics status label.
func operationStatus(err error) string {
	switch {
	case passkey.IsConflict(err):
		return metrics.StatusConflict
	case passkey.IsNotFound(err):
		return metrics.StatusNotFound
	case passkey.IsUnauthorized(err):
		return metrics.StatusUnauthorized
	case passkey.IsInvalidInput(err):
		return metrics.StatusInvalid
	default:
		return metrics.StatusError
	}
}
