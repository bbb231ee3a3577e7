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
)

// LoginHandler handles POST /api/auth/login.
//
// Login succeeds only for a known user with at least one registered
// credential. On success the session cookie is set to the user's id.
// The cookie is intentionally unsigned; this is a demo contract, not a
// production session scheme.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordOperation(metrics.OpLogin, metrics.StatusInvalid)
		writeError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	if req.Email == "" {
		metrics.RecordOperation(metrics.OpLogin, metrics.StatusInvalid)
		writeError(w, msgMissingEmail, http.StatusBadRequest)
		return
	}

	user, err := h.service.Login(r.Context(), req.Email)
	if err != nil {
		metrics.RecordOperation(metrics.OpLogin, operationStatus(err))
		handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    user.ID,
		Path:     "/",
		MaxAge:   h.cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	h.logger.Info("Login successful",
		"email", SanitizeString(user.Email),
		"user_id", user.ID)
	metrics.RecordOperation(metrics.OpLogin, metrics.StatusSuccess)

	writeJSON(w, LoginResponse{
		Message: "Login successful",
		User:    user.Public(),
	}, http.StatusOK)
}

// LogoutHandler handles POST /api/auth/logout. Always succeeds; the
// server keeps no session state, so logout only clears the cookie.
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	metrics.RecordOperation(metrics.OpLogout, metrics.StatusSuccess)
	writeJSON(w, MessageResponse{Message: "Logout successful"}, http.StatusOK)
}

// VerifyAuthHandler handles GET /api/auth/verify. Resolves the session
// cookie to its user; a missing cookie and a stale token are both 401.
func (h *Handlers) VerifyAuthHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.cookieName)
	if err != nil {
		metrics.RecordOperation(metrics.OpVerifySession, metrics.StatusUnauthorized)
		writeError(w, msgNotAuthenticated, http.StatusUnauthorized)
		return
	}

	user, err := h.service.VerifyToken(r.Context(), cookie.Value)
	if err != nil {
		metrics.RecordOperation(metrics.OpVerifySession, metrics.StatusUnauthorized)
		handleServiceError(w, err)
		return
	}

	metrics.RecordOperation(metrics.OpVerifySession, metrics.StatusSuccess)
	writeJSON(w, VerifyAuthResponse{
		Authenticated: true,
		User:          user.Public(),
	}, http.StatusOK)
}
