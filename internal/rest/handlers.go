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
	"log/slog"
	"net/http"

	"github.com/jeremyhahn/go-passkey/pkg/metrics"
	"github.com/jeremyhahn/go-passkey/pkg/passkey"
)

// Handlers holds the request handlers and their dependencies.
type Handlers struct {
	service      *passkey.Service
	logger       *slog.Logger
	cookieName   string
	cookieMaxAge int
}

// NewHandlers creates the handler set for the server.
func NewHandlers(service *passkey.Service, logger *slog.Logger, cookieName string, cookieMaxAge int) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		service:      service,
		logger:       logger,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
	}
}

// HealthHandler handles GET /health.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{Status: "healthy"}, http.StatusOK)
}

// updateStoreGauges refreshes the registered user/credential gauges
// after a mutation. Best-effort; failures are ignored.
func (h *Handlers) updateStoreGauges(r *http.Request) {
	users, creds, err := h.service.Counts(r.Context())
	if err != nil {
		return
	}
	metrics.SetStoreSizes(users, creds)
}
