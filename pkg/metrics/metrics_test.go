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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOperation(t *testing.T) {
	before := testutil.ToFloat64(OperationsTotal.WithLabelValues(OpLogin, StatusSuccess))
	RecordOperation(OpLogin, StatusSuccess)
	after := testutil.ToFloat64(OperationsTotal.WithLabelValues(OpLogin, StatusSuccess))
	assert.Equal(t, before+1, after)
}

func TestRecordOperation_Disabled(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	before := testutil.ToFloat64(OperationsTotal.WithLabelValues(OpLogout, StatusSuccess))
	RecordOperation(OpLogout, StatusSuccess)
	after := testutil.ToFloat64(OperationsTotal.WithLabelValues(OpLogout, StatusSuccess))
	assert.Equal(t, before, after)
}

func TestSetStoreSizes(t *testing.T) {
	SetStoreSizes(3, 7)
	assert.Equal(t, float64(3), testutil.ToFloat64(RegisteredUsers))
	assert.Equal(t, float64(7), testutil.ToFloat64(RegisteredCredentials))
}

func TestHTTPMiddleware(t *testing.T) {
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "418"))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "418"))
	assert.Equal(t, before+1, after)
}

func TestHTTPMiddleware_ImplicitStatus(t *testing.T) {
	handler := HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Write without WriteHeader defaults to 200.
		_, _ = w.Write([]byte("ok"))
	}))

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodPost, "200"))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodPost, "200"))
	assert.Equal(t, before+1, after)
}
