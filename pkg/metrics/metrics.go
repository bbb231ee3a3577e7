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

// Package metrics provides Prometheus instrumentation for the passkey
// service. It exposes HTTP request counters and histograms plus
// per-operation outcome counters for the authentication flows.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all passkey metrics
	Namespace = "passkey"

	// Label names
	LabelOperation  = "operation"
	LabelStatus     = "status"
	LabelMethod     = "method"
	LabelStatusCode = "status_code"

	// Status values
	StatusSuccess      = "success"
	StatusConflict     = "conflict"
	StatusNotFound     = "not_found"
	StatusUnauthorized = "unauthorized"
	StatusInvalid      = "invalid"
	StatusError        = "error"

	// Operation names
	OpRegisterUser       = "register_user"
	OpCheckUser          = "check_user"
	OpRegisterCredential = "register_credential"
	OpCredentialInfo     = "credential_info"
	OpVerifyCredential   = "verify_credential"
	OpLogin              = "login"
	OpLogout             = "logout"
	OpVerifySession      = "verify_session"
)

var (
	// OperationsTotal tracks authentication operations by type and outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of authentication operations by type and status",
		},
		[]string{LabelOperation, LabelStatus},
	)

	// HTTPRequestsTotal tracks the total number of HTTP requests by method and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method and status code",
		},
		[]string{LabelMethod, LabelStatusCode},
	)

	// HTTPRequestDuration tracks the duration of HTTP requests in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{LabelMethod},
	)

	// ActiveConnections tracks the number of in-flight HTTP requests.
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "active_connections",
			Help:      "Number of in-flight HTTP requests",
		},
	)

	// RegisteredUsers tracks the number of users in the store.
	RegisteredUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "registered_users",
			Help:      "Number of registered users",
		},
	)

	// RegisteredCredentials tracks the number of credentials in the store.
	RegisteredCredentials = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "registered_credentials",
			Help:      "Number of registered credentials",
		},
	)

	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

// IsEnabled returns whether metrics collection is enabled.
func IsEnabled() bool {
	return enabled.Load()
}

// SetEnabled toggles metrics collection at runtime.
func SetEnabled(v bool) {
	enabled.Store(v)
}

// RecordOperation increments the operation counter for the given
// operation and outcome.
func RecordOperation(operation, status string) {
	if !IsEnabled() {
		return
	}
	OperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(method, statusCode string, duration float64) {
	if !IsEnabled() {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method).Observe(duration)
}

// SetStoreSizes updates the user and credential gauges.
func SetStoreSizes(users, credentials int) {
	if !IsEnabled() {
		return
	}
	RegisteredUsers.Set(float64(users))
	RegisteredCredentials.Set(float64(credentials))
}
