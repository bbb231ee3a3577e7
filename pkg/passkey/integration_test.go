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
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/descope/virtualwebauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The demo client generates the ceremony challenge locally and posts
// the raw authenticator output to the server. These tests reproduce
// that flow with a virtual authenticator so the service sees blobs
// shaped exactly like real browser ceremonies.

const (
	testRPID     = "localhost"
	testRPName   = "Biometric Auth Demo"
	testRPOrigin = "http://localhost:5173"
)

func newTestRelyingParty() virtualwebauthn.RelyingParty {
	return virtualwebauthn.RelyingParty{
		Name:   testRPName,
		ID:     testRPID,
		Origin: testRPOrigin,
	}
}

// clientAttestationOptions builds the creation options the demo client
// passes to navigator.credentials.create, with a locally generated
// challenge.
func clientAttestationOptions(t *testing.T, email, name string) string {
	t.Helper()

	challenge := make([]byte, 32)
	_, err := rand.Read(challenge)
	require.NoError(t, err)

	options := fmt.Sprintf(`{
		"challenge": %q,
		"rp": {"id": %q, "name": %q},
		"user": {"id": %q, "name": %q, "displayName": %q},
		"pubKeyCredParams": [
			{"type": "public-key", "alg": -7},
			{"type": "public-key", "alg": -257}
		]
	}`,
		base64.RawURLEncoding.EncodeToString(challenge),
		testRPID, testRPName,
		base64.RawURLEncoding.EncodeToString([]byte(email)), email, name)

	return options
}

// clientAssertionOptions builds the request options the demo client
// passes to navigator.credentials.get against a known credential id.
func clientAssertionOptions(t *testing.T, credentialID string) string {
	t.Helper()

	challenge := make([]byte, 32)
	_, err := rand.Read(challenge)
	require.NoError(t, err)

	return fmt.Sprintf(`{
		"challenge": %q,
		"rpId": %q,
		"allowCredentials": [{"type": "public-key", "id": %q}]
	}`,
		base64.RawURLEncoding.EncodeToString(challenge),
		testRPID, credentialID)
}

func TestIntegration_RegistrationFlow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	rp := newTestRelyingParty()
	authenticator := virtualwebauthn.NewAuthenticator()
	credential := virtualwebauthn.NewCredential(virtualwebauthn.KeyTypeEC2)

	// Phase 1: create the user.
	user, err := svc.RegisterUser(ctx, "testuser@example.com", "Test User")
	require.NoError(t, err)

	// Phase 2: run the creation ceremony locally and bind the result.
	parsedOptions, err := virtualwebauthn.ParseAttestationOptions(
		clientAttestationOptions(t, user.Email, user.Name))
	require.NoError(t, err)

	attestationResponse := virtualwebauthn.CreateAttestationResponse(
		rp, authenticator, credential, *parsedOptions)

	var data CredentialData
	require.NoError(t, json.Unmarshal([]byte(attestationResponse), &data))
	require.NotEmpty(t, data.ID)
	assert.Equal(t, "public-key", data.Type)
	assert.NotEmpty(t, data.Response)

	stored, err := svc.RegisterCredential(ctx, user.Email, data)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, data.ID, stored.Data.ID)

	// Replaying the same ceremony output conflicts.
	_, err = svc.RegisterCredential(ctx, user.Email, data)
	assert.ErrorIs(t, err, ErrCredentialExists)
}

func TestIntegration_AuthenticationFlow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	rp := newTestRelyingParty()
	authenticator := virtualwebauthn.NewAuthenticator()
	credential := virtualwebauthn.NewCredential(virtualwebauthn.KeyTypeEC2)

	// Register user and credential.
	user, err := svc.RegisterUser(ctx, "logintest@example.com", "Login Test")
	require.NoError(t, err)

	parsedOptions, err := virtualwebauthn.ParseAttestationOptions(
		clientAttestationOptions(t, user.Email, user.Name))
	require.NoError(t, err)
	attestationResponse := virtualwebauthn.CreateAttestationResponse(
		rp, authenticator, credential, *parsedOptions)

	var regData CredentialData
	require.NoError(t, json.Unmarshal([]byte(attestationResponse), &regData))
	_, err = svc.RegisterCredential(ctx, user.Email, regData)
	require.NoError(t, err)

	authenticator.AddCredential(credential)

	// The client fetches the stored credential to build the assertion.
	infoUser, infoCred, err := svc.CredentialInfo(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, infoUser.ID)
	assert.Equal(t, regData.ID, infoCred.Data.ID)

	// Run the assertion ceremony and present the result.
	parsedAssertion, err := virtualwebauthn.ParseAssertionOptions(
		clientAssertionOptions(t, infoCred.Data.ID))
	require.NoError(t, err)
	assertionResponse := virtualwebauthn.CreateAssertionResponse(
		rp, authenticator, credential, *parsedAssertion)

	var presented CredentialData
	require.NoError(t, json.Unmarshal([]byte(assertionResponse), &presented))
	assert.Equal(t, regData.ID, presented.ID)

	verifiedUser, err := svc.VerifyCredential(ctx, user.Email, presented)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verifiedUser.ID)

	// Login issues the session identity; the token round-trips.
	loginUser, err := svc.Login(ctx, user.Email)
	require.NoError(t, err)

	sessionUser, err := svc.VerifyToken(ctx, loginUser.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sessionUser.ID)
}

func TestIntegration_ForeignCredentialRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	rp := newTestRelyingParty()

	// Two users, each with their own authenticator.
	for i, email := range []string{"alice@example.com", "bob@example.com"} {
		user, err := svc.RegisterUser(ctx, email, fmt.Sprintf("User %d", i))
		require.NoError(t, err)

		authenticator := virtualwebauthn.NewAuthenticator()
		credential := virtualwebauthn.NewCredential(virtualwebauthn.KeyTypeEC2)
		parsedOptions, err := virtualwebauthn.ParseAttestationOptions(
			clientAttestationOptions(t, user.Email, user.Name))
		require.NoError(t, err)
		attestationResponse := virtualwebauthn.CreateAttestationResponse(
			rp, authenticator, credential, *parsedOptions)

		var data CredentialData
		require.NoError(t, json.Unmarshal([]byte(attestationResponse), &data))
		_, err = svc.RegisterCredential(ctx, user.Email, data)
		require.NoError(t, err)
	}

	// Alice's credential does not verify against Bob's account.
	_, aliceCred, err := svc.CredentialInfo(ctx, "alice@example.com")
	require.NoError(t, err)

	_, err = svc.VerifyCredential(ctx, "bob@example.com", aliceCred.Data)
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}
