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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	// Create user
	user, err := store.Create(ctx, "test@example.com", "Test User")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "Test User", user.Name)
	assert.False(t, user.CreatedAt.IsZero())

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Get by email
	retrieved, err := store.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)

	// Get by id
	retrieved, err = store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", retrieved.Email)

	// Exists
	exists, err := store.Exists(ctx, "test@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	// Get non-existent
	_, err = store.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = store.GetByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Create duplicate
	_, err = store.Create(ctx, "test@example.com", "Another User")
	assert.ErrorIs(t, err, ErrUserExists)

	// Clear
	store.Clear()
	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryUserStore_EmailCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	_, err := store.Create(ctx, "Test@example.com", "Upper")
	require.NoError(t, err)

	// The email key is case-sensitive; a differently-cased email is a
	// distinct account.
	_, err = store.Create(ctx, "test@example.com", "Lower")
	require.NoError(t, err)

	_, err = store.GetByEmail(ctx, "TEST@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMemoryUserStore_ListOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	for i := 0; i < 5; i++ {
		_, err := store.Create(ctx, fmt.Sprintf("user%d@example.com", i), fmt.Sprintf("User %d", i))
		require.NoError(t, err)
	}

	users, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 5)
	for i, u := range users {
		assert.Equal(t, fmt.Sprintf("user%d@example.com", i), u.Email)
	}
}

func TestMemoryCredentialStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCredentialStore()

	// Create credential
	cred, err := store.Create(ctx, "user-1", CredentialData{ID: "cred-a", Type: "public-key"})
	require.NoError(t, err)
	assert.NotEmpty(t, cred.ID)
	assert.Equal(t, "user-1", cred.UserID)
	assert.Equal(t, "cred-a", cred.Data.ID)
	assert.False(t, cred.CreatedAt.IsZero())

	// Lookup by (user, credential id)
	found, err := store.GetByUserAndCredentialID(ctx, "user-1", "cred-a")
	require.NoError(t, err)
	assert.Equal(t, cred.ID, found.ID)

	// Wrong credential id
	_, err = store.GetByUserAndCredentialID(ctx, "user-1", "cred-b")
	assert.ErrorIs(t, err, ErrCredentialNotFound)

	// Wrong user
	_, err = store.GetByUserAndCredentialID(ctx, "user-2", "cred-a")
	assert.ErrorIs(t, err, ErrCredentialNotFound)

	// Duplicate pairing
	_, err = store.Create(ctx, "user-1", CredentialData{ID: "cred-a"})
	assert.ErrorIs(t, err, ErrCredentialExists)

	// Same ceremony id under a different user is a distinct record
	_, err = store.Create(ctx, "user-2", CredentialData{ID: "cred-a"})
	require.NoError(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Clear
	store.Clear()
	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryCredentialStore_FirstByUser(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCredentialStore()

	_, err := store.FirstByUser(ctx, "user-1")
	assert.ErrorIs(t, err, ErrCredentialNotFound)

	first, err := store.Create(ctx, "user-1", CredentialData{ID: "cred-a"})
	require.NoError(t, err)
	_, err = store.Create(ctx, "user-1", CredentialData{ID: "cred-b"})
	require.NoError(t, err)

	// The first registered credential wins.
	got, err := store.FirstByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "cred-a", got.Data.ID)

	n, err := store.CountForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = store.CountForUser(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
