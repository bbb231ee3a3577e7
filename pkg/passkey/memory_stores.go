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
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryUserStore is an in-memory implementation of UserStore.
// Lookups are key-indexed and the existence check is atomic with
// insert, so two racing registrations for the same email cannot both
// succeed.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*User
	byID    map[string]*User
	order   []*User
}

// NewMemoryUserStore creates a new in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

// GetByEmail retrieves a user by email.
func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByID retrieves a user by id.
func (s *MemoryUserStore) GetByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Exists reports whether a user with the given email exists.
func (s *MemoryUserStore) Exists(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

// Create creates a new user with the given email and name.
func (s *MemoryUserStore) Create(ctx context.Context, email, name string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return nil, ErrUserExists
	}

	user := &User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	s.byEmail[email] = user
	s.byID[user.ID] = user
	s.order = append(s.order, user)

	return user, nil
}

// List returns all users in insertion order.
func (s *MemoryUserStore) List(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*User, len(s.order))
	copy(users, s.order)
	return users, nil
}

// Count returns the number of users in the store.
func (s *MemoryUserStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// Clear removes all users from the store.
func (s *MemoryUserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEmail = make(map[string]*User)
	s.byID = make(map[string]*User)
	s.order = nil
}

type credentialKey struct {
	userID       string
	credentialID string
}

// MemoryCredentialStore is an in-memory implementation of
// CredentialStore. The (userID, credential id) pairing is indexed so
// the duplicate check is atomic with insert. Per-user lists keep
// insertion order; FirstByUser returns the earliest registered record.
type MemoryCredentialStore struct {
	mu     sync.RWMutex
	byKey  map[credentialKey]*Credential
	byUser map[string][]*Credential
}

// NewMemoryCredentialStore creates a new in-memory credential store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		byKey:  make(map[credentialKey]*Credential),
		byUser: make(map[string][]*Credential),
	}
}

// GetByUserAndCredentialID retrieves the credential bound to the user
// with the given ceremony credential identifier.
func (s *MemoryCredentialStore) GetByUserAndCredentialID(ctx context.Context, userID, credentialID string) (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.byKey[credentialKey{userID: userID, credentialID: credentialID}]
	if !ok {
		return nil, ErrCredentialNotFound
	}
	return cred, nil
}

// FirstByUser retrieves the user's first registered credential.
func (s *MemoryCredentialStore) FirstByUser(ctx context.Context, userID string) (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds := s.byUser[userID]
	if len(creds) == 0 {
		return nil, ErrCredentialNotFound
	}
	return creds[0], nil
}

// Create stores a new credential for the user.
func (s *MemoryCredentialStore) Create(ctx context.Context, userID string, data CredentialData) (*Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := credentialKey{userID: userID, credentialID: data.ID}
	if _, ok := s.byKey[key]; ok {
		return nil, ErrCredentialExists
	}

	cred := &Credential{
		ID:        uuid.NewString(),
		UserID:    userID,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	s.byKey[key] = cred
	s.byUser[userID] = append(s.byUser[userID], cred)

	return cred, nil
}

// CountForUser returns the number of credentials bound to the user.
func (s *MemoryCredentialStore) CountForUser(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser[userID]), nil
}

// Count returns the total number of credentials in the store.
func (s *MemoryCredentialStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey), nil
}

// Clear removes all credentials from the store.
func (s *MemoryCredentialStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey = make(map[credentialKey]*Credential)
	s.byUser = make(map[string][]*Credential)
}
