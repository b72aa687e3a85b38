// Package tokens stores the client's credential pair (access and refresh
// token) and provides helpers to normalize and inspect access tokens.
package tokens

import (
	"context"
	"strings"
	"sync"
)

// Fixed storage keys of the credential pair.
const (
	AccessTokenKey  = "alpha_token"
	RefreshTokenKey = "alpha_refresh_token"
)

// Store persists the credential pair. An empty string means "absent".
// Implementations must be safe for concurrent use.
type Store interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetTokens(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}

// NormalizeBearer trims token and strips one case-insensitive "Bearer "
// prefix, so that "Bearer abc", "bearer abc" and "abc" all yield "abc".
func NormalizeBearer(token string) string {
	t := strings.TrimSpace(token)
	const prefix = "bearer "
	if len(t) >= len(prefix) && strings.EqualFold(t[:len(prefix)], prefix) {
		return strings.TrimSpace(t[len(prefix):])
	}
	return t
}

// MemoryStore keeps the pair in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) AccessToken(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access, nil
}

func (m *MemoryStore) RefreshToken(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh, nil
}

func (m *MemoryStore) SetTokens(_ context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

// SetAccessToken replaces only the access token.
func (m *MemoryStore) SetAccessToken(access string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	return nil
}
