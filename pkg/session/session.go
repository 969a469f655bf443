// Package session caches the signed-in identity between CLI invocations,
// standing in for the browser's cookie store. The cache is a convenience:
// losing it only costs a re-login, so reads fail soft.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/naayikhata/khata-go/internal/domain"
	"github.com/naayikhata/khata-go/internal/infrastructure/kvstore"
	"github.com/naayikhata/khata-go/pkg/jwt"
)

const sessionKey = "session:current"

// Session is the persisted sign-in state.
type Session struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email"`
	ShopName    string    `json:"shop_name"`
	SavedAt     time.Time `json:"saved_at"`
}

// Manager stores one session in the key-value state store.
type Manager struct {
	kv kvstore.Store
}

// NewManager builds the manager on any key-value backend.
func NewManager(kv kvstore.Store) *Manager {
	return &Manager{kv: kv}
}

// Save persists the session.
func (m *Manager) Save(ctx context.Context, s Session) error {
	s.SavedAt = time.Now()
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := m.kv.Set(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Load returns the cached session. ErrNoSession when none is stored (or
// the record is unreadable), ErrSessionExpired when the token's exp claim
// has passed — the caller should prompt for a fresh login either way.
func (m *Manager) Load(ctx context.Context) (*Session, error) {
	raw, err := m.kv.Get(ctx, sessionKey)
	if err != nil {
		return nil, domain.ErrNoSession
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.AccessToken == "" {
		return nil, domain.ErrNoSession
	}

	exp, err := jwt.ExpiresAt(s.AccessToken)
	if err == nil && time.Now().After(exp) {
		return nil, domain.ErrSessionExpired
	}
	return &s, nil
}

// Clear forgets the cached session (logout).
func (m *Manager) Clear(ctx context.Context) error {
	return m.kv.Delete(ctx, sessionKey)
}
