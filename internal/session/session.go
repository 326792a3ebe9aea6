// Package session keeps the currently signed-in identity in the OS
// keyring so it survives application restarts on the same machine. It
// holds only the public user view; credential secrets never reach it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

const (
	serviceName = "congviec"
	sessionKey  = "session"
)

// Store wraps a keyring holding the active session slot.
type Store struct {
	ring keyring.Keyring
}

// Open returns a Store backed by the system keyring, falling back to
// an encrypted file under ~/.config/congviec/session.
func Open() (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/congviec/session",
		FilePasswordFunc:         keyring.FixedStringPrompt("congviec-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Store{ring: ring}, nil
}

// NewWithKeyring wraps an existing keyring. Tests hand in an
// array-backed one.
func NewWithKeyring(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Save records user as the active session.
func (s *Store) Save(user model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.ring.Set(keyring.Item{Key: sessionKey, Data: payload}); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Current returns the active session identity, if any. An unreadable
// or corrupt slot reads as signed out.
func (s *Store) Current() (model.User, bool, error) {
	item, err := s.ring.Get(sessionKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("reading session: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(item.Data, &user); err != nil {
		return model.User{}, false, nil
	}
	return user, true, nil
}

// Clear signs the session out. Clearing an absent session succeeds.
func (s *Store) Clear() error {
	err := s.ring.Remove(sessionKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
