package session

import (
	"reflect"
	"testing"

	"github.com/99designs/keyring"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

func newTestStore() *Store {
	return NewWithKeyring(keyring.NewArrayKeyring(nil))
}

func TestSaveAndCurrent(t *testing.T) {
	s := newTestStore()

	user := model.User{
		ID:       "user-a",
		Name:     "alice",
		Email:    "alice@congviec.local",
		Provider: model.ProviderPassword,
	}
	if err := s.Save(user); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, active, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if !active {
		t.Fatal("expected an active session")
	}
	if !reflect.DeepEqual(got, user) {
		t.Errorf("Current = %+v, want %+v", got, user)
	}
}

func TestCurrentWithoutSession(t *testing.T) {
	s := newTestStore()

	_, active, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if active {
		t.Error("expected no active session in a fresh store")
	}
}

func TestClear(t *testing.T) {
	s := newTestStore()

	if err := s.Save(model.User{ID: "user-a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, active, _ := s.Current(); active {
		t.Error("session still active after Clear")
	}

	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("Clear of empty session: %v", err)
	}
}

func TestCorruptSlotReadsAsSignedOut(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{
		{Key: sessionKey, Data: []byte("{not json")},
	})
	s := NewWithKeyring(ring)

	_, active, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if active {
		t.Error("corrupt session slot must read as signed out")
	}
}

func TestSaveOverwritesPreviousSession(t *testing.T) {
	s := newTestStore()

	if err := s.Save(model.User{ID: "user-a", Name: "alice"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(model.User{ID: "user-b", Name: "bình"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, active, err := s.Current()
	if err != nil || !active {
		t.Fatalf("Current: active=%v err=%v", active, err)
	}
	if got.ID != "user-b" {
		t.Errorf("Current.ID = %q, want user-b", got.ID)
	}
}
