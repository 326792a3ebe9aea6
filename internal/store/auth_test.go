package store

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	alice, err := svc.Register(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if alice.ID == "" {
		t.Error("expected a generated user ID")
	}
	if alice.Name != "alice" {
		t.Errorf("Name = %q, want %q", alice.Name, "alice")
	}
	if alice.Provider != model.ProviderPassword {
		t.Errorf("Provider = %q, want %q", alice.Provider, model.ProviderPassword)
	}

	// Re-registering the same handle fails regardless of password.
	if _, err := svc.Register(ctx, "alice", "other"); !errors.Is(err, model.ErrUsernameTaken) {
		t.Errorf("duplicate register: got %v, want ErrUsernameTaken", err)
	}
	if _, err := svc.Register(ctx, "ALICE", "other"); !errors.Is(err, model.ErrUsernameTaken) {
		t.Errorf("case-variant register: got %v, want ErrUsernameTaken", err)
	}

	// Wrong password is rejected.
	if _, err := svc.Login(ctx, model.ProviderPassword, "alice", "wrong"); !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}

	// Unknown handle is rejected with the same condition.
	if _, err := svc.Login(ctx, model.ProviderPassword, "bob", "pw1"); !errors.Is(err, model.ErrInvalidCredentials) {
		t.Errorf("unknown handle: got %v, want ErrInvalidCredentials", err)
	}

	// Correct credentials return the registered identity.
	got, err := svc.Login(ctx, model.ProviderPassword, "alice", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !reflect.DeepEqual(got, alice) {
		t.Errorf("Login returned %+v, want %+v", got, alice)
	}
}

func TestStoredSecretIsNotPlaintext(t *testing.T) {
	ctx := context.Background()
	svc, backend := newTestService(t)

	if _, err := svc.Register(ctx, "alice", "pw1-very-secret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	blob, found, err := backend.Get(ctx, usersKey)
	if err != nil || !found {
		t.Fatalf("reading users blob: found=%v err=%v", found, err)
	}
	if strings.Contains(blob, "pw1-very-secret") {
		t.Error("credential blob contains the raw password")
	}
}

func TestFederatedLoginFixedIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.Login(ctx, model.ProviderGoogle, "", "")
	if err != nil {
		t.Fatalf("google login: %v", err)
	}
	second, err := svc.Login(ctx, model.ProviderGoogle, "", "")
	if err != nil {
		t.Fatalf("google login (repeat): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("google identity is not stable across logins")
	}
	if first.Provider != model.ProviderGoogle {
		t.Errorf("Provider = %q, want %q", first.Provider, model.ProviderGoogle)
	}

	github, err := svc.Login(ctx, model.ProviderGitHub, "", "")
	if err != nil {
		t.Fatalf("github login: %v", err)
	}
	if github.ID == first.ID {
		t.Error("github and google must hand back distinct identities")
	}

	if _, err := svc.Login(ctx, model.Provider("myspace"), "", ""); !errors.Is(err, model.ErrUnknownProvider) {
		t.Errorf("unknown provider: got %v, want ErrUnknownProvider", err)
	}
}
