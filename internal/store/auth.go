package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MyLuong909/danh-sach-cong-viec/internal/model"
)

// federatedIdentities are the fixed identities the simulated external
// providers hand back. No real federation occurs; logging in through a
// provider always yields that provider's one identity.
var federatedIdentities = map[model.Provider]model.User{
	model.ProviderGoogle: {
		ID:        "google-104859372615873920417",
		Name:      "Minh Nguyễn",
		Email:     "minh.nguyen.demo@gmail.com",
		AvatarURL: "https://lh3.googleusercontent.com/a/default-user=s96-c",
		Provider:  model.ProviderGoogle,
	},
	model.ProviderGitHub: {
		ID:        "github-58214073",
		Name:      "minhng-dev",
		Email:     "58214073+minhng-dev@users.noreply.github.com",
		AvatarURL: "https://avatars.githubusercontent.com/u/58214073?v=4",
		Provider:  model.ProviderGitHub,
	},
}

// Register creates a password-based account. It fails with
// model.ErrUsernameTaken when the handle (compared case-insensitively)
// already belongs to an existing credential record. On success the
// public identity view is returned; the secret never leaves the store.
func (s *Service) Register(ctx context.Context, username, password string) (model.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.wait(ctx)

	username = strings.TrimSpace(username)

	all := readCollection[model.Credential](ctx, s, usersKey)
	for _, c := range all {
		if strings.EqualFold(c.Username, username) {
			return model.User{}, model.ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hashing password: %w", err)
	}

	cred := model.Credential{
		User: model.User{
			ID:       uuid.New().String(),
			Name:     username,
			Email:    username + "@congviec.local",
			Provider: model.ProviderPassword,
		},
		Username: username,
		Secret:   string(hash),
	}

	all = append(all, cred)
	if err := writeCollection(ctx, s, usersKey, all); err != nil {
		return model.User{}, err
	}

	s.logger.WithField("user_id", cred.ID).Info("account registered")
	return cred.PublicUser(), nil
}

// Login authenticates against the named provider. The password
// provider requires a stored credential record matching both handle
// and secret and fails with model.ErrInvalidCredentials otherwise; the
// federated providers return their fixed simulated identities without
// consulting the credential collection.
func (s *Service) Login(ctx context.Context, provider model.Provider, username, password string) (model.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.wait(ctx)

	switch provider {
	case model.ProviderPassword:
		username = strings.TrimSpace(username)
		for _, c := range readCollection[model.Credential](ctx, s, usersKey) {
			if !strings.EqualFold(c.Username, username) {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(password)) == nil {
				return c.PublicUser(), nil
			}
			break
		}
		return model.User{}, model.ErrInvalidCredentials

	case model.ProviderGoogle, model.ProviderGitHub:
		return federatedIdentities[provider], nil

	default:
		return model.User{}, model.ErrUnknownProvider
	}
}
