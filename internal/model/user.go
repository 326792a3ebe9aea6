package model

// Provider identifies how a user identity was established.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google"
	ProviderGitHub   Provider = "github"
)

// User is the public identity record, safe to hold in session state
// and to show in the UI. It never carries a credential secret.
type User struct {
	// ID is the unique identifier for this account.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Email is the account's contact address; deadline notification
	// mails are addressed to it.
	Email string `json:"email"`

	// AvatarURL optionally points at a profile image.
	AvatarURL string `json:"avatar_url,omitempty"`

	// Provider records the identity's provenance (use Provider* constants).
	Provider Provider `json:"provider"`
}

// Credential is the stored account record for password-based users.
// It embeds the public identity plus the login handle and the hashed
// secret. Created on registration; never updated or deleted.
type Credential struct {
	User

	// Username is the chosen login handle, unique across accounts.
	Username string `json:"username"`

	// Secret is the bcrypt hash of the account password.
	Secret string `json:"secret"`
}

// PublicUser returns the identity view with the secret withheld.
func (c Credential) PublicUser() User {
	return c.User
}
