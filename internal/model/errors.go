package model

import "errors"

// Expected auth failure conditions. Callers match these with errors.Is
// and present them to the user; they are never fatal.
var (
	// ErrUsernameTaken is returned by registration when the requested
	// handle already belongs to an existing credential record.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned by password login when no
	// stored record matches both handle and secret.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnknownProvider is returned by login for a provider this
	// system does not simulate.
	ErrUnknownProvider = errors.New("unknown identity provider")
)
