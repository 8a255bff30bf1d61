// Package credential stores GetAlts API tokens for CLI use.
//
// Tokens are kept as JSON files in a per-user config directory with
// owner-only permissions. Multiple named profiles are supported so a
// user can switch between accounts:
//
//	store, err := credential.NewFileStore("") // ~/.config/getalts/credentials/
//	cred, err := store.Get(ctx, "default")
package credential

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no credential exists for a profile.
var ErrNotFound = errors.New("credential not found")

// Credential is a stored API token plus bookkeeping metadata.
type Credential struct {
	Profile string    `json:"profile"`
	Token   string    `json:"token"`
	Label   string    `json:"label,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// Store is the interface for credential storage backends.
type Store interface {
	// Get retrieves the credential for a profile.
	// Returns ErrNotFound if no credential is stored.
	Get(ctx context.Context, profile string) (*Credential, error)

	// Set stores a credential under its profile name.
	Set(ctx context.Context, cred *Credential) error

	// Delete removes a profile's credential. Deleting a missing
	// profile is not an error.
	Delete(ctx context.Context, profile string) error

	// List returns the stored profile names.
	List(ctx context.Context) ([]string, error)
}

// DefaultProfile is the profile used when none is named.
const DefaultProfile = "default"

// New creates a credential for the given profile and token.
func New(profile, token, label string) *Credential {
	if profile == "" {
		profile = DefaultProfile
	}
	return &Credential{
		Profile: profile,
		Token:   token,
		Label:   label,
		SavedAt: time.Now(),
	}
}
