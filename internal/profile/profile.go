// Package profile stores the per-user display profile, namespaced by user
// identifier. Absence is a valid state with fixed defaults, not an error.
package profile

import (
	"context"
	"fmt"

	"github.com/clawsandpaws/pawsd/internal/adapters/kv"
	"github.com/clawsandpaws/pawsd/internal/domain/model"
)

// Defaults applied for fields that were never saved.
const (
	DefaultUsername = "user"
	DefaultEmail    = "user@example.com"
)

// Record persists profiles as three independent fields per user.
type Record struct {
	store kv.Store
}

// New creates a Record over store.
func New(store kv.Store) *Record {
	return &Record{store: store}
}

func fieldKey(userID, field string) string {
	return fmt.Sprintf("profile.%s.%s", userID, field)
}

// Keys returns the three storage keys for userID, in a fixed order.
func Keys(userID string) [3]string {
	return [3]string{
		fieldKey(userID, "username"),
		fieldKey(userID, "email"),
		fieldKey(userID, "photo"),
	}
}

// Get reads the profile for userID. Missing fields are replaced by the
// documented defaults; a missing photo reads as nil.
func (r *Record) Get(ctx context.Context, userID string) (model.Profile, error) {
	keys := Keys(userID)

	username, ok, err := r.store.Get(ctx, keys[0])
	if err != nil {
		return model.Profile{}, err
	}
	if !ok || username == "" {
		username = DefaultUsername
	}

	email, ok, err := r.store.Get(ctx, keys[1])
	if err != nil {
		return model.Profile{}, err
	}
	if !ok || email == "" {
		email = DefaultEmail
	}

	photo, ok, err := r.store.Get(ctx, keys[2])
	if err != nil {
		return model.Profile{}, err
	}
	p := model.Profile{Username: username, Email: email}
	if ok && photo != "" {
		p.PhotoURI = &photo
	}
	return p, nil
}

// Set writes all three fields in one multi-key write, so later reads
// observe the whole profile from the same save, never a mix of old and new.
// Concurrent saves for the same user are not ordered here; callers must
// serialize if ordering matters.
func (r *Record) Set(ctx context.Context, userID string, p model.Profile) error {
	keys := Keys(userID)
	photo := ""
	if p.PhotoURI != nil {
		photo = *p.PhotoURI
	}
	return r.store.SetMany(ctx, map[string]string{
		keys[0]: p.Username,
		keys[1]: p.Email,
		keys[2]: photo,
	})
}

// Clear removes every field for userID; a following Get returns defaults.
func (r *Record) Clear(ctx context.Context, userID string) error {
	keys := Keys(userID)
	return r.store.Remove(ctx, keys[0], keys[1], keys[2])
}
