// Package team stores and retrieves the user's chosen team affiliation.
package team

import (
	"context"

	"github.com/clawsandpaws/pawsd/internal/adapters/kv"
	"github.com/clawsandpaws/pawsd/internal/domain/model"
)

const key = "userTeam"

// Preference persists the single team choice for this device.
type Preference struct {
	store kv.Store
}

// New creates a Preference over store.
func New(store kv.Store) *Preference {
	return &Preference{store: store}
}

// Get returns the stored team and whether one is set. A stored value that
// is not a valid team reads as unset, never as an error; only store
// failures propagate.
func (p *Preference) Get(ctx context.Context) (model.Team, bool, error) {
	raw, ok, err := p.store.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	t, valid := model.ParseTeam(raw)
	if !valid {
		return "", false, nil
	}
	return t, true, nil
}

// Set persists the team, overwriting unconditionally.
func (p *Preference) Set(ctx context.Context, t model.Team) error {
	return p.store.Set(ctx, key, string(t))
}

// Clear removes the stored choice. Used by account deletion.
func (p *Preference) Clear(ctx context.Context) error {
	return p.store.Remove(ctx, key)
}
