package core

import (
	"fmt"

	"twmm/internal/domain"
	"twmm/internal/storage/config"
)

// SaveProfile snapshots the current load order verbatim under id, mods and
// movies both. Re-saving an existing id replaces it.
func (s *Session) SaveProfile(id string) error {
	if id == "" {
		return domain.ErrEmptyProfileName
	}

	s.orderMu.RLock()
	profile := &domain.Profile{
		ID:    id,
		Game:  s.game.Key,
		Order: s.order.Clone(),
	}
	s.orderMu.RUnlock()

	return config.SaveProfile(s.dataDir, profile)
}

// LoadProfile reactivates a snapshot: every checkbox is replaced wholesale
// (everything off, then exactly the snapshot's ids on), the live order is
// replaced, and the mode is forced to manual since a loaded profile is a
// fixed order. The session is re-resolved, which drops snapshot ids that no
// longer exist and re-derives movies.
//
// With suppressSideEffects set the registry and order documents are not
// written back; only the in-memory state needed to proceed to launch changes.
func (s *Session) LoadProfile(id string, suppressSideEffects bool) error {
	profile, err := config.LoadProfile(s.dataDir, s.game.Key, id)
	if err != nil {
		return err
	}

	wanted := make(map[string]bool)
	for _, modID := range profile.Order.IDs() {
		wanted[modID] = true
	}

	s.cfgMu.Lock()
	for modID, m := range s.cfg.Mods {
		m.Checked = wanted[modID]
	}
	s.cfgMu.Unlock()

	s.orderMu.Lock()
	s.order = profile.Order.Clone()
	s.order.Automatic = false
	s.orderMu.Unlock()

	if err := s.Resolve(); err != nil {
		return err
	}

	if suppressSideEffects {
		return nil
	}
	if err := s.SaveConfig(); err != nil {
		return fmt.Errorf("persisting registry after profile load: %w", err)
	}
	if err := s.SaveOrder(); err != nil {
		return fmt.Errorf("persisting order after profile load: %w", err)
	}
	return nil
}

// ListProfiles returns the saved profile ids for the session's game.
func (s *Session) ListProfiles() ([]string, error) {
	return config.ListProfiles(s.dataDir, s.game.Key)
}

// DeleteProfile removes a saved profile.
func (s *Session) DeleteProfile(id string) error {
	return config.DeleteProfile(s.dataDir, s.game.Key, id)
}
