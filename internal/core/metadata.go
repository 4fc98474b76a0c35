package core

import (
	"context"

	"go.uber.org/zap"

	"twmm/internal/workshop"
)

// MetadataResult is the outcome of one background metadata refresh.
type MetadataResult struct {
	Updated int   // mods whose metadata changed
	Err     error // fetch or cache failure; the mod list stays usable either way
}

// refreshMetadata fetches workshop metadata in the background, lands it in
// the cache database, and applies it to the registry. The single result is
// delivered on the returned channel, which is closed afterwards; callers may
// ignore it. A failed fetch is equivalent to "no metadata changes".
func (s *Session) refreshMetadata(ctx context.Context, steamIDs []string) <-chan MetadataResult {
	ch := make(chan MetadataResult, 1)
	go func() {
		defer close(ch)

		items, err := s.provider.FetchItems(ctx, steamIDs)
		if err != nil {
			s.logger.Warn("workshop metadata fetch failed", zap.Error(err))
			ch <- MetadataResult{Err: err}
			return
		}
		if err := s.db.UpsertWorkshopItems(items); err != nil {
			s.logger.Warn("caching workshop metadata failed", zap.Error(err))
			ch <- MetadataResult{Err: err}
			return
		}

		updated := s.applyMetadata(items)
		s.logger.Info("workshop metadata refreshed",
			zap.Int("fetched", len(items)),
			zap.Int("updated", updated))
		ch <- MetadataResult{Updated: updated}
	}()
	return ch
}

// applyCachedMetadata decorates the registry from the cache database, so
// offline runs still show titles and provenance from the last online scan.
func (s *Session) applyCachedMetadata() {
	s.cfgMu.RLock()
	var steamIDs []string
	for _, m := range s.cfg.Mods {
		if m.SteamID != "" {
			steamIDs = append(steamIDs, m.SteamID)
		}
	}
	s.cfgMu.RUnlock()
	if len(steamIDs) == 0 {
		return
	}

	items, err := s.db.GetWorkshopItems(steamIDs)
	if err != nil {
		s.logger.Warn("reading cached workshop metadata failed", zap.Error(err))
		return
	}
	if len(items) == 0 {
		return
	}
	list := make([]workshop.Item, 0, len(items))
	for _, item := range items {
		list = append(list, item)
	}
	s.applyMetadata(list)
}

// applyMetadata copies workshop metadata onto the matching registry entries
// and reports how many changed.
func (s *Session) applyMetadata(items []workshop.Item) int {
	byID := make(map[string]workshop.Item, len(items))
	for _, item := range items {
		byID[item.SteamID] = item
	}

	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()

	updated := 0
	for _, m := range s.cfg.Mods {
		if m.SteamID == "" {
			continue
		}
		item, ok := byID[m.SteamID]
		if !ok {
			continue
		}
		changed := false
		if item.Title != "" && m.Name != item.Title {
			m.Name = item.Title
			changed = true
		}
		if item.Creator != "" && m.Creator != item.Creator {
			m.Creator = item.Creator
			changed = true
		}
		if item.FileSize != 0 && m.FileSize != item.FileSize {
			m.FileSize = item.FileSize
			changed = true
		}
		if !item.TimeCreated.IsZero() && !m.TimeCreated.Equal(item.TimeCreated) {
			m.TimeCreated = item.TimeCreated
			changed = true
		}
		if !item.TimeUpdated.IsZero() && !m.TimeUpdated.Equal(item.TimeUpdated) {
			m.TimeUpdated = item.TimeUpdated
			changed = true
		}
		if changed {
			updated++
		}
	}
	return updated
}
