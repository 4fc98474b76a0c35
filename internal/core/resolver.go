package core

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"twmm/internal/domain"
	"twmm/internal/pack"
)

// orderEntry is the sortable view of one enabled mod during resolution.
type orderEntry struct {
	id       string
	fileName string
	path     string
}

// Resolve recomputes the load order from the current registry.
//
// Movies are always rebuilt from scratch and sorted by primary file name;
// they are never user-orderable. In automatic mode the mods list is rebuilt
// the same way. In manual mode the existing order is preserved: ids no longer
// enabled are dropped and newly enabled ids are appended at the end in id
// order, never interleaved.
//
// Afterwards the container cache is rebuilt for exactly the resolved set (a
// failed open just leaves that id out) and the extraction tree is regenerated
// in mods-then-movies order so later packs override earlier ones.
//
// Resolve is idempotent: with no registry mutation in between, a second call
// yields identical sequences.
func (s *Session) Resolve() error {
	s.cfgMu.RLock()
	var mods, movies []orderEntry
	for id, m := range s.cfg.Mods {
		if !m.Enabled() || len(m.Paths) == 0 {
			continue
		}
		e := orderEntry{id: id, fileName: m.FileName(), path: m.PrimaryPath()}
		switch m.PackType {
		case domain.PackMod:
			mods = append(mods, e)
		case domain.PackMovie:
			movies = append(movies, e)
		}
	}
	s.cfgMu.RUnlock()

	sortByFileName(movies)

	enabled := make(map[string]bool, len(mods))
	paths := make(map[string]string, len(mods)+len(movies))
	for _, e := range mods {
		enabled[e.id] = true
		paths[e.id] = e.path
	}
	for _, e := range movies {
		paths[e.id] = e.path
	}

	s.orderMu.Lock()
	if s.order.Automatic {
		sortByFileName(mods)
		s.order.Mods = entryIDs(mods)
	} else {
		kept := make([]string, 0, len(s.order.Mods))
		inOrder := make(map[string]bool, len(s.order.Mods))
		for _, id := range s.order.Mods {
			if enabled[id] && !inOrder[id] {
				kept = append(kept, id)
				inOrder[id] = true
			}
		}
		var missing []string
		for id := range enabled {
			if !inOrder[id] {
				missing = append(missing, id)
			}
		}
		sort.Strings(missing)
		s.order.Mods = append(kept, missing...)
	}
	s.order.Movies = entryIDs(movies)
	resolved := s.order.IDs()
	s.orderMu.Unlock()

	// Container opens are file I/O and run outside the locks.
	opened := s.openAll(resolved, paths)

	s.orderMu.Lock()
	s.packs = opened
	s.orderMu.Unlock()

	orderedPacks := make([]*pack.Pack, 0, len(resolved))
	for _, id := range resolved {
		if p, ok := opened[id]; ok {
			orderedPacks = append(orderedPacks, p)
		}
	}
	if err := s.extract.Rebuild(s.game.Key, orderedPacks); err != nil {
		return fmt.Errorf("rebuilding extraction tree: %w", err)
	}

	return nil
}

// SetAutomatic switches the ordering mode. Switching to automatic discards
// any manual arrangement on the next resolve.
func (s *Session) SetAutomatic(automatic bool) {
	s.orderMu.Lock()
	s.order.Automatic = automatic
	s.orderMu.Unlock()
}

// MoveMod shifts one mod within the manual order. The mode is forced to
// manual; an automatic order would just snap back.
func (s *Session) MoveMod(from, to int) {
	s.orderMu.Lock()
	s.order.Automatic = false
	s.order.Move(from, to)
	s.orderMu.Unlock()
}

// openAll opens the containers for the given ids in parallel. Failures are
// logged and skipped; one unreadable pack never aborts resolution.
func (s *Session) openAll(ids []string, paths map[string]string) map[string]*pack.Pack {
	type result struct {
		id string
		p  *pack.Pack
	}
	results := make(chan result, len(ids))

	var wg sync.WaitGroup
	for _, id := range ids {
		path := paths[id]
		if path == "" {
			continue
		}
		wg.Add(1)
		go func(id, path string) {
			defer wg.Done()
			p, err := s.opener.Open(path)
			if err != nil {
				s.logger.Debug("container open failed", zap.String("id", id), zap.Error(err))
				return
			}
			results <- result{id: id, p: p}
		}(id, path)
	}
	wg.Wait()
	close(results)

	opened := make(map[string]*pack.Pack, len(ids))
	for r := range results {
		opened[r.id] = r.p
	}
	return opened
}

// sortByFileName orders entries by primary file name, byte-ascending, with
// the id as tiebreak for names that collide.
func sortByFileName(entries []orderEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].fileName != entries[j].fileName {
			return entries[i].fileName < entries[j].fileName
		}
		return entries[i].id < entries[j].id
	})
}

func entryIDs(entries []orderEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids
}
