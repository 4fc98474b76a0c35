// Package core implements the load order engine: it owns the canonical mod
// registry for one game, derives the deterministic ordering of enabled mods,
// compiles that ordering into the launch directives the game engine reads,
// and provides the shareable-order interchange and profile snapshots.
package core

import (
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"twmm/internal/domain"
	"twmm/internal/pack"
	"twmm/internal/source/steam"
	"twmm/internal/storage/config"
	"twmm/internal/storage/db"
	"twmm/internal/storage/extract"
	"twmm/internal/workshop"
)

// SessionConfig holds the dependencies and directories for a session.
type SessionConfig struct {
	ConfigDir string // directory for settings.yaml
	DataDir   string // directory for per-game documents, the metadata db, and the extraction tree

	Opener   pack.Opener       // nil means classify packs by header only
	Provider workshop.Provider // nil disables the network metadata refresh
	Logger   *zap.Logger       // nil means no logging
}

// Session is the explicit context handle for one game: the game definition,
// its owned mod registry, and its owned load order. All engine operations go
// through it; there is no ambient global state, so multiple sessions can
// coexist without cross-talk.
//
// GameConfig and LoadOrder each sit behind their own reader/writer lock.
// Locks are never held across file I/O; callers serialize logical actions
// (mutate, then resolve, then compile/export) themselves.
type Session struct {
	game     domain.GameDef
	settings *config.Settings

	cfgMu sync.RWMutex
	cfg   *domain.GameConfig

	orderMu sync.RWMutex
	order   domain.LoadOrder
	packs   map[string]*pack.Pack // transient, rebuilt by Resolve, never persisted

	db       *db.Cache
	extract  *extract.Tree
	opener   pack.Opener
	provider workshop.Provider
	worker   *Worker
	logger   *zap.Logger

	configDir string
	dataDir   string
}

// NewSession loads the persisted state for one game and starts the session's
// background worker.
func NewSession(gameKey string, cfg SessionConfig) (*Session, error) {
	game, err := domain.GameByKey(gameKey)
	if err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	cache, err := db.Open(filepath.Join(cfg.DataDir, "twmm.db"))
	if err != nil {
		return nil, fmt.Errorf("opening metadata cache: %w", err)
	}

	gameCfg, err := config.LoadGameConfig(cfg.DataDir, gameKey)
	if err != nil {
		cache.Close()
		return nil, fmt.Errorf("loading mod registry: %w", err)
	}

	order, err := config.LoadOrder(cfg.DataDir, gameKey)
	if err != nil {
		cache.Close()
		return nil, fmt.Errorf("loading load order: %w", err)
	}

	opener := cfg.Opener
	if opener == nil {
		opener = pack.NewHeaderOpener()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		game:      game,
		settings:  settings,
		cfg:       gameCfg,
		order:     order,
		packs:     make(map[string]*pack.Pack),
		db:        cache,
		extract:   extract.New(filepath.Join(cfg.DataDir, "extract")),
		opener:    opener,
		provider:  cfg.Provider,
		worker:    NewWorker(),
		logger:    logger,
		configDir: cfg.ConfigDir,
		dataDir:   cfg.DataDir,
	}, nil
}

// Close stops the worker and releases the metadata cache.
func (s *Session) Close() error {
	s.worker.Close()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Game returns the session's game definition.
func (s *Session) Game() domain.GameDef {
	return s.game
}

// Settings returns the loaded application settings.
func (s *Session) Settings() *config.Settings {
	return s.settings
}

// InstallPath returns the configured game install directory, or "".
func (s *Session) InstallPath() string {
	return s.settings.Game(s.game.Key).InstallPath
}

// DataPath returns the game's own pack directory (<install>/data), or "".
func (s *Session) DataPath() string {
	install := s.InstallPath()
	if install == "" {
		return ""
	}
	return filepath.Join(install, "data")
}

// SecondaryPath returns the configured secondary mod directory, or "".
func (s *Session) SecondaryPath() string {
	return s.settings.Game(s.game.Key).SecondaryDir
}

// ContentPath returns the workshop content directory for the game: the
// configured override when set, otherwise derived from the install path.
func (s *Session) ContentPath() string {
	gp := s.settings.Game(s.game.Key)
	if gp.ContentDir != "" {
		return gp.ContentDir
	}
	if gp.InstallPath != "" {
		return steam.ContentDir(gp.InstallPath, s.game.SteamAppID)
	}
	return ""
}

// ScriptPath returns where the launch script is written: the configured
// override when set, otherwise the game's script file in its install root.
func (s *Session) ScriptPath() string {
	gp := s.settings.Game(s.game.Key)
	if gp.ScriptPath != "" {
		return gp.ScriptPath
	}
	if gp.InstallPath != "" {
		return filepath.Join(gp.InstallPath, s.game.ScriptFile)
	}
	return ""
}

// Order returns a copy of the current load order.
func (s *Session) Order() domain.LoadOrder {
	s.orderMu.RLock()
	defer s.orderMu.RUnlock()
	return s.order.Clone()
}

// Mod returns a copy of one mod from the registry.
func (s *Session) Mod(id string) (domain.Mod, bool) {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	m, ok := s.cfg.Mods[id]
	if !ok {
		return domain.Mod{}, false
	}
	return *m, true
}

// CategoryGroup is one category with its member mods in category order.
type CategoryGroup struct {
	Name string
	Mods []domain.Mod
}

// CategorizedMods returns every category in display order with copies of its
// member mods.
func (s *Session) CategorizedMods() []CategoryGroup {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()

	groups := make([]CategoryGroup, 0, len(s.cfg.CategoryOrder))
	for _, name := range s.cfg.CategoryOrder {
		group := CategoryGroup{Name: name}
		for _, id := range s.cfg.Categories[name] {
			if m, ok := s.cfg.Mods[id]; ok {
				group.Mods = append(group.Mods, *m)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// Packs returns the transient container cache as of the last resolve. The
// returned map is a copy; the packs themselves are shared and read-only.
func (s *Session) Packs() map[string]*pack.Pack {
	s.orderMu.RLock()
	defer s.orderMu.RUnlock()
	out := make(map[string]*pack.Pack, len(s.packs))
	for id, p := range s.packs {
		out[id] = p
	}
	return out
}

// SaveConfig persists the mod registry document.
func (s *Session) SaveConfig() error {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return config.SaveGameConfig(s.dataDir, s.cfg)
}

// SaveOrder persists the load order document.
func (s *Session) SaveOrder() error {
	s.orderMu.RLock()
	defer s.orderMu.RUnlock()
	return config.SaveOrder(s.dataDir, s.game.Key, s.order)
}

// SaveSettings persists the application settings.
func (s *Session) SaveSettings() error {
	return s.settings.Save(s.configDir)
}
