package domain

import "slices"

// DefaultCategory is the reserved bucket newly discovered mods land in. It
// always exists and can neither be renamed nor deleted.
const DefaultCategory = "Unassigned"

// GameConfig is the full set of known mods for one game installation plus the
// user-defined categories. Categories are purely organizational; they carry no
// ordering semantics for the engine. Every mod belongs to exactly one category.
type GameConfig struct {
	Game          string              `json:"game"`
	Mods          map[string]*Mod     `json:"mods"`
	Categories    map[string][]string `json:"categories"`
	CategoryOrder []string            `json:"category_order"`
}

// NewGameConfig returns an empty config for the given game key with the
// default category in place.
func NewGameConfig(game string) *GameConfig {
	return &GameConfig{
		Game:          game,
		Mods:          make(map[string]*Mod),
		Categories:    map[string][]string{DefaultCategory: nil},
		CategoryOrder: []string{DefaultCategory},
	}
}

// Normalize repairs a config loaded from disk: nil maps become empty, the
// default category is reinstated, and category members pointing at mods that
// no longer exist are dropped.
func (c *GameConfig) Normalize() {
	if c.Mods == nil {
		c.Mods = make(map[string]*Mod)
	}
	if c.Categories == nil {
		c.Categories = make(map[string][]string)
	}
	if _, ok := c.Categories[DefaultCategory]; !ok {
		c.Categories[DefaultCategory] = nil
	}
	if !slices.Contains(c.CategoryOrder, DefaultCategory) {
		c.CategoryOrder = append([]string{DefaultCategory}, c.CategoryOrder...)
	}
	for name, ids := range c.Categories {
		kept := ids[:0]
		for _, id := range ids {
			if _, ok := c.Mods[id]; ok {
				kept = append(kept, id)
			}
		}
		c.Categories[name] = kept
	}
	// Mods missing from every category go back to the default bucket.
	for id := range c.Mods {
		if c.CategoryOf(id) == "" {
			c.Categories[DefaultCategory] = append(c.Categories[DefaultCategory], id)
		}
	}
}

// Mod returns the mod with the given id.
func (c *GameConfig) Mod(id string) (*Mod, bool) {
	m, ok := c.Mods[id]
	return m, ok
}

// CategoryOf returns the name of the category holding id, or "".
func (c *GameConfig) CategoryOf(id string) string {
	for name, ids := range c.Categories {
		if slices.Contains(ids, id) {
			return name
		}
	}
	return ""
}

// InsertMod adds or replaces a mod. New mods land at the end of the default
// category; a replaced mod keeps its category slot.
func (c *GameConfig) InsertMod(m *Mod) {
	if _, known := c.Mods[m.ID]; !known || c.CategoryOf(m.ID) == "" {
		c.Categories[DefaultCategory] = append(c.Categories[DefaultCategory], m.ID)
	}
	c.Mods[m.ID] = m
}

// RemoveMod deletes a mod and its category membership.
func (c *GameConfig) RemoveMod(id string) {
	delete(c.Mods, id)
	for name, ids := range c.Categories {
		if i := slices.Index(ids, id); i >= 0 {
			c.Categories[name] = slices.Delete(ids, i, i+1)
			return
		}
	}
}

// SetChecked flips the persisted user checkbox. Mods the engine loads
// unconditionally ignore the checkbox but the recorded preference is kept.
func (c *GameConfig) SetChecked(id string, checked bool) error {
	m, ok := c.Mods[id]
	if !ok {
		return ErrModNotFound
	}
	m.Checked = checked
	return nil
}

// CreateCategory adds an empty category at the end of the display order.
func (c *GameConfig) CreateCategory(name string) error {
	if _, exists := c.Categories[name]; exists {
		return ErrDuplicateCategory
	}
	c.Categories[name] = nil
	c.CategoryOrder = append(c.CategoryOrder, name)
	return nil
}

// RenameCategory renames a category in place, keeping its members and its
// position in the display order.
func (c *GameConfig) RenameCategory(oldName, newName string) error {
	if oldName == DefaultCategory {
		return ErrProtectedCategory
	}
	ids, ok := c.Categories[oldName]
	if !ok {
		return ErrCategoryNotFound
	}
	if _, exists := c.Categories[newName]; exists {
		return ErrDuplicateCategory
	}
	c.Categories[newName] = ids
	delete(c.Categories, oldName)
	if i := slices.Index(c.CategoryOrder, oldName); i >= 0 {
		c.CategoryOrder[i] = newName
	}
	return nil
}

// DeleteCategory removes a category; its members move to the end of the
// default category.
func (c *GameConfig) DeleteCategory(name string) error {
	if name == DefaultCategory {
		return ErrProtectedCategory
	}
	ids, ok := c.Categories[name]
	if !ok {
		return ErrCategoryNotFound
	}
	c.Categories[DefaultCategory] = append(c.Categories[DefaultCategory], ids...)
	delete(c.Categories, name)
	if i := slices.Index(c.CategoryOrder, name); i >= 0 {
		c.CategoryOrder = slices.Delete(c.CategoryOrder, i, i+1)
	}
	return nil
}

// MoveToCategory moves one mod to the end of the given category.
func (c *GameConfig) MoveToCategory(id, category string) error {
	if _, ok := c.Mods[id]; !ok {
		return ErrModNotFound
	}
	if _, ok := c.Categories[category]; !ok {
		return ErrCategoryNotFound
	}
	for name, ids := range c.Categories {
		if i := slices.Index(ids, id); i >= 0 {
			if name == category {
				return nil
			}
			c.Categories[name] = slices.Delete(ids, i, i+1)
			break
		}
	}
	c.Categories[category] = append(c.Categories[category], id)
	return nil
}

// EnabledByType returns the enabled mods of the given pack type, in map order.
func (c *GameConfig) EnabledByType(t PackType) []*Mod {
	var out []*Mod
	for _, m := range c.Mods {
		if m.PackType == t && m.Enabled() {
			out = append(out, m)
		}
	}
	return out
}
