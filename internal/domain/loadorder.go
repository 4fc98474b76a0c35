package domain

import "slices"

// LoadOrder is the resolved, sequential list of enabled mods plus the
// separately derived movies list. Mods is user-orderable in manual mode;
// Movies is recomputed from scratch on every resolve and never user-ordered.
type LoadOrder struct {
	Automatic bool     `json:"automatic"`
	Mods      []string `json:"mods"`
	Movies    []string `json:"movies"`
}

// Clone returns a deep copy.
func (o LoadOrder) Clone() LoadOrder {
	return LoadOrder{
		Automatic: o.Automatic,
		Mods:      slices.Clone(o.Mods),
		Movies:    slices.Clone(o.Movies),
	}
}

// IDs returns mods followed by movies, the order downstream consumers process
// packs in.
func (o LoadOrder) IDs() []string {
	out := make([]string, 0, len(o.Mods)+len(o.Movies))
	out = append(out, o.Mods...)
	out = append(out, o.Movies...)
	return out
}

// Move shifts the mod at index from to index to within the orderable list.
// Out-of-range indexes are clamped.
func (o *LoadOrder) Move(from, to int) {
	if from < 0 || from >= len(o.Mods) {
		return
	}
	to = max(0, min(to, len(o.Mods)-1))
	if from == to {
		return
	}
	id := o.Mods[from]
	o.Mods = slices.Delete(o.Mods, from, from+1)
	o.Mods = slices.Insert(o.Mods, to, id)
}

// Profile is a named, durable snapshot of a load order. Immutable once saved
// except by re-saving under the same id.
type Profile struct {
	ID    string    `json:"id"`
	Game  string    `json:"game"`
	Order LoadOrder `json:"load_order"`
}
