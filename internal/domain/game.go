package domain

// Capabilities describes what the launch protocol of one title supports.
// Keeping these as a declarative table (rather than branching on game keys
// throughout the code) lets each policy combination be tested in isolation.
type Capabilities struct {
	// SupportsExcludeCommand: the script grammar accepts explicit
	// exclude_pack_file statements for disabled movie packs. Titles without
	// it rely on physically masking those packs via a masks directory.
	SupportsExcludeCommand bool
	// RequiresUTF16LE: the engine only reads its user script when the file is
	// encoded as UTF-16 little-endian. Later titles read platform-native text.
	RequiresUTF16LE bool
	// SupportsContentLoading: packs can be loaded straight out of per-item
	// Steam Workshop content directories.
	SupportsContentLoading bool
}

// GameDef describes one supported title.
type GameDef struct {
	Key        string // stable config key, e.g. "warhammer3"
	Name       string // display name
	SteamAppID string // Steam application id, used to find installs and workshop content
	ScriptFile string // file name of the launch script the engine reads
	Capabilities
}

// modernCaps covers every title from the second engine generation onward.
var modernCaps = Capabilities{
	SupportsExcludeCommand: true,
	RequiresUTF16LE:        false,
	SupportsContentLoading: true,
}

// legacyCaps covers the warscape titles that predate the exclude command.
var legacyCaps = Capabilities{
	SupportsExcludeCommand: false,
	RequiresUTF16LE:        true,
	SupportsContentLoading: false,
}

// games lists every supported title, oldest first.
var games = []GameDef{
	{Key: "empire", Name: "Empire: Total War", SteamAppID: "10500", ScriptFile: "user.empire_script.txt", Capabilities: legacyCaps},
	{Key: "napoleon", Name: "Napoleon: Total War", SteamAppID: "34030", ScriptFile: "user.napoleon_script.txt", Capabilities: legacyCaps},
	{Key: "shogun2", Name: "Total War: Shogun 2", SteamAppID: "34330", ScriptFile: "user.shogun2_script.txt", Capabilities: legacyCaps},
	{Key: "rome2", Name: "Total War: Rome II", SteamAppID: "214950", ScriptFile: "used_mods.txt", Capabilities: modernCaps},
	{Key: "attila", Name: "Total War: Attila", SteamAppID: "325610", ScriptFile: "used_mods.txt", Capabilities: modernCaps},
	{Key: "warhammer", Name: "Total War: Warhammer", SteamAppID: "364360", ScriptFile: "used_mods.txt", Capabilities: modernCaps},
	{Key: "warhammer2", Name: "Total War: Warhammer II", SteamAppID: "594570", ScriptFile: "used_mods.txt", Capabilities: modernCaps},
	{Key: "thrones", Name: "Thrones of Britannia", SteamAppID: "712100", ScriptFile: "used_mods.txt", Capabilities: modernCaps},
	{Key: "threekingdoms", Name: "Total War: Three Kingdoms", SteamAppID: "779340", ScriptFile: "used_mods.txt", Capabilities: modernCaps},
	{Key: "troy", Name: "A Total War Saga: Troy", SteamAppID: "1158310", ScriptFile: "used_mods.txt", Capabilities: modernCaps},
	{Key: "warhammer3", Name: "Total War: Warhammer III", SteamAppID: "1142710", ScriptFile: "used_mods.txt", Capabilities: modernCaps},
	{Key: "pharaoh", Name: "Total War: Pharaoh", SteamAppID: "1937780", ScriptFile: "used_mods.txt", Capabilities: modernCaps},
}

// Games returns all supported titles, oldest first.
func Games() []GameDef {
	out := make([]GameDef, len(games))
	copy(out, games)
	return out
}

// GameByKey looks a title up by its config key.
func GameByKey(key string) (GameDef, error) {
	for _, g := range games {
		if g.Key == key {
			return g, nil
		}
	}
	return GameDef{}, ErrGameNotFound
}

// GameByAppID looks a title up by its Steam application id.
func GameByAppID(appID string) (GameDef, bool) {
	for _, g := range games {
		if g.SteamAppID == appID {
			return g, true
		}
	}
	return GameDef{}, false
}
