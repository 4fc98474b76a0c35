// Package steam finds Total War installs and their workshop content
// directories by reading Steam's on-disk metadata (Valve KeyValues text
// files). It never talks to Steam itself.
package steam

import (
	"fmt"
	"strings"
)

// VDFMap is a parsed KeyValues structure: nested VDFMaps and string values.
type VDFMap map[string]any

// ParseVDF parses Valve's text KeyValues format and returns the root map.
func ParseVDF(input string) (VDFMap, error) {
	tokens, err := lexVDF(input)
	if err != nil {
		return nil, err
	}

	root := make(VDFMap)
	pos := 0
	for pos < len(tokens) {
		if tokens[pos].kind != tokenString {
			return nil, fmt.Errorf("vdf: expected key, got %q", tokens[pos].text)
		}
		key := tokens[pos].text
		pos++
		if pos >= len(tokens) {
			return nil, fmt.Errorf("vdf: unexpected end after key %q", key)
		}
		switch tokens[pos].kind {
		case tokenOpen:
			pos++
			inner, next, err := parseObject(tokens, pos)
			if err != nil {
				return nil, err
			}
			root[key] = inner
			pos = next
		case tokenString:
			root[key] = tokens[pos].text
			pos++
		default:
			return nil, fmt.Errorf("vdf: unexpected %q after key %q", tokens[pos].text, key)
		}
	}
	return root, nil
}

// parseObject consumes key-value pairs until the matching close brace and
// returns the map plus the position just past it.
func parseObject(tokens []vdfToken, pos int) (VDFMap, int, error) {
	result := make(VDFMap)
	for pos < len(tokens) {
		if tokens[pos].kind == tokenClose {
			return result, pos + 1, nil
		}
		if tokens[pos].kind != tokenString {
			return nil, pos, fmt.Errorf("vdf: expected key, got %q", tokens[pos].text)
		}
		key := tokens[pos].text
		pos++
		if pos >= len(tokens) {
			return nil, pos, fmt.Errorf("vdf: unexpected end after key %q", key)
		}
		switch tokens[pos].kind {
		case tokenOpen:
			inner, next, err := parseObject(tokens, pos+1)
			if err != nil {
				return nil, pos, err
			}
			result[key] = inner
			pos = next
		case tokenString:
			result[key] = tokens[pos].text
			pos++
		default:
			return nil, pos, fmt.Errorf("vdf: unexpected %q after key %q", tokens[pos].text, key)
		}
	}
	return nil, pos, fmt.Errorf("vdf: unterminated object")
}

type tokenKind int

const (
	tokenString tokenKind = iota
	tokenOpen
	tokenClose
)

type vdfToken struct {
	kind tokenKind
	text string
}

// lexVDF splits the input into quoted strings, bare words, and braces.
// Comments (// to end of line) are dropped.
func lexVDF(input string) ([]vdfToken, error) {
	var tokens []vdfToken
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '{':
			tokens = append(tokens, vdfToken{tokenOpen, "{"})
			i++
		case c == '}':
			tokens = append(tokens, vdfToken{tokenClose, "}"})
			i++
		case c == '/' && i+1 < len(input) && input[i+1] == '/':
			for i < len(input) && input[i] != '\n' {
				i++
			}
		case c == '"':
			var sb strings.Builder
			i++
			closed := false
			for i < len(input) {
				if input[i] == '\\' && i+1 < len(input) {
					sb.WriteByte(input[i+1])
					i += 2
					continue
				}
				if input[i] == '"' {
					closed = true
					i++
					break
				}
				sb.WriteByte(input[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("vdf: unclosed quote")
			}
			tokens = append(tokens, vdfToken{tokenString, sb.String()})
		default:
			start := i
			for i < len(input) && !strings.ContainsRune(" \t\r\n{}\"", rune(input[i])) {
				i++
			}
			tokens = append(tokens, vdfToken{tokenString, input[start:i]})
		}
	}
	return tokens, nil
}

// AppManifest holds the fields read from an appmanifest_*.acf file.
type AppManifest struct {
	AppID      string
	Name       string
	InstallDir string
}

// ParseAppManifest parses appmanifest_*.acf content.
func ParseAppManifest(data string) (AppManifest, error) {
	root, err := ParseVDF(data)
	if err != nil {
		return AppManifest{}, err
	}
	state, ok := root["AppState"].(VDFMap)
	if !ok {
		return AppManifest{}, fmt.Errorf("vdf: missing AppState")
	}
	var m AppManifest
	if v, ok := state["appid"].(string); ok {
		m.AppID = v
	}
	if v, ok := state["name"].(string); ok {
		m.Name = v
	}
	if v, ok := state["installdir"].(string); ok {
		m.InstallDir = v
	}
	return m, nil
}

// libraryPaths extracts the library paths from a parsed libraryfolders.vdf
// root. Newer Steam clients key entries "0", "1", ... each with a "path".
func libraryPaths(root VDFMap) []string {
	lf, ok := root["libraryfolders"].(VDFMap)
	if !ok {
		return nil
	}
	var paths []string
	for i := 0; ; i++ {
		entry, ok := lf[fmt.Sprintf("%d", i)].(VDFMap)
		if !ok {
			break
		}
		if p, ok := entry["path"].(string); ok && p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
