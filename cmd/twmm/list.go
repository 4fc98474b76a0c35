package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"twmm/internal/core"
	"twmm/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known mods and their load order",
	Long: `List every mod the registry knows for the selected game, grouped by
category, with its slot in the resolved load order.

Examples:
  twmm list --game warhammer3
  twmm list -g rome2 --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// listItem is the JSON shape of one mod row.
type listItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Enabled  bool   `json:"enabled"`
	Position int    `json:"position,omitempty"` // 1-based slot among orderable mods
	Creator  string `json:"creator,omitempty"`
	SteamID  string `json:"steam_id,omitempty"`
}

// collectListItems flattens the registry into display rows, category by
// category, stamping each orderable mod with its 1-based slot in the
// resolved order.
func collectListItems(s *core.Session) []listItem {
	order := s.Order()
	position := make(map[string]int, len(order.Mods))
	for i, id := range order.Mods {
		position[id] = i + 1
	}

	var items []listItem
	for _, group := range s.CategorizedMods() {
		for _, m := range group.Mods {
			items = append(items, listItem{
				ID:       m.ID,
				Name:     m.Name,
				Category: group.Name,
				Type:     m.PackType.String(),
				Location: m.PrimaryLocation().String(),
				Enabled:  m.Enabled(),
				Position: position[m.ID],
				Creator:  m.Creator,
				SteamID:  m.SteamID,
			})
		}
	}
	return items
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	order := s.Order()
	items := collectListItems(s)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if verbose {
		mode := "manual"
		if order.Automatic {
			mode = "automatic"
		}
		fmt.Printf("%s: %s order, %d mod(s)\n\n", s.Game().Name, mode, len(items))
	}

	if len(items) == 0 {
		fmt.Println("No mods known. Run 'twmm refresh' to scan the install locations.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tID\tNAME\tCATEGORY\tTYPE\tLOCATION\tENABLED")
	fmt.Fprintln(w, "---\t--\t----\t--------\t----\t--------\t-------")
	for _, it := range items {
		pos := "-"
		if it.Position > 0 {
			pos = fmt.Sprintf("%d", it.Position)
		} else if it.Enabled && it.Type == domain.PackMovie.String() {
			pos = "M"
		}
		enabled := "no"
		if it.Enabled {
			enabled = colorGreen("yes")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			pos,
			it.ID,
			truncate(it.Name, 40),
			it.Category,
			it.Type,
			it.Location,
			enabled,
		)
	}
	w.Flush()

	if verbose {
		fmt.Printf("\nTotal: %d mod(s)\n", len(items))
	}

	return nil
}

// truncate shortens a string to max runes, appending "..." when it was cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
