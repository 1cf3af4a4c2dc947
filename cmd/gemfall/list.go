package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gemfall/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List playable modes",
	Long:  `Shows every registered game mode and its id.`,
	Run:   runList,
}

// modeNotes adds a one-line description per known mode id.
var modeNotes = map[string]string{
	"gems":     "classic, limited moves",
	"gems_zen": "endless, no move limit",
}

func runList(cmd *cobra.Command, args []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes registered.")
		return
	}

	fmt.Println("Playable modes:")
	fmt.Println()

	idWidth := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > idWidth {
			idWidth = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", idWidth, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", idWidth, "--", "-----")
	for _, m := range modes {
		line := fmt.Sprintf("  %-*s  %s", idWidth, m.ID, m.Title)
		if note, ok := modeNotes[m.ID]; ok {
			line += " (" + note + ")"
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Println("Run 'gemfall play <id>' to start one.")
}
