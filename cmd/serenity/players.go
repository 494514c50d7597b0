package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/tui/styles"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List external players and whether they are installed",
	Args:  cobra.NoArgs,
	RunE:  playersRun,
}

func playersRun(cmd *cobra.Command, args []string) error {
	prefs := app.prefs.Snapshot()
	selected, _ := domain.ParsePlayerID(prefs.SelectedExternalPlayer)

	mode := "internal player (mpv)"
	if prefs.ExternalPlayerEnabled {
		mode = "external player"
	}
	fmt.Println(styles.DimStyle.Render("Playing with: " + mode))

	for _, id := range domain.KnownPlayers() {
		marker := " "
		if id == selected {
			marker = styles.AccentStyle.Render("*")
		}
		status := styles.ErrorStyle.Render("not found")
		if app.resolver.Available(id) {
			status = styles.SuccessStyle.Render("available")
		}
		fmt.Printf("%s %s %s\n", marker, styles.Pad(string(id), 10), status)
	}
	return nil
}
