package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VuDung/serenity/internal/tui/styles"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show or change settings",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationPrefsOnly: "true"},
	RunE:        configShowRun,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print every setting and the config file path",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationPrefsOnly: "true"},
	RunE:        configShowRun,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting and save it",
	Example: `  serenity config set external_player true
  serenity config set serenity_external_player_filter vlc
  serenity config set external_player_continuous_playback false`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{annotationPrefsOnly: "true"},
	RunE:        configSetRun,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func configShowRun(cmd *cobra.Command, args []string) error {
	fmt.Println(styles.DimStyle.Render("# " + app.prefs.Path()))

	entries := app.prefs.Entries()
	keyWidth := 0
	for _, e := range entries {
		keyWidth = max(keyWidth, len(e.Key))
	}
	for _, e := range entries {
		fmt.Printf("%s  %s\n", styles.AccentStyle.Render(styles.Pad(e.Key, keyWidth)), e.Value)
	}
	return nil
}

func configSetRun(cmd *cobra.Command, args []string) error {
	if err := app.prefs.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := app.prefs.Save(); err != nil {
		return err
	}
	app.logger.Info("setting changed", "key", args[0], "value", args[1])
	fmt.Printf("Saved %s to %s\n", args[0], app.prefs.Path())
	return nil
}
