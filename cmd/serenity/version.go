package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationPrefsOnly: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("serenity %s\n", Version)
	},
}
