package root

import "github.com/spf13/cobra"

// RootCmd is the top-level assetctl command. Subcommands register themselves
// onto it from main.
var RootCmd = &cobra.Command{
	Use:   "assetctl",
	Short: "IT asset inventory CLI",
	Long:  "Command line interface for the IT asset inventory API",
}
