package cmd

import (
	"github.com/spf13/cobra"
	"github.com/verstamp/verstamp/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "verstamp",
	Short: "Stamp configuration files with the repository's version",
	Long: `verstamp reads the version of the working repository from git describe
--tags and writes it into a configuration file, replacing every
version assignment in place.`,
	Version:       version.Summary(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}
