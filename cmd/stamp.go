package cmd

import (
	"github.com/spf13/cobra"
	"github.com/verstamp/verstamp/internal/logger"
	"github.com/verstamp/verstamp/internal/orchestrator"
)

// newStampCmd creates the stamp command
func newStampCmd(c *container) *cobra.Command {
	var (
		stampFile   string
		stampDryRun bool
		stampQuiet  bool
		stampDebug  bool
	)
	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Write the current git version into the target file",
		Long: `Stamp the target file with the version of the working repository.

The version comes from git describe --tags. When the description
carries a commit count and hash, everything after the first hyphen is
joined with plus signs so the result stays a valid semantic version:

  v1.2.3-5-gabcdef  ->  v1.2.3-5+gabcdef

Every line starting with the configured marker is replaced in place.
All other lines are left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logger.New(stampDebug)
			defer func() { _ = log.Sync() }()
			describer, err := c.describer()
			if err != nil {
				return err
			}
			orch := orchestrator.NewStampOrchestrator(describer, c.fsRepo, log)
			cfg := orchestrator.StampConfig{
				File:        stampFile,
				Marker:      c.cfg.Marker,
				DryRun:      stampDryRun,
				Quiet:       stampQuiet,
				LockTimeout: c.cfg.Lock.Timeout,
			}
			return orch.Execute(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&stampFile, "file", "f", c.cfg.File, "Target file to stamp")
	cmd.Flags().BoolVar(&stampDryRun, "dry-run", false, "Run without writing the file")
	cmd.Flags().BoolVarP(&stampQuiet, "quiet", "q", false, "Suppress version output")
	cmd.Flags().BoolVar(&stampDebug, "debug", false, "Enable debug logging")
	return cmd
}
