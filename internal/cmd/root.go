// Package cmd provides the sqfpack command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigmundklaa/sqfpack/internal/config"
	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
	"github.com/sigmundklaa/sqfpack/internal/output"
)

// GlobalConfig holds CLI-wide flag values. It is populated by the root
// command's flags and passed explicitly into every sub-command constructor.
type GlobalConfig struct {
	// ConfigFlag is the raw --config value.
	ConfigFlag string

	// OutputFlag is the raw --output value.
	OutputFlag string

	Verbose    bool
	Timestamps bool
}

// NewRootCmd creates the root command for the sqfpack CLI.
func NewRootCmd() *cobra.Command {
	cfg := &GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "sqfpack",
		Short: "Package SQF script trees into mod build trees",
		Long: `sqfpack packages a tree of SQF script directories into a build tree
ready for addon packing.

Every directory becomes a module with its own naming tag. Sources are
rewritten with #include directives for the macro files of their module and
its ancestors, and each package unit gets one aggregate config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg := output.LogConfig{Verbose: cfg.Verbose}
			if cmd.Flags().Changed("timestamps") {
				logCfg.Timestamps = output.BoolPtr(cfg.Timestamps)
			}
			output.SetupLogging(logCfg)
			return nil
		},
	}

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %s", oerrors.ErrUsage, err)
	})

	rootCmd.PersistentFlags().StringVarP(&cfg.ConfigFlag, "config", "c", "",
		"Path to the project file (env: "+config.EnvConfig+")")
	rootCmd.PersistentFlags().StringVar(&cfg.OutputFlag, "output", "",
		"Export directory, removed and recreated on build (env: "+config.EnvOutput+")")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.Timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewBuildCmd(cfg))
	rootCmd.AddCommand(NewTreeCmd(cfg))
	rootCmd.AddCommand(NewConfigCmd(cfg))
	rootCmd.AddCommand(NewDiffCmd(cfg))
	rootCmd.AddCommand(NewVetCmd(cfg))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
