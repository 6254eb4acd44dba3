package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigmundklaa/sqfpack/internal/armaconfig"
	"github.com/sigmundklaa/sqfpack/internal/configtree"
	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
	"github.com/sigmundklaa/sqfpack/internal/output"
	"github.com/sigmundklaa/sqfpack/internal/pack"
)

// NewConfigCmd creates the config command.
func NewConfigCmd(cfg *GlobalConfig) *cobra.Command {
	var (
		formatFlag  string
		packageFlag string
		encodedFlag bool
	)

	c := &cobra.Command{
		Use:   "config",
		Short: "Print the aggregate config of every package unit",
		Long: `Export the project into a temporary directory and print the aggregate
config of every package unit, keyed by the config file path relative to
the output directory.

The YAML form can be saved and later compared with 'sqfpack diff'.

Examples:
  sqfpack config
  sqfpack config --package core --encoded
  sqfpack config -f yaml > snapshot.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			format, ok := output.ParseFormat(formatFlag)
			if !ok || format == output.FormatTable {
				return exitError("invalid format", usageError(formatFlag))
			}

			ws, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}
			res, err := ws.exportTemp(c.Context())
			if err != nil {
				return err
			}

			selected := selectPackages(res, packageFlag)
			if packageFlag != "" && len(selected) == 0 {
				return exitError("selecting package", unknownPackageError(packageFlag, res))
			}

			if encodedFlag {
				for _, pr := range selected {
					data, err := armaconfig.Encode(pr.Config)
					if err != nil {
						return exitError("encoding config", err)
					}
					fmt.Fprintf(c.OutOrStdout(), "// %s\n%s", configKey(res, pr), data)
				}
				return nil
			}

			snapshot := make(map[string]any, len(selected))
			for _, pr := range selected {
				snapshot[configKey(res, pr)] = configtree.Plain(pr.Config)
			}
			return output.WriteData(c.OutOrStdout(), snapshot, format)
		},
	}

	c.Flags().StringVarP(&formatFlag, "format", "f", "yaml", "Output format: yaml, json")
	c.Flags().StringVarP(&packageFlag, "package", "p", "", "Only print the package unit with this name")
	c.Flags().BoolVar(&encodedFlag, "encoded", false, "Print the encoded config files instead of structured data")
	return c
}

// configKey names a package result by its config file relative to the
// output root.
func configKey(res *pack.Result, pr *pack.PackageResult) string {
	rel, err := filepath.Rel(res.OutDir, pr.ConfigFile)
	if err != nil {
		return pr.ConfigFile
	}
	return filepath.ToSlash(rel)
}

func selectPackages(res *pack.Result, name string) []*pack.PackageResult {
	if name == "" {
		return res.Packages
	}
	var out []*pack.PackageResult
	for _, pr := range res.Packages {
		if pr.Package.Name == name {
			out = append(out, pr)
		}
	}
	return out
}

func unknownPackageError(name string, res *pack.Result) error {
	names := make([]string, 0, len(res.Packages))
	for _, pr := range res.Packages {
		names = append(names, pr.Package.Name)
	}
	return oerrors.NewNotFoundError(
		fmt.Sprintf("no package unit named %q", name),
		"",
		"Available package units: "+strings.Join(names, ", "),
	)
}
