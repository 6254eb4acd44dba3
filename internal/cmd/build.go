package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigmundklaa/sqfpack/internal/output"
	"github.com/sigmundklaa/sqfpack/internal/pack"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Export the project to the build tree",
		Long: `Export every package of the project into the output directory.

The output directory is removed and recreated on every build. Each package
unit gets its aggregate config file; addons also get a $PBOPREFIX$ file.

Examples:
  # Build using ./sqfpack.yaml
  sqfpack build

  # Build another project into a custom directory
  sqfpack build -c mods/sqfpack.yaml --output /tmp/build`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c.Context(), cfg)
		},
	}
}

func runBuild(ctx context.Context, cfg *GlobalConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ws, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}
	if err := ws.checkOutDir(); err != nil {
		return err
	}

	var res *pack.Result
	action := func() error {
		var err error
		res, err = ws.session.Export(ctx, ws.outDir)
		return err
	}
	if cfg.Verbose {
		err = action()
	} else {
		err = output.RunWithSpinner(ctx, action, output.WithTitle("Exporting "+ws.outDir))
	}
	if err != nil {
		return exitError("export failed", err)
	}

	for _, pr := range res.Packages {
		log := output.PackageLogger(pr.Package.Name)
		if artifact, err := pr.Package.ArtifactName(); err == nil {
			log.Info(fmt.Sprintf("ready to pack as %s", output.StyleNoun.Render(artifact)), "dir", pr.Dir)
			continue
		}
		log.Info("wrote " + pr.Package.ConfigFileName())
	}

	output.Println(output.FormatExportSummary(len(res.Packages), res.ModuleCount(), res.FunctionCount(), res.OutDir))
	return nil
}
