package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sigmundklaa/sqfpack/internal/config"
	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
	"github.com/sigmundklaa/sqfpack/internal/manifest"
	"github.com/sigmundklaa/sqfpack/internal/output"
	"github.com/sigmundklaa/sqfpack/internal/pack"
	"github.com/sigmundklaa/sqfpack/internal/resource"
)

// workspace is a loaded project with its build session.
type workspace struct {
	project *config.Project
	session *pack.Session

	// outDir is the resolved absolute export directory.
	outDir string
}

// loadWorkspace resolves the project file, loads it and declares every
// package. Errors are printed and returned as *ExitError.
func loadWorkspace(cfg *GlobalConfig) (*workspace, error) {
	configPath := config.ResolveConfigPath(cfg.ConfigFlag)

	validator, err := config.NewValidator()
	if err != nil {
		return nil, exitError("initializing project schema", err)
	}
	project, err := config.NewLoader(validator).Load(configPath.Value)
	if err != nil {
		return nil, exitError("loading project", err)
	}

	outValue := config.ResolveOutput(cfg.OutputFlag, project.Output)
	config.LogResolvedValues(configPath, outValue)

	outDir, err := project.OutputPath(outValue.Value)
	if err != nil {
		return nil, exitError("resolving output directory", err)
	}

	manifests, err := manifest.NewValidator()
	if err != nil {
		return nil, exitError("initializing manifest schema", err)
	}
	session, err := project.NewSession(pack.Options{
		ParseResource: resource.ParseFile,
		Validator:     manifests,
	})
	if err != nil {
		return nil, exitError("declaring packages", err)
	}

	return &workspace{project: project, session: session, outDir: outDir}, nil
}

// checkOutDir refuses an export directory that would delete sources.
func (w *workspace) checkOutDir() error {
	src := w.project.Path
	rel, err := filepath.Rel(w.outDir, src)
	if err == nil && (rel == "." || !strings.HasPrefix(rel, "..")) {
		return exitError("checking output directory", oerrors.NewValidationError(
			fmt.Sprintf("output directory %s contains the source root %s", w.outDir, src),
			w.project.File,
			"output",
			"Choose an output directory outside the source tree",
		))
	}
	return nil
}

// exportTemp exports into a temporary directory that is removed afterwards.
// Used by commands that only need the aggregate results.
func (w *workspace) exportTemp(ctx context.Context) (*pack.Result, error) {
	tmp, err := os.MkdirTemp("", "sqfpack-*")
	if err != nil {
		return nil, exitError("creating temporary directory", err)
	}
	defer os.RemoveAll(tmp)

	res, err := w.session.Export(ctx, filepath.Join(tmp, "out"))
	if err != nil {
		return nil, exitError("export failed", err)
	}
	return res, nil
}

// exitError prints err and wraps it with the exit code it maps to.
func exitError(msg string, err error) error {
	printError(msg, err)
	return &oerrors.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     fmt.Errorf("%s: %w", msg, err),
		Printed: true,
	}
}

// printError prints err in a user-friendly format. Structured errors get
// their details printed below the summary line.
func printError(msg string, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(fmt.Sprintf("%s: %s", msg, detail.Type))
		output.Details(detail.Error())
		return
	}
	output.Error(msg, "error", err)
}

// usageError reports an invalid --format value.
func usageError(format string) error {
	return oerrors.Wrap(oerrors.ErrUsage,
		fmt.Sprintf("unknown format %q, expected one of %s", format, strings.Join(output.ValidFormats(), ", ")))
}
