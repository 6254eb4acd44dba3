package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sigmundklaa/sqfpack/internal/configtree"
	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
	"github.com/sigmundklaa/sqfpack/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "diff SNAPSHOT",
		Short: "Compare aggregate configs against a saved snapshot",
		Long: `Compare the aggregate configs of the current project against a snapshot
written by 'sqfpack config -f yaml'.

Package units present only in the project are reported as added, units
present only in the snapshot as removed, and changed configs as modified
with a YAML-aware diff.

Examples:
  sqfpack config -f yaml > before.yaml
  # edit sources
  sqfpack diff before.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			snapshot, err := loadSnapshot(args[0])
			if err != nil {
				return exitError("reading snapshot", err)
			}

			ws, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}
			res, err := ws.exportTemp(c.Context())
			if err != nil {
				return err
			}

			current := make(map[string]any, len(res.Packages))
			for _, pr := range res.Packages {
				current[configKey(res, pr)] = configtree.Plain(pr.Config)
			}

			added, removed, modified, err := diffSnapshots(snapshot, current, output.IsTTY())
			if err != nil {
				return exitError("comparing configs", err)
			}
			fmt.Fprint(c.OutOrStdout(), output.RenderDiff(added, removed, modified))
			return nil
		},
	}
}

func loadSnapshot(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("snapshot file not found", path,
				"Write one with 'sqfpack config -f yaml > "+path+"'")
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	snapshot := map[string]any{}
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), path, "",
			"The snapshot must be the YAML output of 'sqfpack config'")
	}
	return snapshot, nil
}

// diffSnapshots compares two config snapshots keyed by config file path.
func diffSnapshots(from, to map[string]any, useColor bool) (added, removed []string, modified []output.ModifiedItem, err error) {
	for key := range to {
		if _, ok := from[key]; !ok {
			added = append(added, key)
		}
	}
	for key := range from {
		if _, ok := to[key]; !ok {
			removed = append(removed, key)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)

	keys := make([]string, 0, len(to))
	for key := range to {
		if _, ok := from[key]; ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		before, err := output.MarshalYAML(from[key])
		if err != nil {
			return nil, nil, nil, err
		}
		after, err := output.MarshalYAML(to[key])
		if err != nil {
			return nil, nil, nil, err
		}
		diff, err := output.DiffYAML("snapshot", before, "current", after, useColor)
		if err != nil {
			return nil, nil, nil, err
		}
		if diff != "" {
			modified = append(modified, output.ModifiedItem{Name: key, Diff: diff})
		}
	}
	return added, removed, modified, nil
}
