package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigmundklaa/sqfpack/internal/output"
)

// NewVetCmd creates the vet command.
func NewVetCmd(cfg *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Check manifests and include references without exporting",
		Long: `Load the project, validate every module manifest and resolve every
include reference. Nothing is written.

With --verbose every resolved reference is listed.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ws, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}

			refs, err := ws.session.ResolveAll()
			if err != nil {
				return exitError("resolving includes", err)
			}

			if cfg.Verbose && len(refs) > 0 {
				tbl := output.NewTable("MODULE", "REFERENCE", "TARGETS")
				for _, ref := range refs {
					targets := make([]string, 0, len(ref.Targets))
					for _, t := range ref.Targets {
						targets = append(targets, t.NamingTag())
					}
					if len(targets) == 0 {
						targets = append(targets, "(no match)")
					}
					tbl.Row(ref.From.NamingTag(), ref.Ref, strings.Join(targets, ", "))
				}
				fmt.Fprintln(c.OutOrStdout(), tbl.String())
			}

			modules := ws.session.Registry().Len()
			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark(
				fmt.Sprintf("%d modules valid, %d references resolved", modules, len(refs))))
			return nil
		},
	}
}
