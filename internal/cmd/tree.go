package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sigmundklaa/sqfpack/internal/output"
	"github.com/sigmundklaa/sqfpack/internal/pack"
)

// NewTreeCmd creates the tree command.
func NewTreeCmd(cfg *GlobalConfig) *cobra.Command {
	var formatFlag string

	c := &cobra.Command{
		Use:   "tree",
		Short: "Show the package and module tree",
		Long: `Show the packages of the project and the module tree of every package
unit, with the naming tag of each module.

Examples:
  sqfpack tree
  sqfpack tree --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			format, ok := output.ParseFormat(formatFlag)
			if !ok {
				return exitError("invalid format", usageError(formatFlag))
			}

			ws, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}

			if format == output.FormatTable {
				fmt.Fprint(c.OutOrStdout(), output.RenderTree(packageNode(ws.session.Root)))
				return nil
			}
			return output.WriteData(c.OutOrStdout(), packageData(ws.session.Root), format)
		},
	}

	c.Flags().StringVarP(&formatFlag, "format", "f", "table",
		"Output format: "+strings.Join(output.ValidFormats(), ", "))
	return c
}

func packageKind(p *pack.Package) string {
	switch {
	case p.IsRoot():
		return "root"
	case p.IsAddon:
		return "addon"
	case p.IsModule:
		return "unit"
	default:
		return "container"
	}
}

func packageNode(p *pack.Package) *output.TreeNode {
	node := &output.TreeNode{
		Name:        p.Name,
		Description: packageKind(p),
	}
	if p.Tag != "" {
		node.Description += " tag=" + p.Tag
	}
	for _, c := range p.Children() {
		node.Children = append(node.Children, packageNode(c))
	}
	if m := p.Module(); m != nil {
		node.Children = append(node.Children, moduleNode(m))
	}
	return node
}

func moduleNode(m *pack.Module) *output.TreeNode {
	desc := m.NamingTag()
	if len(m.Include) > 0 {
		desc += " includes " + strings.Join(m.Include, ", ")
	}
	node := &output.TreeNode{Name: m.Name + "/", Description: desc}
	for _, c := range m.Children {
		node.Children = append(node.Children, moduleNode(c))
	}
	return node
}

// packageData is the structured form of the tree for YAML and JSON output.
func packageData(p *pack.Package) map[string]any {
	data := map[string]any{
		"name": p.Name,
		"kind": packageKind(p),
		"path": p.Path,
	}
	if p.Tag != "" {
		data["tag"] = p.Tag
	}
	var children []any
	for _, c := range p.Children() {
		children = append(children, packageData(c))
	}
	if len(children) > 0 {
		data["packages"] = children
	}
	if m := p.Module(); m != nil {
		data["module"] = moduleData(m)
	}
	return data
}

func moduleData(m *pack.Module) map[string]any {
	data := map[string]any{
		"name": m.Name,
		"tag":  m.NamingTag(),
		"path": m.Path,
	}
	if len(m.Include) > 0 {
		data["include"] = m.Include
	}
	var children []any
	for _, c := range m.Children {
		children = append(children, moduleData(c))
	}
	if len(children) > 0 {
		data["modules"] = children
	}
	return data
}
