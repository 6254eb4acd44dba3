package pack

import (
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/sigmundklaa/sqfpack/internal/configtree"
)

// Function is one registered script function.
type Function struct {
	PreInit  bool
	PostInit bool
}

// FunctionGroup is the registry entry of one module.
type FunctionGroup struct {
	// Tag is the module's naming tag.
	Tag string

	// File is the directory holding the functions, as the game resolves it.
	File string

	Functions map[string]Function
}

// Names returns the function names in sorted order.
func (g FunctionGroup) Names() []string {
	names := make([]string, 0, len(g.Functions))
	for name := range g.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionRegistry maps a module's registry key to its function group.
type FunctionRegistry map[string]FunctionGroup

// Union copies every entry of other into r. Colliding keys take other's entry.
// It returns the sorted keys whose replaced group held functions.
func (r FunctionRegistry) Union(other FunctionRegistry) []string {
	var replaced []string
	for k, g := range other {
		if prev, ok := r[k]; ok && len(prev.Functions) > 0 {
			replaced = append(replaced, k)
		}
		r[k] = g
	}
	sort.Strings(replaced)
	return replaced
}

// Keys returns the registry keys in sorted order.
func (r FunctionRegistry) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the total number of functions.
func (r FunctionRegistry) Count() int {
	n := 0
	for _, g := range r {
		n += len(g.Functions)
	}
	return n
}

// Config renders the registry as the value of FunctionsConfigKey. Groups
// without functions are left out.
func (r FunctionRegistry) Config() configtree.Tree {
	cfg := configtree.Tree{}
	for key, g := range r {
		if len(g.Functions) == 0 {
			continue
		}
		fns := configtree.Tree{"file": g.File}
		for name, fn := range g.Functions {
			flags := configtree.Tree{}
			if fn.PreInit {
				flags["preInit"] = 1
			}
			if fn.PostInit {
				flags["postInit"] = 1
			}
			fns[name] = flags
		}
		cfg[key] = configtree.Tree{
			"tag":       g.Tag,
			"functions": fns,
		}
	}
	return cfg
}

// functionGroup builds m's registry entry from its source entries.
func (m *Module) functionGroup() FunctionGroup {
	g := FunctionGroup{
		Tag:       m.NamingTag(),
		File:      m.functionDir(),
		Functions: map[string]Function{},
	}
	for _, e := range m.Entries {
		if e.Ext() != SourceExt || e.Reserved() {
			continue
		}
		name := e.Stem()
		g.Functions[name] = Function{
			PreInit:  slices.Contains(m.PreInit, name),
			PostInit: slices.Contains(m.PostInit, name),
		}
	}
	return g
}

// functionDir returns the directory of m's exported functions. Addon paths
// are rooted at the addon prefix; other package units use paths relative to
// the unit's config file.
func (m *Module) functionDir() string {
	root := m.lineage()[0]
	rel, err := filepath.Rel(root.OutputRel(), m.OutputRel())
	if err != nil {
		rel = m.Name
	}
	rel = strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`)

	if m.pkg != nil && m.pkg.IsAddon {
		prefix := `\` + root.NamingTag()
		if rel == "." {
			return prefix
		}
		return prefix + `\` + rel
	}
	return rel
}
