package pack

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NamingTag returns the symbol namespace of m: the package tag chain, then
// each ancestor module's tag, then m's own tag, joined by "_". Empty tags are
// skipped.
func (m *Module) NamingTag() string {
	var tags []string
	if m.pkg != nil {
		tags = m.pkg.TagChain()
	}
	for _, cur := range m.lineage() {
		if cur.Tag != "" {
			tags = append(tags, cur.Tag)
		}
	}
	return strings.Join(tags, "_")
}

// RealFunctionName returns the fully qualified name of function fn in m.
func (m *Module) RealFunctionName(fn string) string {
	return m.NamingTag() + "_fnc_" + fn
}

// PrettyName joins the source directory names from stopAt (exclusive) down to
// m. With a nil stopAt the chain runs to the package root and is prefixed by
// the names of the enclosing packages, which makes it unique across packages.
func (m *Module) PrettyName(stopAt *Module) string {
	var parts []string
	for cur := m; cur != nil && cur != stopAt; cur = cur.parent {
		parts = append(parts, sanitizeIdent(cur.SourceName))
	}
	reverse(parts)
	if stopAt == nil && m.pkg != nil {
		parts = append(m.pkg.PrettyChain(), parts...)
	}
	return strings.Join(parts, "_")
}

// includeName is the macro name under which m is exposed to from.
func (m *Module) includeName(from *Module) string {
	if m.pkg != from.pkg {
		return m.PrettyName(nil)
	}
	if m.parent == nil {
		return sanitizeIdent(m.SourceName)
	}
	root := m.lineage()[0]
	return m.PrettyName(root)
}

// OutputRel returns the output directory of m relative to the export root.
func (m *Module) OutputRel() string {
	parts := []string{}
	if m.pkg != nil {
		parts = append(parts, m.pkg.outputRel())
	}
	for _, cur := range m.lineage() {
		parts = append(parts, cur.Name)
	}
	return filepath.Join(parts...)
}

// MacroFileName returns the file name of m's macro include-file.
func (m *Module) MacroFileName() string {
	return m.SourceName + MacroFileSuffix
}

// IncludeChain returns the modules whose macro files a source in m includes:
// every ancestor with a non-empty macro table, root first, then m itself.
func (m *Module) IncludeChain() []*Module {
	lineage := m.lineage()
	chain := make([]*Module, 0, len(lineage))
	for _, cur := range lineage[:len(lineage)-1] {
		if cur.Macros == nil || cur.Macros.Empty() {
			continue
		}
		chain = append(chain, cur)
	}
	return append(chain, m)
}

// IncludePaths returns the macro file paths of IncludeChain relative to the
// export root, slash separated.
func (m *Module) IncludePaths() []string {
	chain := m.IncludeChain()
	paths := make([]string, 0, len(chain))
	for _, cur := range chain {
		paths = append(paths, filepath.ToSlash(filepath.Join(cur.OutputRel(), cur.MacroFileName())))
	}
	return paths
}

// includeHeader renders the #include block prepended to every source of m.
// Paths are relative to m's output directory.
func (m *Module) includeHeader() (string, error) {
	var b strings.Builder
	dir := m.OutputRel()
	for _, cur := range m.IncludeChain() {
		rel, err := filepath.Rel(dir, filepath.Join(cur.OutputRel(), cur.MacroFileName()))
		if err != nil {
			return "", fmt.Errorf("relative include path for %s: %w", cur.Path, err)
		}
		fmt.Fprintf(&b, "#include \"%s\"\n", strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`))
	}
	return b.String(), nil
}

// sanitizeIdent maps s onto a preprocessor identifier.
func sanitizeIdent(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
