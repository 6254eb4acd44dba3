// Package macro models preprocessor macro tables and renders them as include files.
package macro

import (
	"fmt"
	"strings"
)

// TagMacro is the name of the per-module macro bound to the module's naming tag.
const TagMacro = "__TAG"

// Macro is a single preprocessor definition.
type Macro struct {
	Name  string
	Args  []string
	Value string
}

// Args returns the conventional formal argument list ARG_1..ARG_n.
func Args(n int) []string {
	if n <= 0 {
		return nil
	}
	args := make([]string, n)
	for i := range args {
		args[i] = fmt.Sprintf("ARG_%d", i+1)
	}
	return args
}

// Define renders m as a #define directive. Multi-line values are continued
// with a trailing backslash.
func (m Macro) Define() string {
	var b strings.Builder
	b.WriteString("#define ")
	b.WriteString(m.Name)
	if len(m.Args) > 0 {
		b.WriteString("(")
		b.WriteString(strings.Join(m.Args, ","))
		b.WriteString(")")
	}
	if m.Value != "" {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(m.Value, "\n", " \\\n"))
	}
	return b.String()
}

// Table is an insertion-ordered set of macros keyed by name.
type Table struct {
	order  []string
	macros map[string]Macro
	seeded int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{macros: make(map[string]Macro)}
}

// NewSeededTable returns a table holding the base helper macros and a
// TagMacro bound to tag.
func NewSeededTable(tag string) *Table {
	t := NewTable()
	for _, m := range Base() {
		t.Set(m)
	}
	t.Set(Macro{Name: TagMacro, Value: tag})
	t.seeded = t.Len()
	return t
}

// Set inserts m, replacing any macro with the same name in place.
func (t *Table) Set(m Macro) {
	if _, ok := t.macros[m.Name]; !ok {
		t.order = append(t.order, m.Name)
	}
	t.macros[m.Name] = m
}

// Get returns the macro stored under name.
func (t *Table) Get(name string) (Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

// Len returns the number of macros in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// Empty reports whether the table holds no macros.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Declared returns the number of macros added after seeding.
func (t *Table) Declared() int {
	return t.Len() - t.seeded
}

// Macros returns the macros in insertion order.
func (t *Table) Macros() []Macro {
	out := make([]Macro, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.macros[name])
	}
	return out
}

// Render returns the include-file text for the table. Every definition is
// guarded by #undef so that a file may redefine a macro of an ancestor.
func (t *Table) Render() string {
	var b strings.Builder
	b.WriteString("// Generated by sqfpack. Do not edit.\n")
	for _, m := range t.Macros() {
		b.WriteString("#ifdef ")
		b.WriteString(m.Name)
		b.WriteString("\n#undef ")
		b.WriteString(m.Name)
		b.WriteString("\n#endif\n")
		b.WriteString(m.Define())
		b.WriteString("\n")
	}
	return b.String()
}
