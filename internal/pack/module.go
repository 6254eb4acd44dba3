package pack

import (
	"path/filepath"
	"strings"

	"github.com/sigmundklaa/sqfpack/internal/configtree"
	"github.com/sigmundklaa/sqfpack/internal/macro"
)

// State is the export-relevant lifecycle state of a Module.
type State int

const (
	// StateUnmaterialized is a module that exists in the registry but has
	// not been initialized from its directory.
	StateUnmaterialized State = iota

	// StateInitialized is a module whose directory contents and manifest
	// have been read.
	StateInitialized

	// StateExported is a module that has been written to an output tree.
	StateExported
)

func (s State) String() string {
	switch s {
	case StateUnmaterialized:
		return "unmaterialized"
	case StateInitialized:
		return "initialized"
	case StateExported:
		return "exported"
	default:
		return "unknown"
	}
}

// Entry is a regular file inside a module directory.
type Entry struct {
	Name string
	Path string
}

// Ext returns the lowercased file extension including the dot.
func (e Entry) Ext() string {
	return strings.ToLower(filepath.Ext(e.Name))
}

// Stem returns the file name without its extension.
func (e Entry) Stem() string {
	return strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
}

// Reserved reports whether the file name starts with ReservedPrefix.
func (e Entry) Reserved() bool {
	return strings.HasPrefix(e.Name, ReservedPrefix)
}

// Module is one source directory.
type Module struct {
	// Path is the canonical absolute directory path.
	Path string

	// Name is the display name and output directory name.
	Name string

	// SourceName is the original directory name.
	SourceName string

	// Tag is this module's partial naming tag.
	Tag string

	// Include holds the manifest-declared references. The module itself is
	// always included implicitly and is not listed here.
	Include []string

	PreInit  []string
	PostInit []string

	// Config is the module's own config fragment.
	Config configtree.Tree

	// AddonDetails is non-nil only for the root module of an addon package.
	AddonDetails configtree.Tree

	// FileTypes lists extensions copied verbatim on export.
	FileTypes []string

	// Macros is the module's macro table.
	Macros *macro.Table

	// Children are owned by this module, in directory order.
	Children []*Module

	// Entries are the regular files of this module, in directory order.
	Entries []Entry

	parent *Module
	pkg    *Package
	state  State
}

// Parent returns the enclosing module, or nil for a package root.
func (m *Module) Parent() *Module {
	return m.parent
}

// Package returns the package unit the module belongs to.
func (m *Module) Package() *Package {
	return m.pkg
}

// State returns the module's lifecycle state.
func (m *Module) State() State {
	return m.state
}

// IsPackageRoot reports whether m is the root module of its package.
func (m *Module) IsPackageRoot() bool {
	return m.parent == nil && m.pkg != nil && m.pkg.Path == m.Path
}

// lineage returns the module chain from the outermost ancestor to m.
func (m *Module) lineage() []*Module {
	var chain []*Module
	for cur := m; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Walk calls fn for m and every descendant, depth-first in child order.
func (m *Module) Walk(fn func(*Module) error) error {
	if err := fn(m); err != nil {
		return err
	}
	for _, c := range m.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// hasFileType reports whether ext is copied verbatim.
func (m *Module) hasFileType(ext string) bool {
	for _, ft := range m.FileTypes {
		if ft == ext {
			return true
		}
	}
	return false
}

// requirePackage records a dependency on the named package in the addon
// details, once per name.
func (m *Module) requirePackage(name string) bool {
	var required []any
	if v, ok := m.AddonDetails[RequiredAddonsKey].([]any); ok {
		required = v
	}
	for _, r := range required {
		if r == name {
			return false
		}
	}
	m.AddonDetails[RequiredAddonsKey] = append(required, name)
	return true
}
