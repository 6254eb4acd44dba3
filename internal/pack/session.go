package pack

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sigmundklaa/sqfpack/internal/armaconfig"
	"github.com/sigmundklaa/sqfpack/internal/configtree"
	"github.com/sigmundklaa/sqfpack/internal/macro"
	"github.com/sigmundklaa/sqfpack/internal/manifest"
	"github.com/sigmundklaa/sqfpack/internal/output"
	"github.com/sigmundklaa/sqfpack/internal/resource"
)

// EncodeFunc serializes an aggregate config to the text of a config file.
type EncodeFunc func(configtree.Tree) ([]byte, error)

// ParseResourceFunc parses one resource file into config fragments.
type ParseResourceFunc func(path string) ([]resource.Fragment, error)

// Options configures a Session. Zero values select the defaults.
type Options struct {
	// Encode serializes aggregate configs. Defaults to armaconfig.Encode.
	Encode EncodeFunc

	// ParseResource parses ResourceExt files. When nil such files are
	// copied verbatim.
	ParseResource ParseResourceFunc

	// Validator checks manifests. Defaults to the embedded schema.
	Validator *manifest.Validator

	// FileTypes lists extensions copied verbatim. Defaults to DefaultFileTypes.
	FileTypes []string
}

// Session is one build invocation. It owns the package hierarchy and the
// identity registry; nothing is shared between sessions.
type Session struct {
	Root *Package

	registry *Registry
	opts     Options
}

// NewSession creates a session whose root context is the directory at path.
func NewSession(path, tag string, opts Options) (*Session, error) {
	if opts.Encode == nil {
		opts.Encode = armaconfig.Encode
	}
	if opts.FileTypes == nil {
		opts.FileTypes = DefaultFileTypes
	}
	if opts.Validator == nil {
		v, err := manifest.NewValidator()
		if err != nil {
			return nil, err
		}
		opts.Validator = v
	}

	s := &Session{
		registry: NewRegistry(),
		opts:     opts,
	}

	abs, err := s.stat(path)
	if err != nil {
		return nil, err
	}
	s.Root = &Package{
		Name:    filepath.Base(abs),
		Path:    abs,
		Tag:     tag,
		session: s,
	}

	output.Debug("created build session", "path", abs, "tag", tag)
	return s, nil
}

// Registry returns the session's identity registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Reset clears the identity registry and every package declared in the
// session, leaving only the root context.
func (s *Session) Reset() {
	s.registry.Reset()
	s.Root.children = nil
}

// Packages returns every package unit, depth-first.
func (s *Session) Packages() []*Package {
	var units []*Package
	_ = s.Root.Walk(func(p *Package) error {
		if p.IsModule {
			units = append(units, p)
		}
		return nil
	})
	return units
}

// Modules returns every live module in creation order.
func (s *Session) Modules() []*Module {
	return s.registry.Modules()
}

// stat canonicalizes path and checks that it is a directory.
func (s *Session) stat(path string) (string, error) {
	abs, err := Canonical(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", &PathNotFoundError{Path: abs}
	}
	return abs, nil
}

// materialize returns the module for path, initializing it on first request.
func (s *Session) materialize(pkg *Package, parent *Module, path string) (*Module, error) {
	return s.registry.GetOrCreate(path, func(m *Module) error {
		return s.initModule(m, pkg, parent)
	})
}

// initModule reads the module directory and its manifest.
func (s *Session) initModule(m *Module, pkg *Package, parent *Module) error {
	m.pkg = pkg
	m.parent = parent
	m.SourceName = filepath.Base(m.Path)

	mf, err := manifest.Load(m.Path, s.opts.Validator)
	if err != nil {
		return err
	}
	opts := manifest.Override(manifest.Options{
		Name:      m.SourceName,
		FileTypes: s.opts.FileTypes,
	}, *mf)

	m.Name = opts.Name
	m.Tag = opts.Tag
	m.Include = opts.Include
	m.PreInit = opts.PreInit
	m.PostInit = opts.PostInit
	m.Config = configtree.Merge(nil, opts.Config)
	m.FileTypes = opts.FileTypes

	if pkg.IsAddon && parent == nil {
		m.AddonDetails = configtree.Merge(nil, opts.AddonDetails)
	} else if opts.AddonDetails != nil {
		output.Warn("ignoring addon_details outside an addon root", "path", opts.Source)
	}

	m.Macros = macro.NewSeededTable(m.NamingTag())
	for _, mac := range opts.Macros {
		m.Macros.Set(mac)
	}

	dirEntries, err := os.ReadDir(m.Path)
	if err != nil {
		return fmt.Errorf("reading module directory %s: %w", m.Path, err)
	}
	for _, de := range dirEntries {
		p := filepath.Join(m.Path, de.Name())
		if de.IsDir() {
			child, err := s.materialize(pkg, m, p)
			if err != nil {
				return err
			}
			m.Children = append(m.Children, child)
			continue
		}
		if manifest.IsManifest(de.Name()) {
			continue
		}
		m.Entries = append(m.Entries, Entry{Name: de.Name(), Path: p})
	}

	m.state = StateInitialized
	output.Debug("materialized module",
		"path", m.Path,
		"tag", m.NamingTag(),
		"children", len(m.Children),
		"entries", len(m.Entries),
	)
	return nil
}

// owner returns the package unit whose directory contains path, preferring
// the deepest match.
func (s *Session) owner(path string) *Package {
	var best *Package
	_ = s.Root.Walk(func(p *Package) error {
		if p.IsModule && p.contains(path) {
			if best == nil || len(p.Path) > len(best.Path) {
				best = p
			}
		}
		return nil
	})
	return best
}

// identity returns the live module for a resolved directory. Every
// directory of a declared package unit is materialized when the unit is
// added, so a directory without a live module lies outside the build.
func (s *Session) identity(path, ref string, from *Module) (*Module, error) {
	if m, ok := s.registry.Lookup(path); ok {
		return m, nil
	}
	err := &UnownedModuleError{Path: path, Ref: ref, From: from.Path}
	if pkg := s.owner(path); pkg != nil {
		err.Package = pkg.Name
	}
	return nil, err
}
