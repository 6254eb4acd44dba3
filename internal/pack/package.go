package pack

import (
	"path/filepath"
	"strings"
)

// PackageOptions declares a package when it is added to the build.
type PackageOptions struct {
	// Name identifies the package; defaults to the directory name.
	Name string

	// Path is the package directory; relative paths resolve against the
	// enclosing package.
	Path string

	// Tag contributes to the naming tag of every module in the package.
	Tag string

	// IsAddon marks a deployable artifact.
	IsAddon bool

	// IsModule marks a package unit that owns module content. A package
	// without it is a container of further packages.
	IsModule bool
}

// Package is one node of the build hierarchy: the root context, a container
// of packages, or a package unit owning a module tree.
type Package struct {
	Name     string
	Path     string
	Tag      string
	IsAddon  bool
	IsModule bool

	parent   *Package
	children []*Package
	module   *Module
	session  *Session
}

// Parent returns the enclosing package, or nil for the root context.
func (p *Package) Parent() *Package {
	return p.parent
}

// Children returns the packages held by a container.
func (p *Package) Children() []*Package {
	return p.children
}

// Module returns the root module of a package unit, or nil for a container.
func (p *Package) Module() *Module {
	return p.module
}

// IsContainer reports whether p holds packages rather than module content.
func (p *Package) IsContainer() bool {
	return !p.IsModule
}

// IsRoot reports whether p is the root context of the build.
func (p *Package) IsRoot() bool {
	return p.parent == nil
}

// AddSub declares a package inside the container p and materializes its
// module tree when it owns module content.
func (p *Package) AddSub(opts PackageOptions) (*Package, error) {
	path := opts.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.Path, path)
	}
	path, err := Canonical(path)
	if err != nil {
		return nil, err
	}
	name := opts.Name
	if name == "" {
		name = filepath.Base(path)
	}

	if p.IsModule {
		return nil, &InvalidPackageUnitError{Name: name, Path: path, Reason: "parent package " + p.Name + " owns module content and cannot hold packages"}
	}
	if opts.IsAddon && !opts.IsModule {
		return nil, &InvalidPackageUnitError{Name: name, Path: path, Reason: "an addon must own module content (is_module)"}
	}

	sub := &Package{
		Name:     name,
		Path:     path,
		Tag:      opts.Tag,
		IsAddon:  opts.IsAddon,
		IsModule: opts.IsModule,
		parent:   p,
		session:  p.session,
	}

	if sub.IsModule {
		m, err := p.session.materialize(sub, nil, path)
		if err != nil {
			return nil, err
		}
		sub.module = m
	} else if _, err := p.session.stat(path); err != nil {
		return nil, err
	}

	p.children = append(p.children, sub)
	return sub, nil
}

// TagChain returns the non-empty tags of p and its enclosing packages,
// outermost first.
func (p *Package) TagChain() []string {
	var tags []string
	for cur := p; cur != nil; cur = cur.parent {
		if cur.Tag != "" {
			tags = append(tags, cur.Tag)
		}
	}
	reverse(tags)
	return tags
}

// PrettyChain returns the names of the packages enclosing p, outermost first,
// excluding the root context and p itself.
func (p *Package) PrettyChain() []string {
	var names []string
	for cur := p.parent; cur != nil && cur.parent != nil; cur = cur.parent {
		names = append(names, sanitizeIdent(cur.Name))
	}
	reverse(names)
	return names
}

// outputRel returns the output directory of p relative to the export root.
// Containers contribute their name; a package unit's directory comes from its
// root module.
func (p *Package) outputRel() string {
	var parts []string
	for cur := p; cur != nil && cur.parent != nil; cur = cur.parent {
		if cur.IsContainer() {
			parts = append(parts, cur.Name)
		}
	}
	reverse(parts)
	return filepath.Join(parts...)
}

// ArtifactName returns the packaged file name of an addon.
func (p *Package) ArtifactName() (string, error) {
	if !p.IsAddon {
		return "", &NotAddonArtifactError{Name: p.Name, Op: "artifact name"}
	}
	return p.Name + "." + ArtifactExt, nil
}

// Prefix returns the naming tag written to the addon prefix file.
func (p *Package) Prefix() (string, error) {
	if !p.IsAddon {
		return "", &NotAddonArtifactError{Name: p.Name, Op: "prefix"}
	}
	return p.module.NamingTag(), nil
}

// ConfigFileName returns the aggregate config file name of a package unit.
func (p *Package) ConfigFileName() string {
	if p.IsAddon {
		return AddonConfigFile
	}
	return MissionConfigFile
}

// unit returns the nearest package that owns module content.
func (p *Package) unit() *Package {
	for cur := p; cur != nil; cur = cur.parent {
		if cur.IsModule {
			return cur
		}
	}
	return nil
}

// Walk calls fn for p and every package below it, depth-first.
func (p *Package) Walk(fn func(*Package) error) error {
	if err := fn(p); err != nil {
		return err
	}
	for _, c := range p.children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// contains reports whether path lies inside the package directory.
func (p *Package) contains(path string) bool {
	rel, err := filepath.Rel(p.Path, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
