package pack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sigmundklaa/sqfpack/internal/macro"
	"github.com/sigmundklaa/sqfpack/internal/output"
)

// globChars select glob expansion for a reference.
const globChars = "*?[{"

// IsGlob reports whether ref is expanded as a glob pattern.
func IsGlob(ref string) bool {
	return strings.ContainsAny(ref, globChars)
}

// Resolve turns a reference made by from into module identities.
//
// A reference starting with "/" is relative to the root of from's package.
// Each additional leading "/" escapes one package further out, so "//x" is
// relative to the enclosing package. Anything else is relative to the
// directory holding from, so "../C" from A/B names the C next to A.
//
// Glob references yield one module per matching directory and may yield
// none. A plain reference must name an existing directory.
func (s *Session) Resolve(ref string, from *Module) ([]*Module, error) {
	target, err := s.refPath(ref, from)
	if err != nil {
		return nil, err
	}

	var paths []string
	if IsGlob(ref) {
		matches, err := doublestar.FilepathGlob(target)
		if err != nil {
			return nil, fmt.Errorf("expanding %q from %s: %w", ref, from.Path, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && info.IsDir() {
				paths = append(paths, match)
			}
		}
		if len(paths) == 0 {
			output.Debug("glob reference matched nothing", "ref", ref, "from", from.Path)
		}
	} else {
		info, err := os.Stat(target)
		if err != nil || !info.IsDir() {
			return nil, &PathNotFoundError{Path: target, Ref: ref, From: from.Path}
		}
		paths = append(paths, target)
	}

	modules := make([]*Module, 0, len(paths))
	for _, p := range paths {
		m, err := s.identity(p, ref, from)
		var unowned *UnownedModuleError
		if IsGlob(ref) && errors.As(err, &unowned) {
			output.Warn("skipping glob match outside every package unit", "ref", ref, "path", p)
			continue
		}
		if err != nil {
			return nil, err
		}
		s.recordDependency(from, m)
		modules = append(modules, m)
	}
	return modules, nil
}

// refPath returns the absolute filesystem form of ref.
func (s *Session) refPath(ref string, from *Module) (string, error) {
	rest := strings.TrimLeft(ref, "/")
	slashes := len(ref) - len(rest)

	var base string
	switch slashes {
	case 0:
		base = filepath.Dir(from.Path)
	default:
		pkg := from.pkg
		for i := 1; i < slashes && pkg != nil; i++ {
			pkg = pkg.parent
		}
		if pkg == nil {
			return "", &PathNotFoundError{Path: rest, Ref: ref, From: from.Path}
		}
		base = pkg.Path
	}
	return filepath.Join(base, filepath.FromSlash(rest)), nil
}

// recordDependency adds a required-package edge when an addon references a
// module of a different addon.
func (s *Session) recordDependency(from, to *Module) {
	src, dst := from.pkg, to.pkg
	if src == nil || dst == nil || src == dst {
		return
	}
	if !src.IsAddon || !dst.IsAddon || src.module == nil {
		return
	}
	if src.module.requirePackage(dst.Name) {
		output.PackageLogger(src.Name).Debug("recorded dependency", "requires", dst.Name)
	}
}

// resolveIncludes resolves m's references and adds one call macro and one tag
// macro per target. m itself is always a target.
func (s *Session) resolveIncludes(m *Module) error {
	targets := []*Module{m}
	for _, ref := range m.Include {
		resolved, err := s.Resolve(ref, m)
		if err != nil {
			return err
		}
		targets = append(targets, resolved...)
	}

	for _, t := range targets {
		name := t.includeName(m)
		m.Macros.Set(macro.Macro{
			Name:  name,
			Args:  macro.Args(1),
			Value: t.RealFunctionName("##ARG_1"),
		})
		m.Macros.Set(macro.Macro{
			Name:  name + macro.TagMacro,
			Value: t.NamingTag(),
		})
	}
	return nil
}

// Reference is one resolved include of a module.
type Reference struct {
	From    *Module
	Ref     string
	Targets []*Module
}

// ResolveAll resolves every include of every live module without exporting.
func (s *Session) ResolveAll() ([]Reference, error) {
	var refs []Reference
	for _, m := range s.registry.Modules() {
		for _, ref := range m.Include {
			targets, err := s.Resolve(ref, m)
			if err != nil {
				return refs, err
			}
			refs = append(refs, Reference{From: m, Ref: ref, Targets: targets})
		}
	}
	return refs, nil
}
