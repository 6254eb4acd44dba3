package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sigmundklaa/sqfpack/internal/output"
	"github.com/sigmundklaa/sqfpack/internal/pack"
)

// NewSession creates a build session for p and declares its packages.
func (p *Project) NewSession(opts pack.Options) (*pack.Session, error) {
	s, err := pack.NewSession(p.Path, p.Tag, opts)
	if err != nil {
		return nil, err
	}
	if err := declare(s.Root, p.Subs); err != nil {
		return nil, err
	}
	return s, nil
}

func declare(parent *pack.Package, subs []SubSpec) error {
	for _, spec := range subs {
		if spec.Glob != "" {
			if err := declareGlob(parent, spec); err != nil {
				return err
			}
			continue
		}

		path, err := ExpandPath(spec.Path)
		if err != nil {
			return err
		}
		pkg, err := parent.AddSub(pack.PackageOptions{
			Name:     spec.Name,
			Path:     path,
			Tag:      spec.Tag,
			IsAddon:  spec.IsAddon,
			IsModule: spec.IsModule,
		})
		if err != nil {
			return err
		}
		if err := declare(pkg, spec.Subs); err != nil {
			return err
		}
	}
	return nil
}

// declareGlob adds one package per directory matching spec.Glob below parent.
func declareGlob(parent *pack.Package, spec SubSpec) error {
	pattern := filepath.Join(parent.Path, filepath.FromSlash(spec.Glob))
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("expanding glob %q: %w", spec.Glob, err)
	}
	sort.Strings(matches)

	for _, match := range matches {
		if info, err := os.Stat(match); err != nil || !info.IsDir() {
			continue
		}
		if _, err := parent.AddSub(pack.PackageOptions{
			Path:     match,
			IsAddon:  spec.IsAddon,
			IsModule: spec.IsModule,
		}); err != nil {
			return err
		}
	}
	output.Debug("expanded glob", "glob", spec.Glob, "matches", len(matches))
	return nil
}
