// Package config loads the sqfpack project file.
//
// The project file declares the source root of a build and the packages it is
// made of. It is read with viper, so YAML, JSON and TOML are all accepted, and
// validated against an embedded CUE schema before it is decoded.
package config

import (
	"fmt"
	"path/filepath"
	"sort"

	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
)

// DefaultFileName is the project file looked up in the working directory.
const DefaultFileName = "sqfpack.yaml"

// DefaultOutput is the export directory used when none is configured,
// relative to the project file.
const DefaultOutput = "out"

// Project is a decoded project file.
type Project struct {
	// File is the absolute path of the project file.
	File string

	// Path is the absolute source root.
	Path string

	// Tag is the naming tag of the root context.
	Tag string

	// Output is the export directory as configured, before flag overrides.
	Output string

	// Subs are the top-level packages.
	Subs []SubSpec
}

// SubSpec declares one package, or a glob expanding to several.
type SubSpec struct {
	Name     string
	Path     string
	Tag      string
	IsAddon  bool
	IsModule bool

	// Glob, when set, declares one package per matching directory. Path,
	// Name, Tag and Subs are unused.
	Glob string

	Subs []SubSpec
}

// OutputPath returns the absolute export directory for out, resolving a
// relative path against the project file's directory.
func (p *Project) OutputPath(out string) (string, error) {
	if out == "" {
		out = DefaultOutput
	}
	out, err := ExpandPath(out)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(filepath.Dir(p.File), out)
	}
	return filepath.Clean(out), nil
}

// decodeSubs converts the raw subs value of a project file. A mapping with a
// "glob" key is the glob form; any other mapping holds one sub per key.
func decodeSubs(raw any, field string) ([]SubSpec, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, oerrors.NewValidationError("subs must be a mapping", "", field, "")
	}

	if glob, ok := m["glob"]; ok {
		spec := SubSpec{IsModule: true}
		spec.Glob, _ = glob.(string)
		for k, v := range m {
			switch k {
			case "glob":
			case "is_addon":
				spec.IsAddon, _ = v.(bool)
			case "is_module":
				spec.IsModule, _ = v.(bool)
			default:
				return nil, oerrors.NewValidationError(
					fmt.Sprintf("unknown key %q in glob form", k), "", field+"."+k,
					"The glob form accepts glob, is_addon and is_module",
				)
			}
		}
		return []SubSpec{spec}, nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	subs := make([]SubSpec, 0, len(keys))
	for _, k := range keys {
		entry, ok := m[k].(map[string]any)
		if !ok {
			return nil, oerrors.NewValidationError("sub must be a mapping", "", field+"."+k, "")
		}
		spec := SubSpec{IsModule: true}
		spec.Name, _ = entry["name"].(string)
		spec.Path, _ = entry["path"].(string)
		spec.Tag, _ = entry["tag"].(string)
		if v, ok := entry["is_addon"].(bool); ok {
			spec.IsAddon = v
		}
		if v, ok := entry["is_module"].(bool); ok {
			spec.IsModule = v
		}
		if spec.Path == "" {
			spec.Path = k
		}
		nested, err := decodeSubs(entry["subs"], field+"."+k+".subs")
		if err != nil {
			return nil, err
		}
		spec.Subs = nested
		subs = append(subs, spec)
	}
	return subs, nil
}
