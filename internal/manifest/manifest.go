// Package manifest loads per-directory module manifests.
//
// A manifest is optional. When present it overrides the defaults a module was
// constructed with; a missing manifest yields the defaults unchanged.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/sigmundklaa/sqfpack/internal/configtree"
	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
	"github.com/sigmundklaa/sqfpack/internal/macro"
	"github.com/sigmundklaa/sqfpack/internal/output"
)

// FileNames lists the recognized manifest file names in lookup order.
var FileNames = []string{"module.json", "module.yaml", "module.yml"}

// IsManifest reports whether name is a manifest file name.
func IsManifest(name string) bool {
	for _, n := range FileNames {
		if name == n {
			return true
		}
	}
	return false
}

// Options is the fully enumerated set of per-module settings.
type Options struct {
	Name         string
	Tag          string
	Include      []string
	PreInit      []string
	PostInit     []string
	Config       configtree.Tree
	Macros       []macro.Macro
	AddonDetails configtree.Tree
	FileTypes    []string

	// Source is the manifest path the options were read from, if any.
	Source string
}

// manifestFile mirrors the on-disk manifest. Pointer and nil-able fields
// distinguish "absent" from "empty" so Override only applies what was set.
type manifestFile struct {
	Name         *string              `json:"name"`
	Tag          *string              `json:"tag"`
	Include      []string             `json:"include"`
	PreInit      []string             `json:"preInit"`
	PostInit     []string             `json:"postInit"`
	Config       map[string]any       `json:"config"`
	Macros       map[string]macroSpec `json:"macros"`
	AddonDetails map[string]any       `json:"addon_details"`
	FileTypes    []string             `json:"filetypes"`
}

// macroSpec accepts either a bare replacement string or {value, args}.
type macroSpec struct {
	Value string `json:"value"`
	Args  int    `json:"args"`
}

func (m *macroSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Value = s
		m.Args = 0
		return nil
	}
	type plain macroSpec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = macroSpec(p)
	return nil
}

// Find returns the manifest path in dir, or "" if there is none.
func Find(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads and validates the manifest in dir. A directory without a
// manifest returns empty Options and no error.
func Load(dir string, v *Validator) (*Options, error) {
	path := Find(dir)
	if path == "" {
		return &Options{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	opts, err := Parse(data, v)
	if err != nil {
		var detail *oerrors.DetailError
		if errors.As(err, &detail) {
			detail.Location = path
			return nil, detail
		}
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	opts.Source = path

	output.Debug("loaded manifest", "path", path)
	return opts, nil
}

// Parse decodes manifest bytes (JSON or YAML). When v is non-nil the document
// is validated against the manifest schema first.
func Parse(data []byte, v *Validator) (*Options, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, oerrors.NewValidationError(err.Error(), "", "", "Manifests must be JSON or YAML mappings")
	}
	if strings.TrimSpace(string(jsonData)) == "null" {
		return &Options{}, nil
	}

	if v != nil {
		if err := v.Validate(jsonData); err != nil {
			return nil, err
		}
	}

	var mf manifestFile
	if err := json.Unmarshal(jsonData, &mf); err != nil {
		return nil, oerrors.NewValidationError(err.Error(), "", "", "")
	}

	return mf.options(), nil
}

func (mf *manifestFile) options() *Options {
	opts := &Options{
		Include:  mf.Include,
		PreInit:  mf.PreInit,
		PostInit: mf.PostInit,
	}
	if mf.Name != nil {
		opts.Name = *mf.Name
	}
	if mf.Tag != nil {
		opts.Tag = *mf.Tag
	}
	if mf.Config != nil {
		opts.Config = configtree.Clone(mf.Config)
	}
	if mf.AddonDetails != nil {
		opts.AddonDetails = configtree.Clone(mf.AddonDetails)
	}

	names := make([]string, 0, len(mf.Macros))
	for name := range mf.Macros {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec := mf.Macros[name]
		opts.Macros = append(opts.Macros, macro.Macro{
			Name:  name,
			Args:  macro.Args(spec.Args),
			Value: spec.Value,
		})
	}

	for _, ft := range mf.FileTypes {
		opts.FileTypes = append(opts.FileTypes, NormalizeExt(ft))
	}

	return opts
}

// NormalizeExt lowercases an extension and ensures a leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Override returns defaults with every field set in manifest applied on top.
// Scalars and lists are replaced; config and addon details are deep-merged.
func Override(defaults, manifest Options) Options {
	out := defaults
	if manifest.Name != "" {
		out.Name = manifest.Name
	}
	if manifest.Tag != "" {
		out.Tag = manifest.Tag
	}
	if manifest.Include != nil {
		out.Include = manifest.Include
	}
	if manifest.PreInit != nil {
		out.PreInit = manifest.PreInit
	}
	if manifest.PostInit != nil {
		out.PostInit = manifest.PostInit
	}
	if manifest.Config != nil {
		out.Config = configtree.Merge(defaults.Config, manifest.Config)
	}
	if manifest.AddonDetails != nil {
		out.AddonDetails = configtree.Merge(defaults.AddonDetails, manifest.AddonDetails)
	}
	if manifest.Macros != nil {
		out.Macros = append(append([]macro.Macro(nil), defaults.Macros...), manifest.Macros...)
	}
	if manifest.FileTypes != nil {
		out.FileTypes = append(append([]string(nil), defaults.FileTypes...), manifest.FileTypes...)
	}
	if manifest.Source != "" {
		out.Source = manifest.Source
	}
	return out
}
