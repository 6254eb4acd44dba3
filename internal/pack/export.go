package pack

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/sigmundklaa/sqfpack/internal/configtree"
	"github.com/sigmundklaa/sqfpack/internal/output"
)

// Result summarizes one export.
type Result struct {
	// OutDir is the absolute export root.
	OutDir string

	// Packages holds one result per package unit, in declaration order.
	Packages []*PackageResult
}

// PackageResult is the aggregate output of one package unit.
type PackageResult struct {
	Package *Package

	// Dir is the absolute output directory of the unit's root module.
	Dir string

	// ConfigFile is the absolute path of the written aggregate config.
	ConfigFile string

	// Config is the aggregate config that was encoded.
	Config configtree.Tree

	Functions FunctionRegistry

	// Modules counts the modules exported for the unit.
	Modules int
}

// ModuleCount returns the number of modules exported.
func (r *Result) ModuleCount() int {
	n := 0
	for _, p := range r.Packages {
		n += p.Modules
	}
	return n
}

// FunctionCount returns the number of functions registered.
func (r *Result) FunctionCount() int {
	n := 0
	for _, p := range r.Packages {
		n += p.Functions.Count()
	}
	return n
}

// Export regenerates the output tree under outDir from scratch. The directory
// is removed first and the new tree is written to a sibling staging directory
// that replaces outDir only when every package exported. On error nothing is
// left at outDir.
func (s *Session) Export(ctx context.Context, outDir string) (*Result, error) {
	abs, err := Canonical(outDir)
	if err != nil {
		return nil, err
	}
	if err := os.RemoveAll(abs); err != nil {
		return nil, fmt.Errorf("clearing output directory %s: %w", abs, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("creating output parent %s: %w", filepath.Dir(abs), err)
	}
	staging, err := os.MkdirTemp(filepath.Dir(abs), filepath.Base(abs)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	var packages []*PackageResult
	for _, p := range s.Packages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pr, err := s.exportPackage(p, staging)
		if err != nil {
			return nil, fmt.Errorf("exporting package %s: %w", p.Name, err)
		}
		packages = append(packages, pr)
	}

	if err := os.Rename(staging, abs); err != nil {
		return nil, fmt.Errorf("moving staged output to %s: %w", abs, err)
	}
	for _, pr := range packages {
		pr.Dir = rebase(pr.Dir, staging, abs)
		pr.ConfigFile = rebase(pr.ConfigFile, staging, abs)
	}
	return &Result{OutDir: abs, Packages: packages}, nil
}

// rebase moves path from below oldRoot to below newRoot.
func rebase(path, oldRoot, newRoot string) string {
	rel, err := filepath.Rel(oldRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(newRoot, rel)
}

// exportPackage exports the module tree of a package unit and writes its
// aggregate config.
func (s *Session) exportPackage(p *Package, outRoot string) (*PackageResult, error) {
	log := output.PackageLogger(p.Name)

	before := s.exportedCount()
	cfg, fns, err := s.exportModule(p.module, outRoot)
	if err != nil {
		return nil, err
	}

	agg, err := s.aggregate(p, cfg, fns)
	if err != nil {
		return nil, err
	}
	data, err := s.opts.Encode(agg)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", p.ConfigFileName(), err)
	}

	dir := filepath.Join(outRoot, p.module.OutputRel())
	configFile := filepath.Join(dir, p.ConfigFileName())
	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", configFile, err)
	}
	log.Debug("wrote config", "path", configFile)

	if p.IsAddon {
		prefix, err := p.Prefix()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, PrefixFile), []byte(prefix), 0o644); err != nil {
			return nil, fmt.Errorf("writing prefix file: %w", err)
		}
	}

	pr := &PackageResult{
		Package:    p,
		Dir:        dir,
		ConfigFile: configFile,
		Config:     agg,
		Functions:  fns,
		Modules:    s.exportedCount() - before,
	}
	log.Info("exported", "modules", pr.Modules, "functions", fns.Count())
	return pr, nil
}

// aggregate returns the config written at the root of p.
func (s *Session) aggregate(p *Package, cfg configtree.Tree, fns FunctionRegistry) (configtree.Tree, error) {
	agg := configtree.Merge(cfg, configtree.Tree{FunctionsConfigKey: fns.Config()})
	if !p.IsAddon {
		return agg, nil
	}
	patches := configtree.Merge(configtree.Tree{
		"units":           []any{},
		"weapons":         []any{},
		RequiredAddonsKey: []any{},
	}, p.module.AddonDetails)
	return configtree.Set(agg, []string{PatchesConfigKey, p.Name}, patches), nil
}

func (s *Session) exportedCount() int {
	n := 0
	for _, m := range s.registry.Modules() {
		if m.state == StateExported {
			n++
		}
	}
	return n
}

// exportModule writes m and its descendants below outRoot and returns the
// merged config and function registry of the subtree.
func (s *Session) exportModule(m *Module, outRoot string) (configtree.Tree, FunctionRegistry, error) {
	if m.state == StateUnmaterialized {
		panic(fmt.Sprintf("pack: export of uninitialized module %s", m.Path))
	}
	log := output.ModuleLogger(m.NamingTag())

	dir := filepath.Join(outRoot, m.OutputRel())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	if err := s.resolveIncludes(m); err != nil {
		return nil, nil, err
	}

	fns := FunctionRegistry{m.RealFunctionName(registryEntryFunction): m.functionGroup()}

	macroFile := filepath.Join(dir, m.MacroFileName())
	if err := os.WriteFile(macroFile, []byte(m.Macros.Render()), 0o644); err != nil {
		return nil, nil, fmt.Errorf("writing macro file %s: %w", macroFile, err)
	}

	cfg := configtree.Clone(m.Config)
	for _, child := range m.Children {
		childCfg, childFns, err := s.exportModule(child, outRoot)
		if err != nil {
			return nil, nil, err
		}
		cfg = configtree.Merge(cfg, childCfg)
		for _, key := range fns.Union(childFns) {
			log.Warn("function group replaced by child module; give the child a tag to keep both",
				"key", key, "child", child.SourceName)
		}
	}

	header, err := m.includeHeader()
	if err != nil {
		return nil, nil, err
	}
	for _, e := range m.Entries {
		cfg, err = s.exportEntry(m, e, dir, header, cfg)
		if err != nil {
			return nil, nil, err
		}
	}

	m.state = StateExported
	log.Debug("exported module", "dir", dir, "children", len(m.Children), "entries", len(m.Entries))
	return cfg, fns, nil
}

// exportEntry handles one source entry and returns cfg with any config the
// entry contributes merged in.
func (s *Session) exportEntry(m *Module, e Entry, dir, header string, cfg configtree.Tree) (configtree.Tree, error) {
	ext := e.Ext()
	switch {
	case ext == SourceExt:
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return nil, fmt.Errorf("reading source %s: %w", e.Path, err)
		}
		name := e.Name
		if !e.Reserved() {
			name = FunctionFilePrefix + name
		}
		out := append([]byte(header), data...)
		if err := os.WriteFile(filepath.Join(dir, name), out, 0o644); err != nil {
			return nil, fmt.Errorf("writing source %s: %w", name, err)
		}
		return cfg, nil

	case ext == ResourceExt:
		if s.opts.ParseResource == nil {
			output.Warn("no resource parser configured, copying verbatim", "path", e.Path)
			return cfg, copyFile(e.Path, filepath.Join(dir, e.Name))
		}
		frags, err := s.opts.ParseResource(e.Path)
		if err != nil {
			return nil, fmt.Errorf("parsing resource %s: %w", e.Path, err)
		}
		for _, f := range frags {
			if f.Title {
				cfg = configtree.Merge(cfg, configtree.Tree{ResourceTitlesKey: configtree.Tree{f.Name: f.Config}})
			} else {
				cfg = configtree.Merge(cfg, configtree.Tree{f.Name: f.Config})
			}
		}
		return cfg, nil

	case ext == SidecarExt:
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return nil, fmt.Errorf("reading sidecar %s: %w", e.Path, err)
		}
		var sidecar map[string]any
		if err := yaml.Unmarshal(data, &sidecar); err != nil {
			return nil, fmt.Errorf("parsing sidecar %s: %w", e.Path, err)
		}
		return configtree.Merge(cfg, sidecar), nil

	case m.hasFileType(ext):
		return cfg, copyFile(e.Path, filepath.Join(dir, e.Name))
	}

	output.Debug("skipping file", "path", e.Path)
	return cfg, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
