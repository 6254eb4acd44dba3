package pack

import (
	"fmt"
	"os"
	"path/filepath"
)

// Registry maps canonical directory paths to their single live Module.
// A Registry belongs to one Session and must not be shared between builds.
type Registry struct {
	modules map[string]*Module
	order   []*Module
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Canonical returns the absolute, cleaned form of path used as registry key.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path for %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// Lookup returns the live module for path without creating one.
func (r *Registry) Lookup(path string) (*Module, bool) {
	key, err := Canonical(path)
	if err != nil {
		return nil, false
	}
	m, ok := r.modules[key]
	return m, ok
}

// GetOrCreate returns the live module for path. If none exists one is
// constructed, stored, and init runs on it exactly once. An existing module is
// returned unchanged regardless of init.
//
// The module is stored before init runs so that references back to it during
// initialization observe the same instance.
func (r *Registry) GetOrCreate(path string, init func(*Module) error) (*Module, error) {
	key, err := Canonical(path)
	if err != nil {
		return nil, err
	}
	if m, ok := r.modules[key]; ok {
		return m, nil
	}

	info, err := os.Stat(key)
	if err != nil || !info.IsDir() {
		return nil, &PathNotFoundError{Path: key}
	}

	m := &Module{Path: key}
	r.modules[key] = m
	r.order = append(r.order, m)

	if init != nil {
		if err := init(m); err != nil {
			delete(r.modules, key)
			for i, o := range r.order {
				if o == m {
					r.order = append(r.order[:i], r.order[i+1:]...)
					break
				}
			}
			return nil, err
		}
	}
	return m, nil
}

// Len returns the number of live modules.
func (r *Registry) Len() int {
	return len(r.modules)
}

// Modules returns the live modules in creation order.
func (r *Registry) Modules() []*Module {
	out := make([]*Module, len(r.order))
	copy(out, r.order)
	return out
}

// Reset drops every live module.
func (r *Registry) Reset() {
	r.modules = make(map[string]*Module)
	r.order = nil
}
