package pack

import (
	"fmt"

	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
)

// PathNotFoundError indicates a required path reference did not resolve to a directory.
type PathNotFoundError struct {
	// Path is the absolute path that was looked up.
	Path string

	// Ref is the reference as written, when the lookup came from an include.
	Ref string

	// From is the directory of the module that made the reference.
	From string
}

func (e *PathNotFoundError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("path not found: %q (from %s) resolved to %s", e.Ref, e.From, e.Path)
	}
	return fmt.Sprintf("path not found: %s", e.Path)
}

func (e *PathNotFoundError) Unwrap() error {
	return oerrors.ErrNotFound
}

// UnownedModuleError indicates a reference named an existing directory that
// belongs to no module of the build.
type UnownedModuleError struct {
	Path string
	Ref  string
	From string

	// Package is set when the directory lies inside a package unit but was
	// not part of its tree when the unit was declared.
	Package string
}

func (e *UnownedModuleError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("reference %q (from %s) resolved to %s, which is not in the module tree of package %q",
			e.Ref, e.From, e.Path, e.Package)
	}
	return fmt.Sprintf("reference %q (from %s) resolved to %s, which is outside every package unit",
		e.Ref, e.From, e.Path)
}

func (e *UnownedModuleError) Unwrap() error {
	return oerrors.ErrValidation
}

// InvalidPackageUnitError indicates a package was declared with an
// impossible combination of flags.
type InvalidPackageUnitError struct {
	Name   string
	Path   string
	Reason string
}

func (e *InvalidPackageUnitError) Error() string {
	return fmt.Sprintf("invalid package %q at %s: %s", e.Name, e.Path, e.Reason)
}

func (e *InvalidPackageUnitError) Unwrap() error {
	return oerrors.ErrValidation
}

// NotAddonArtifactError indicates an addon-only accessor was used on a
// package that is not a deployable addon.
type NotAddonArtifactError struct {
	Name string
	Op   string
}

func (e *NotAddonArtifactError) Error() string {
	return fmt.Sprintf("package %q is not an addon: %s is only available for addons", e.Name, e.Op)
}

func (e *NotAddonArtifactError) Unwrap() error {
	return oerrors.ErrUsage
}
