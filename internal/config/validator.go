package config

import (
	"embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

// Validator validates project settings against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new project validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schemaData, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaData)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema.LookupPath(cue.ParsePath("#Project")),
	}, nil
}

// Validate checks decoded project settings. location names the project file
// in the returned error.
func (v *Validator) Validate(settings map[string]any, location string) error {
	doc := v.ctx.Encode(settings)
	if doc.Err() != nil {
		return oerrors.NewValidationError(doc.Err().Error(), location, "", "")
	}

	if err := v.schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		field := ""
		if errs := cueerrors.Errors(err); len(errs) > 0 {
			field = strings.Join(errs[0].Path(), ".")
		}
		return oerrors.NewValidationError(
			cueerrors.Details(err, nil),
			location,
			field,
			"Recognized keys: path, tag, output, subs",
		)
	}
	return nil
}
