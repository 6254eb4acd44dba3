package manifest

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Validator checks manifest documents against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded manifest schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling manifest schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Manifest"))
	if !def.Exists() {
		return nil, fmt.Errorf("manifest schema has no #Manifest definition")
	}

	return &Validator{ctx: ctx, schema: def}, nil
}

// Validate checks a JSON-encoded manifest.
func (v *Validator) Validate(jsonData []byte) error {
	doc := v.ctx.CompileBytes(jsonData)
	if doc.Err() != nil {
		return oerrors.NewValidationError(doc.Err().Error(), "", "", "")
	}

	unified := v.schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		field := ""
		if errs := cueerrors.Errors(err); len(errs) > 0 {
			field = strings.Join(errs[0].Path(), ".")
		}
		return oerrors.NewValidationError(
			cueerrors.Details(err, nil),
			"",
			field,
			"Recognized keys: name, tag, include, preInit, postInit, config, macros, addon_details, filetypes",
		)
	}
	return nil
}
