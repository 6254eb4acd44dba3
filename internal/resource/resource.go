// Package resource parses resource description files into config fragments.
//
// A resource file holds one or more YAML documents. Each document describes
// one fragment:
//
//	name: MyDialog   # defaults to the file stem
//	title: true      # nest under the resource titles class
//	config:
//	  idd: 1200
//	  class controls: ...
package resource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sigmundklaa/sqfpack/internal/configtree"
	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
)

// Fragment is one named piece of config produced by a resource file.
type Fragment struct {
	Name   string
	Config configtree.Tree

	// Title marks a fragment that belongs under the resource titles class.
	Title bool
}

type document struct {
	Name   string         `yaml:"name"`
	Title  bool           `yaml:"title"`
	Config map[string]any `yaml:"config"`
}

// ParseFile reads and parses the resource file at path.
func ParseFile(path string) ([]Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resource: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	frags, err := Parse(data, stem)
	if err != nil {
		var detail *oerrors.DetailError
		if errors.As(err, &detail) {
			detail.Location = path
		}
		return nil, err
	}
	return frags, nil
}

// Parse decodes every document in data. Unnamed documents take defaultName;
// when several documents are unnamed they are suffixed with their index.
func Parse(data []byte, defaultName string) ([]Fragment, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var frags []Fragment
	for i := 0; ; i++ {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, oerrors.NewValidationError(err.Error(), "", "", "Resource documents accept name, title and config")
		}

		name := doc.Name
		if name == "" {
			name = defaultName
			if i > 0 {
				name = fmt.Sprintf("%s_%d", defaultName, i)
			}
		}
		frags = append(frags, Fragment{
			Name:   name,
			Config: configtree.Merge(nil, doc.Config),
			Title:  doc.Title,
		})
	}
	return frags, nil
}
