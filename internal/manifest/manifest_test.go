package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmundklaa/sqfpack/internal/configtree"
	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
	"github.com/sigmundklaa/sqfpack/internal/macro"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestLoadMissingManifest(t *testing.T) {
	opts, err := Load(t.TempDir(), newValidator(t))

	require.NoError(t, err)
	assert.Equal(t, &Options{}, opts)
}

func TestLoadJSONManifest(t *testing.T) {
	dir := t.TempDir()
	content := `{
  "name": "Core",
  "tag": "core",
  "include": ["../common", "/shared/*"],
  "preInit": ["init"],
  "postInit": ["start"],
  "config": {"CfgCore": {"enabled": 1}},
  "macros": {
    "VERSION": "3",
    "PAIR": {"value": "ARG_1 + ARG_2", "args": 2}
  },
  "addon_details": {"author": "sig"},
  "filetypes": ["cfg", ".TXT"]
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "module.json"), []byte(content), 0o644))

	opts, err := Load(dir, newValidator(t))
	require.NoError(t, err)

	assert.Equal(t, "Core", opts.Name)
	assert.Equal(t, "core", opts.Tag)
	assert.Equal(t, []string{"../common", "/shared/*"}, opts.Include)
	assert.Equal(t, []string{"init"}, opts.PreInit)
	assert.Equal(t, []string{"start"}, opts.PostInit)
	assert.Equal(t, configtree.Tree{"CfgCore": configtree.Tree{"enabled": float64(1)}}, opts.Config)
	assert.Equal(t, configtree.Tree{"author": "sig"}, opts.AddonDetails)
	assert.Equal(t, []string{".cfg", ".txt"}, opts.FileTypes)
	assert.Equal(t, filepath.Join(dir, "module.json"), opts.Source)

	require.Len(t, opts.Macros, 2)
	assert.Equal(t, macro.Macro{Name: "PAIR", Args: []string{"ARG_1", "ARG_2"}, Value: "ARG_1 + ARG_2"}, opts.Macros[0])
	assert.Equal(t, macro.Macro{Name: "VERSION", Value: "3"}, opts.Macros[1])
}

func TestLoadYAMLManifest(t *testing.T) {
	dir := t.TempDir()
	content := `
tag: ui
include:
  - ../core
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "module.yaml"), []byte(content), 0o644))

	opts, err := Load(dir, newValidator(t))
	require.NoError(t, err)
	assert.Equal(t, "ui", opts.Tag)
	assert.Equal(t, []string{"../core"}, opts.Include)
}

func TestLoadEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "module.yaml"), []byte(""), 0o644))

	opts, err := Load(dir, newValidator(t))
	require.NoError(t, err)
	assert.Empty(t, opts.Tag)
}

func TestParseRejectsInvalidManifests(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: `{"tags": "x"}`},
		{name: "tag not a string", content: `{"tag": 3}`},
		{name: "include not a list", content: `{"include": "../x"}`},
		{name: "negative macro args", content: `{"macros": {"A": {"value": "x", "args": -1}}}`},
		{name: "malformed", content: `{"tag": `},
	}

	v := newValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), v)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
		})
	}
}

func TestLoadSetsLocationOnValidationError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "module.json"), []byte(`{"bogus": 1}`), 0o644))

	_, err := Load(dir, newValidator(t))
	require.Error(t, err)

	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, filepath.Join(dir, "module.json"), detail.Location)
}

func TestOverride(t *testing.T) {
	defaults := Options{
		Name:      "dir",
		Tag:       "default",
		Include:   []string{"a"},
		Config:    configtree.Tree{"x": configtree.Tree{"a": 1}},
		FileTypes: []string{".hpp"},
	}
	manifest := Options{
		Tag:       "override",
		Config:    configtree.Tree{"x": configtree.Tree{"b": 2}},
		FileTypes: []string{".txt"},
		Macros:    []macro.Macro{{Name: "M"}},
	}

	out := Override(defaults, manifest)

	assert.Equal(t, "dir", out.Name)
	assert.Equal(t, "override", out.Tag)
	assert.Equal(t, []string{"a"}, out.Include)
	assert.Equal(t, configtree.Tree{"x": configtree.Tree{"a": 1, "b": 2}}, out.Config)
	assert.Equal(t, []string{".hpp", ".txt"}, out.FileTypes)
	assert.Len(t, out.Macros, 1)
}

func TestIsManifest(t *testing.T) {
	assert.True(t, IsManifest("module.json"))
	assert.True(t, IsManifest("module.yml"))
	assert.False(t, IsManifest("config.json"))
}

func TestNormalizeExt(t *testing.T) {
	assert.Equal(t, ".sqf", NormalizeExt("SQF"))
	assert.Equal(t, ".hpp", NormalizeExt(".hpp"))
	assert.Equal(t, "", NormalizeExt(" "))
}
