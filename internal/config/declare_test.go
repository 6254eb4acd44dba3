package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmundklaa/sqfpack/internal/pack"
	"github.com/sigmundklaa/sqfpack/internal/testutil"
)

func TestProjectNewSession(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"src/addons/core/fn.sqf":     "",
		"src/addons/ext/":            "",
		"src/addons/readme.txt":      "",
		"src/missions/demo/init.sqf": "",
	})
	file := testutil.WriteFile(t, dir, DefaultFileName, `
path: src
tag: x
subs:
  addons:
    path: addons
    is_module: false
    subs:
      glob: "*"
      is_addon: true
  demo:
    path: missions/demo
`)

	p, err := newLoader(t).Load(file)
	require.NoError(t, err)

	s, err := p.NewSession(pack.Options{})
	require.NoError(t, err)

	units := s.Packages()
	require.Len(t, units, 3)
	assert.Equal(t, "core", units[0].Name)
	assert.True(t, units[0].IsAddon)
	assert.Equal(t, "ext", units[1].Name)
	assert.Equal(t, "demo", units[2].Name)
	assert.False(t, units[2].IsAddon)

	require.Len(t, s.Root.Children(), 2)
	assert.True(t, s.Root.Children()[0].IsContainer())
}

func TestProjectNewSessionInvalidUnit(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"core/": ""})
	file := testutil.WriteFile(t, dir, DefaultFileName, "subs:\n  core:\n    is_addon: true\n    is_module: false\n")

	p, err := newLoader(t).Load(file)
	require.NoError(t, err)

	_, err = p.NewSession(pack.Options{})
	var invalid *pack.InvalidPackageUnitError
	assert.ErrorAs(t, err, &invalid)
}
