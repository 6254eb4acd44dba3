package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
)

func TestParseSingleDocument(t *testing.T) {
	data := []byte(`
title: true
config:
  idd: 1200
  controls:
    background:
      x: 0.5
`)
	frags, err := Parse(data, "hud")
	require.NoError(t, err)
	require.Len(t, frags, 1)

	assert.Equal(t, "hud", frags[0].Name)
	assert.True(t, frags[0].Title)
	assert.Equal(t, 1200, frags[0].Config["idd"])
}

func TestParseMultipleDocuments(t *testing.T) {
	data := []byte(`name: Dialog
config:
  idd: 1
---
config:
  idd: 2
---
config:
  idd: 3
`)
	frags, err := Parse(data, "menu")
	require.NoError(t, err)
	require.Len(t, frags, 3)

	assert.Equal(t, "Dialog", frags[0].Name)
	assert.Equal(t, "menu_1", frags[1].Name)
	assert.Equal(t, "menu_2", frags[2].Name)
	assert.False(t, frags[1].Title)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("bogus: 1\n"), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.aewl")
	require.NoError(t, os.WriteFile(path, []byte("config:\n  fadeIn: 1\n"), 0o644))

	frags, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, "overlay", frags[0].Name)
}

func TestParseFileSetsLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.aewl")
	require.NoError(t, os.WriteFile(path, []byte("nope: true\n"), 0o644))

	_, err := ParseFile(path)
	var detail *oerrors.DetailError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, path, detail.Location)
}
