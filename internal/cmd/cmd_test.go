package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmundklaa/sqfpack/internal/config"
	oerrors "github.com/sigmundklaa/sqfpack/internal/errors"
	"github.com/sigmundklaa/sqfpack/internal/testutil"
)

const projectFile = `
tag: t
subs:
  core:
    tag: c
    is_addon: true
`

// newProject lays out a one-addon project and returns the project file path.
func newProject(t *testing.T, files map[string]string) (dir, file string) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvOutput, "")

	dir = t.TempDir()
	testutil.WriteTree(t, dir, files)
	file = testutil.WriteFile(t, dir, config.DefaultFileName, projectFile)
	return dir, file
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestBuildCommand(t *testing.T) {
	dir, file := newProject(t, map[string]string{
		"core/hello.sqf":  "hint 'hello';",
		"core/util/x.sqf": "",
	})

	_, err := run(t, "build", "-c", file)
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	assert.True(t, testutil.Exists(t, out, "core/config.cpp"))
	assert.True(t, testutil.Exists(t, out, "core/$PBOPREFIX$"))
	assert.True(t, testutil.Exists(t, out, "core/fn_hello.sqf"))
	assert.True(t, testutil.Exists(t, out, "core/util/fn_x.sqf"))
}

func TestBuildCommandOutputFlag(t *testing.T) {
	dir, file := newProject(t, map[string]string{"core/hello.sqf": ""})

	_, err := run(t, "build", "-c", file, "--output", "build")
	require.NoError(t, err)
	assert.True(t, testutil.Exists(t, dir, "build/core/config.cpp"))
	assert.False(t, testutil.Exists(t, dir, "out"))
}

func TestBuildCommandRefusesSourceRoot(t *testing.T) {
	dir, file := newProject(t, map[string]string{"core/hello.sqf": ""})

	_, err := run(t, "build", "-c", file, "--output", ".")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
	assert.True(t, testutil.Exists(t, dir, "core/hello.sqf"))
}

func TestBuildCommandMissingProject(t *testing.T) {
	t.Setenv(config.EnvConfig, "")
	_, err := run(t, "build", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}

func TestTreeCommand(t *testing.T) {
	_, file := newProject(t, map[string]string{
		"core/hello.sqf":  "",
		"core/util/x.sqf": "",
	})

	out, err := run(t, "tree", "-c", file, "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: core")
	assert.Contains(t, out, "kind: addon")
	assert.Contains(t, out, "name: util")

	out, err = run(t, "tree", "-c", file)
	require.NoError(t, err)
	assert.Contains(t, out, "core")
	assert.Contains(t, out, "util/")
}

func TestTreeCommandInvalidFormat(t *testing.T) {
	_, file := newProject(t, map[string]string{"core/hello.sqf": ""})

	_, err := run(t, "tree", "-c", file, "-f", "xml")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitUsageError, oerrors.ExitCodeFromError(err))
}

func TestConfigCommand(t *testing.T) {
	_, file := newProject(t, map[string]string{"core/hello.sqf": ""})

	out, err := run(t, "config", "-c", file)
	require.NoError(t, err)
	assert.Contains(t, out, "core/config.cpp:")
	assert.Contains(t, out, "CfgPatches:")
	assert.Contains(t, out, "CfgFunctions:")

	out, err = run(t, "config", "-c", file, "--encoded")
	require.NoError(t, err)
	assert.Contains(t, out, "// core/config.cpp")
	assert.Contains(t, out, "class CfgPatches")
}

func TestConfigCommandUnknownPackage(t *testing.T) {
	_, file := newProject(t, map[string]string{"core/hello.sqf": ""})

	_, err := run(t, "config", "-c", file, "--package", "nope")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}

func TestDiffCommand(t *testing.T) {
	dir, file := newProject(t, map[string]string{"core/hello.sqf": ""})

	snapshot, err := run(t, "config", "-c", file, "-f", "yaml")
	require.NoError(t, err)
	snapshotFile := testutil.WriteFile(t, t.TempDir(), "snapshot.yaml", snapshot)

	out, err := run(t, "diff", "-c", file, snapshotFile)
	require.NoError(t, err)
	assert.Contains(t, out, "No changes detected.")

	testutil.WriteFile(t, dir, "core/bye.sqf", "")
	out, err = run(t, "diff", "-c", file, snapshotFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Modified:")
	assert.Contains(t, out, "core/config.cpp")
}

func TestDiffCommandMissingSnapshot(t *testing.T) {
	_, file := newProject(t, map[string]string{"core/hello.sqf": ""})

	_, err := run(t, "diff", "-c", file, filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}

func TestVetCommand(t *testing.T) {
	_, file := newProject(t, map[string]string{
		"core/module.yaml": "include: [/lib]\n",
		"core/lib/a.sqf":   "",
	})

	out, err := run(t, "vet", "-c", file)
	require.NoError(t, err)
	assert.Contains(t, out, "1 references resolved")
}

func TestVetCommandMissingInclude(t *testing.T) {
	_, file := newProject(t, map[string]string{
		"core/module.yaml": "include: [/missing]\n",
	})

	_, err := run(t, "vet", "-c", file)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sqfpack version")
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	_, err := run(t, "build", "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitUsageError, oerrors.ExitCodeFromError(err))
}
