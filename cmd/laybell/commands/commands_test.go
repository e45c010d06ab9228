package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/laybell/pkg/config"
	"github.com/chazu/laybell/pkg/export"
	"github.com/chazu/laybell/pkg/parts"
)

var repoConfig = filepath.Join("..", "..", "..", config.FileName)

// run executes the command tree with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestBuildSelectedComponents(t *testing.T) {
	out := t.TempDir()
	stdout, _, err := run(t, "build", "-c", repoConfig, "--out", out, "--cells", "32",
		"--log-level", "error", parts.SpoolHolder, parts.PeelPlate)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 2, "one line per exported file")
	for _, name := range []string{parts.SpoolHolder, parts.PeelPlate} {
		path := filepath.Join(out, name+".stl")
		assert.FileExists(t, path)
		assert.Contains(t, stdout, "wrote "+path)
	}
	assert.NoFileExists(t, filepath.Join(out, parts.MainFrame+".stl"))

	m, err := export.ReadManifest(filepath.Join(out, export.ManifestFile))
	require.NoError(t, err)
	assert.Len(t, m.Components, 2)
	assert.Equal(t, repoConfig, m.Config)
}

func TestRootCommandBuildsEverything(t *testing.T) {
	out := t.TempDir()
	_, _, err := run(t, "-c", repoConfig, "--out", out, "--cell-size", "4", "--format", "3mf",
		"--no-manifest", "--log-level", "error", "--profile", "22mm")
	require.NoError(t, err)
	for _, name := range parts.Names() {
		assert.FileExists(t, filepath.Join(out, name+".3mf"))
	}
	assert.NoFileExists(t, filepath.Join(out, export.ManifestFile))
}

func TestBuildFailsBeforeAnyComponentOnConfigError(t *testing.T) {
	out := t.TempDir()
	_, _, err := run(t, "build", "-c", filepath.Join(t.TempDir(), "missing.toml"), "--out", out)
	var ce *config.Error
	require.ErrorAs(t, err, &ce)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildReportsFailedComponents(t *testing.T) {
	doc, err := os.ReadFile(repoConfig)
	require.NoError(t, err)
	broken := strings.Replace(string(doc), "dancer_arm_width = 12.0", "dancer_arm_width = 6.0", 1)
	require.NotEqual(t, string(doc), broken, "fixture must change dancer_arm_width")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	out := t.TempDir()
	stdout, _, err := run(t, "build", "-c", path, "--out", out, "--cells", "24", "--log-level", "error",
		parts.DancerArm, parts.SpoolHolder)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 components failed")
	assert.Contains(t, err.Error(), "dancer_arm_width")
	assert.Contains(t, stdout, parts.SpoolHolder)
	assert.NotContains(t, stdout, parts.DancerArm)
}

func TestBuildRejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"build", "--format", "obj"},
		{"build", "--kernel", "cadquery"},
		{"build", "tension_arm"},
		{"build", "--log-level", "loud"},
	} {
		_, _, err := run(t, append(args, "-c", repoConfig, "--out", t.TempDir())...)
		assert.Error(t, err, "%v", args)
	}
}

func TestStrictBuildValidates(t *testing.T) {
	doc, err := os.ReadFile(repoConfig)
	require.NoError(t, err)
	bad := strings.Replace(string(doc), "wall_thickness = 2.5", "wall_thickness = 0.5", 1)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, _, err = run(t, "build", "--strict", "-c", path, "--out", t.TempDir())
	var ve *config.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestValidate(t *testing.T) {
	stdout, _, err := run(t, "validate", "-c", repoConfig, "--profile", "22mm")
	require.NoError(t, err)
	assert.Contains(t, stdout, "profile 22mm): ok")

	doc, err := os.ReadFile(repoConfig)
	require.NoError(t, err)
	bad := strings.Replace(string(doc), "wall_thickness = 2.5", "wall_thickness = 0.5", 1)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	stdout, _, err = run(t, "validate", "-c", path)
	require.Error(t, err)
	assert.Contains(t, stdout, "wall_thickness")
}

func TestDescribe(t *testing.T) {
	stdout, _, err := run(t, "describe", "-c", repoConfig, parts.VialCradle)
	require.NoError(t, err)
	assert.Contains(t, stdout, "vial_cradle:")
	assert.Contains(t, stdout, "2 cuts")
	assert.Contains(t, stdout, `box "groove"`)
	assert.Contains(t, stdout, "difference")
}

func TestList(t *testing.T) {
	stdout, _, err := run(t, "list", "--format", "3mf")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], parts.MainFrame))
	assert.Contains(t, lines[5], "guide_roller_bracket.3mf")
}

func TestProfiles(t *testing.T) {
	stdout, _, err := run(t, "profiles", "-c", repoConfig)
	require.NoError(t, err)
	assert.Equal(t, "22mm\n", stdout)
}
