package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsjohal14/stockroom/internal/scope/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against path with colors off and returns stdout.
func run(t *testing.T, path, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--file", path, "--color", "never"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func seed(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSearchCommand(t *testing.T) {
	path := seed(t, "widget,12\nhex bolt,40\nnocommahere widget\n")

	out, err := run(t, path, "", "search", "widget")
	require.NoError(t, err)
	assert.Contains(t, out, "| widget               |       12 |")
	assert.NotContains(t, out, "hex bolt")
	assert.NotContains(t, out, "nocommahere")
}

func TestSearchCommandJoinsArgs(t *testing.T) {
	path := seed(t, "widget,12\nhex bolt,40\n")

	out, err := run(t, path, "", "search", "hex", "bolt")
	require.NoError(t, err)
	assert.Contains(t, out, "hex bolt")
}

func TestSearchCommandNotFound(t *testing.T) {
	path := seed(t, "widget,12\n")

	out, err := run(t, path, "", "search", "gizmo")
	require.NoError(t, err)
	assert.Equal(t, "Item not found in inventory.\n", out)
}

func TestSearchCommandMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	out, err := run(t, path, "", "search", "widget")
	require.Error(t, err)
	assert.True(t, errors.Is(err, db.ErrUnavailable))
	assert.Equal(t, msgUnavailable+"\n", out)
}

func TestSearchCommandPolynomialHash(t *testing.T) {
	path := seed(t, "widget,12\ntegdiw,1\n")

	out, err := run(t, path, "", "--hash", "polynomial", "--modulus", "997", "search", "widget")
	require.NoError(t, err)
	assert.Contains(t, out, "widget")
	assert.NotContains(t, out, "tegdiw")
}

func TestAddDeleteUpdateCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.txt")

	out, err := run(t, path, "", "add", "widget", "12")
	require.NoError(t, err)
	assert.Equal(t, msgAdded+"\n", out)

	_, err = run(t, path, "", "add", "hex bolt", "40")
	require.NoError(t, err)

	out, err = run(t, path, "", "upgrade", "widget", "13")
	require.NoError(t, err)
	assert.Equal(t, msgUpgraded+"\n", out)

	out, err = run(t, path, "", "delete", "hex bolt")
	require.NoError(t, err)
	assert.Equal(t, msgDeleted+"\n", out)

	assert.Equal(t, "widget,13\n", readFile(t, path))

	out, err = run(t, path, "", "delete", "hex bolt")
	require.Error(t, err)
	assert.Equal(t, "Item not found in inventory.\n", out)
}

func TestAddCommandRejectsComma(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.txt")

	_, err := run(t, path, "", "add", "a,b", "1")
	require.Error(t, err)

	var reported *reportedError
	assert.True(t, errors.As(err, &reported))
}

func TestListCommand(t *testing.T) {
	path := seed(t, "widget,12\nnocommahere\nnut,3\n")

	out, err := run(t, path, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "widget")
	assert.Contains(t, out, "nut")
	assert.NotContains(t, out, "nocommahere")
}

func TestInvalidFlags(t *testing.T) {
	path := seed(t, "widget,12\n")

	_, err := run(t, path, "", "--backend", "csv", "list")
	assert.Error(t, err)

	_, err = run(t, path, "", "--hash", "md5", "list")
	assert.Error(t, err)
}

func TestMenuSearchAndManage(t *testing.T) {
	path := seed(t, "widget,12\n")

	stdin := strings.Join([]string{
		"M", "1", "hex bolt", "40",
		"m", "3", "widget", "15",
		"S", "bolt",
		"P",
		"X",
		"E",
	}, "\n") + "\n"

	out, err := run(t, path, stdin, "menu")
	require.NoError(t, err)

	assert.Contains(t, out, "MAIN MENU")
	assert.Contains(t, out, msgAdded)
	assert.Contains(t, out, msgUpgraded)
	assert.Contains(t, out, "| hex bolt             |       40 |")
	assert.Contains(t, out, "Not implemented yet.")
	assert.Contains(t, out, "Enter Right Option")
	assert.Equal(t, "widget,15\nhex bolt,40\n", readFile(t, path))
}

func TestMenuContinuesAfterNotFound(t *testing.T) {
	path := seed(t, "widget,12\n")

	out, err := run(t, path, "M\n2\ngizmo\nV\n", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Item not found in inventory.")
	assert.Contains(t, out, "| widget               |       12 |")
}

func TestMenuInvalidManageOption(t *testing.T) {
	path := seed(t, "widget,12\n")

	out, err := run(t, path, "M\n9\nE", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid option.")
}
