package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEventAndStudent(t *testing.T, dir string) {
	t.Helper()
	_, _, err := executeCLI(t, dir, "create", "Go Workshop", "--date", "01/10/2099", "--capacity", "2")
	require.NoError(t, err)
	_, _, err = executeCLI(t, dir, "register", "student", "Ana Lima", "--email", "ana@example.com")
	require.NoError(t, err)
}

func TestEnrollAndRoster(t *testing.T) {
	dir := t.TempDir()
	seedEventAndStudent(t, dir)

	out, _, err := executeCLI(t, dir, "enroll", "Go Workshop", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "record #1")

	out, _, err = executeCLI(t, dir, "roster", "go workshop")
	require.NoError(t, err)
	assert.Contains(t, out, "1 enrolled")
	assert.Contains(t, out, "Ana Lima")
	assert.Contains(t, out, "ana@example.com")
}

func TestEnrollFullEvent(t *testing.T) {
	dir := t.TempDir()
	_, _, err := executeCLI(t, dir, "create", "Tiny", "--date", "01/10/2099", "--capacity", "1")
	require.NoError(t, err)
	_, _, err = executeCLI(t, dir, "register", "student", "Ana", "--email", "ana@example.com")
	require.NoError(t, err)
	_, _, err = executeCLI(t, dir, "register", "student", "Bia", "--email", "bia@example.com")
	require.NoError(t, err)

	_, _, err = executeCLI(t, dir, "enroll", "Tiny", "1")
	require.NoError(t, err)

	_, _, err = executeCLI(t, dir, "enroll", "Tiny", "2")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "CAPACITY_EXCEEDED")
}

func TestUnenroll(t *testing.T) {
	dir := t.TempDir()
	seedEventAndStudent(t, dir)

	_, _, err := executeCLI(t, dir, "enroll", "Go Workshop", "1")
	require.NoError(t, err)

	out, _, err := executeCLI(t, dir, "unenroll", "Go Workshop", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "removed")

	out, _, err = executeCLI(t, dir, "roster", "Go Workshop")
	require.NoError(t, err)
	assert.Contains(t, out, "0 enrolled")
}

func TestRemoveByRecordID(t *testing.T) {
	dir := t.TempDir()
	seedEventAndStudent(t, dir)

	_, _, err := executeCLI(t, dir, "enroll", "Go Workshop", "1")
	require.NoError(t, err)

	out, _, err := executeCLI(t, dir, "remove", "Go Workshop", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Lima")

	_, _, err = executeCLI(t, dir, "remove", "Go Workshop", "7")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	_, _, err = executeCLI(t, dir, "remove", "Go Workshop", "one")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
