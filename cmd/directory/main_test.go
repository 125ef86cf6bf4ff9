package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DIRECTORY_DATABASE_FILE", filepath.Join(dir, "directory.db"))
	t.Setenv("LOG_LEVEL", "error")

	users := filepath.Join(dir, "users.yaml")
	require.NoError(t, os.WriteFile(users, []byte(`
- email: admin@localhost
  password: secret
- email: alice@example.com
  password: wonderland
`), 0o600))

	out, err := runCmd(t, "seed", "--file", users)
	require.NoError(t, err)
	require.Contains(t, out, "created 2, skipped 0, failed 0")

	out, err = runCmd(t, "seed", "-f", users)
	require.NoError(t, err)
	require.Contains(t, out, "created 0, skipped 2, failed 0")
}

func TestMigrateCommand(t *testing.T) {
	t.Setenv("DIRECTORY_DATABASE_FILE", filepath.Join(t.TempDir(), "directory.db"))

	out, err := runCmd(t, "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "migrations applied")
}

func TestCommandsRequireRelationalBackend(t *testing.T) {
	t.Setenv("DIRECTORY_BACKEND", "local")
	t.Setenv("USERS", `[{"id":"a","email":"a@example.com","password":"x"}]`)

	for _, name := range []string{"seed", "migrate"} {
		_, err := runCmd(t, name)
		require.ErrorContains(t, err, "relational")
	}
}
