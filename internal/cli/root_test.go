package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/packs/internal/auth"
	"github.com/mmynk/packs/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "packs", cmd.Use)

	envFlag := cmd.PersistentFlags().Lookup("env-file")
	require.NotNil(t, envFlag)
	assert.Equal(t, ".env", envFlag.DefValue)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "seed", "openapi"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

// execute runs the CLI against a temporary SQLite database.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "sqlite:///"+dbPath)

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOpenAPICommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "unused.db")

	out, err := execute(t, db, "openapi")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])

	out, err = execute(t, db, "openapi", "--format", "yaml")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "paths")

	_, err = execute(t, db, "openapi", "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSeedCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "seed.db")

	out, err := execute(t, db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 3 packs")

	out, err = execute(t, db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Created 0 packs and 0 items.")

	t.Run("custom file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "packs.yaml")
		require.NoError(t, os.WriteFile(file, []byte("packs:\n  - name: Custom\n    items:\n      - name: Spoon\n        price: 1.5\n"), 0o644))

		out, err := execute(t, db, "seed", "--file", file)
		require.NoError(t, err)
		assert.Contains(t, out, "Created 1 packs and 1 items.")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, db, "seed", "--file", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "-1m")
	_, err := execute(t, filepath.Join(t.TempDir(), "x.db"), "seed")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestOpenStore(t *testing.T) {
	cfg := config.Config{DatabaseURL: "sqlite:///" + filepath.Join(t.TempDir(), "store.db")}
	store, err := openStore(cfg)
	require.NoError(t, err)
	defer store.Close()
	assert.NoError(t, store.Ping(context.Background()))

	_, err = openStore(config.Config{DatabaseURL: "mysql://localhost/db"})
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestOpenBlocklist(t *testing.T) {
	blocklist, closeFn, err := openBlocklist(context.Background(), config.Config{})
	require.NoError(t, err)
	defer closeFn()
	_, ok := blocklist.(*auth.MemoryBlocklist)
	assert.True(t, ok)

	_, _, err = openBlocklist(context.Background(), config.Config{RedisURL: "not-a-url://"})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad", nil)))
}
