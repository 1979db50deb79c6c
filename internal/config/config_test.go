package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "journal.db"), cfg.JournalFile)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inscrito.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/inscrito\njournal_file: /srv/inscrito/audit.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/inscrito", cfg.DataDir)
	assert.Equal(t, "/srv/inscrito/audit.db", cfg.JournalFile)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inscrito.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/inscrito\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/inscrito", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "journal.db"), cfg.JournalFile)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inscrito.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /from/file\n"), 0o644))
	t.Setenv("INSCRITO_DATA_DIR", "/from/env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "journal.db"), cfg.JournalFile)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inscrito.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadRejectsEmptyDataDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inscrito.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`data_dir: ""`+"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
