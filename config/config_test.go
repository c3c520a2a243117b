package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "./default.db", cfg.DBPath)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 4040, cfg.Port)
	assert.True(t, cfg.HTTP)
	assert.Equal(t, KindMetric, cfg.Kind)
	assert.Equal(t, BackendBadger, cfg.Backend)
}

func TestLoad_FlagsOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db-path", "./default.db", "")
	flags.Int("port", 4040, "")
	flags.String("kind", KindMetric, "")
	require.NoError(t, flags.Parse([]string{"--db-path", "/tmp/x.db", "--port", "9000", "--kind", "log"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, KindLog, cfg.Kind)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8080\nbackend: leveldb\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, BackendLevelDB, cfg.Backend)
	assert.Equal(t, "127.0.0.1", cfg.Host)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TELEMSTORE_HOST", "0.0.0.0")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Kind = "spans"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Backend = "rocksdb"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Port = 70000
	assert.Error(t, bad.Validate())
}
