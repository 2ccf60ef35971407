package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "", cfg.ReportDir)
	assert.False(t, cfg.NoBackup)
	assert.Equal(t, ",", cfg.Tabular.Delimiter)
	assert.Equal(t, "UTF-8", cfg.Tabular.Encoding)
	assert.Equal(t, "csv", cfg.Merge.Prefer)
	assert.False(t, cfg.Merge.OverwriteAll)
	assert.False(t, cfg.Merge.DropOrphans)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `output_dir: ../intl
report_dir: reports
no_backup: true
csv_settings:
  delimiter: ";"
  encoding: "Windows-1252"
merge_defaults:
  prefer: existing
  drop_orphans: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "../intl", cfg.OutputDir)
	assert.Equal(t, "reports", cfg.ReportDir)
	assert.True(t, cfg.NoBackup)
	assert.Equal(t, ";", cfg.Tabular.Delimiter)
	assert.Equal(t, "Windows-1252", cfg.Tabular.Encoding)
	assert.Equal(t, "existing", cfg.Merge.Prefer)
	assert.False(t, cfg.Merge.OverwriteAll)
	assert.True(t, cfg.Merge.DropOrphans)
}

func TestLoadInvalidPrefer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("merge_defaults:\n  prefer: newest\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefer")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("I18NGEN_OUTPUT_DIR", "/tmp/out-override")
	t.Setenv("I18NGEN_REPORT_DIR", "/tmp/reports-override")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: ./from-file\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out-override", cfg.OutputDir, "environment wins over the file")
	assert.Equal(t, "/tmp/reports-override", cfg.ReportDir)
}
