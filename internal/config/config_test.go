package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	p, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "templates", p.Output.SubPrefix)
	require.Equal(t, filepath.Join("src", "main", "views"), p.Output.ViewsMarker)
	require.Equal(t, 300*time.Millisecond, p.Watch.Debounce.Std())
	require.Empty(t, p.Imports)
}

func TestLoadParsesProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := `
imports:
  - java.util.List
  - br.com.caelum.vraptor.Result
output:
  sub_prefix: views
render:
  extends: DefaultTemplate
watch:
  debounce: 1s
  resync: 5m
metrics:
  enabled: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	p, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"java.util.List", "br.com.caelum.vraptor.Result"}, p.Imports)
	require.Equal(t, "views", p.Output.SubPrefix)
	require.Equal(t, "DefaultTemplate", p.Render.Extends)
	require.Equal(t, time.Second, p.Watch.Debounce.Std())
	require.Equal(t, 5*time.Minute, p.Watch.Resync.Std())
	require.True(t, p.Metrics.Enabled)
	// Unset fields still get defaults.
	require.Equal(t, filepath.Join("src", "main", "views"), p.Output.ViewsMarker)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TONE_EXTRA_IMPORT", "com.example.Helper")
	content := "imports:\n  - ${TONE_EXTRA_IMPORT}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	p, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"com.example.Helper"}, p.Imports)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("imports: [unclosed"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("watch:\n  debounce: soon\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := Default()
	p.Imports = []string{"java.util.Map"}
	require.NoError(t, p.Write(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, p.Imports, loaded.Imports)
	require.Equal(t, p.Output.SubPrefix, loaded.Output.SubPrefix)
}
