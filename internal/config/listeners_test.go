package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/tonegen/internal/compiler"
)

type stubListener struct{}

func (stubListener) Finished(string, *compiler.Artifact, error) {}
func (stubListener) Cleared()                                   {}

func TestListenersOrResolvesConfiguredNames(t *testing.T) {
	p := &Project{Listeners: []string{"log"}}
	listeners, err := p.ListenersOr(nil)
	require.NoError(t, err)
	require.Len(t, listeners, 1)
	require.IsType(t, &compiler.LogListener{}, listeners[0])
}

func TestListenersOrPrefersRegisteredListeners(t *testing.T) {
	p := &Project{Listeners: []string{"log"}}
	registered := []compiler.Listener{stubListener{}}

	listeners, err := p.ListenersOr(registered)
	require.NoError(t, err)
	require.Equal(t, registered, listeners, "configured listeners apply only when the caller registered none")
}

func TestListenersOrEmpty(t *testing.T) {
	p := &Project{}
	listeners, err := p.ListenersOr(nil)
	require.NoError(t, err)
	require.Empty(t, listeners)
}

func TestListenersOrUnknownName(t *testing.T) {
	p := &Project{Listeners: []string{"telemetry"}}
	_, err := p.ListenersOr(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "telemetry")
}

func TestLoadParsesListeners(t *testing.T) {
	dir := t.TempDir()
	content := "listeners:\n  - log\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	p, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"log"}, p.Listeners)
}
