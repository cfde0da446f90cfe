package compiler

import "log/slog"

// Listener is an extension hook notified once per compiled unit (success xor
// failure) and once per tree clear, always after the corresponding state
// change. Listeners are invoked in registration order and are trusted: the
// notifier installs no recovery, so a panicking listener aborts the
// triggering operation.
type Listener interface {
	// Finished is called after one unit completes. On success artifact is
	// non-nil and err is nil; on failure artifact is nil and err carries
	// the cause.
	Finished(sourceFile string, artifact *Artifact, err error)
	// Cleared is called when the output tree is about to be wiped.
	Cleared()
}

func (c *Compiler) notifyFinished(sourceFile string, artifact *Artifact, err error) {
	for _, l := range c.listeners {
		l.Finished(sourceFile, artifact, err)
	}
}

func (c *Compiler) notifyCleared() {
	for _, l := range c.listeners {
		l.Cleared()
	}
}

// LogListener reports unit completions and clears through a slog logger. It
// is the built-in listener projects can register by name in tone.yaml.
type LogListener struct {
	logger *slog.Logger
}

// NewLogListener creates a LogListener, defaulting to slog.Default().
func NewLogListener(logger *slog.Logger) *LogListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogListener{logger: logger}
}

func (l *LogListener) Finished(sourceFile string, artifact *Artifact, err error) {
	if err != nil {
		l.logger.Error("Template failed", "file", sourceFile, "error", err)
		return
	}
	l.logger.Info("Template compiled", "file", sourceFile, "artifact", artifact.Path)
}

func (l *LogListener) Cleared() {
	l.logger.Info("Output tree cleared")
}
