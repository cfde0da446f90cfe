package config

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/tonegen/internal/compiler"
)

// builtinListeners maps tone.yaml listener names to constructors.
var builtinListeners = map[string]func() compiler.Listener{
	"log": func() compiler.Listener { return compiler.NewLogListener(slog.Default()) },
}

// ListenersOr resolves the project's configured listener names against the
// built-in registry. Listeners registered programmatically by the caller
// take precedence: the configured set is only used when the caller
// registered none. An unknown name is a configuration error.
func (p *Project) ListenersOr(registered []compiler.Listener) ([]compiler.Listener, error) {
	if len(registered) > 0 {
		return registered, nil
	}
	var listeners []compiler.Listener
	for _, name := range p.Listeners {
		ctor, ok := builtinListeners[name]
		if !ok {
			return nil, fmt.Errorf("unknown listener %q in %s", name, FileName)
		}
		listeners = append(listeners, ctor())
	}
	return listeners, nil
}
