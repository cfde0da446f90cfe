package compiler

import (
	"os"
	"path/filepath"
	"strings"
)

// deleteOrphanedOutputs removes every generated output whose template source
// no longer exists. Matching uses only the base of the file name, so locale
// variants of one template (foo.tone, foo.tone.pt) share a single key with
// their common output. Per-file delete failures are logged and do not fail
// the batch; only a traversal failure of the output tree does.
func (c *Compiler) deleteOrphanedOutputs(tones []string) error {
	outputs, err := c.javaFilesAt(c.to)
	if err != nil {
		return err
	}

	live := make(map[string]struct{}, len(tones))
	for _, tone := range tones {
		live[baseName(tone)] = struct{}{}
	}

	for _, out := range outputs {
		if _, ok := live[baseName(out)]; ok {
			continue
		}
		if err := os.Remove(out); err != nil {
			c.logger.Warn("Failed to delete stale output", "file", out, "error", err)
			continue
		}
		c.logger.Debug("Deleted stale output", "file", out)
		c.observer.ReconcileDeleted(out)
	}
	return nil
}

// baseName returns the portion of the file name before the first dot.
func baseName(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
