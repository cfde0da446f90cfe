package compiler

import (
	"os"
	"path/filepath"
	"strings"
)

// Compile compiles a single template into its output artifact. It returns
// nil on success or a CompilationError carrying the source path and cause.
// A failing unit never affects sibling units.
func (c *Compiler) Compile(file string) *CompilationError {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	return c.compileOne(file)
}

// compileOne is the unit driver; callers must hold runMu.
func (c *Compiler) compileOne(file string) *CompilationError {
	abs, err := filepath.Abs(file)
	if err != nil {
		abs = file
	}

	artifact, err := c.compileUnit(abs)
	if err != nil {
		c.observer.UnitFinished(err)
		c.notifyFinished(abs, nil, err)
		return &CompilationError{File: abs, Err: err}
	}
	c.observer.UnitFinished(nil)
	c.notifyFinished(abs, artifact, nil)
	return nil
}

func (c *Compiler) compileUnit(abs string) (*Artifact, error) {
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	name := c.logicalName(abs)
	typeName := typeNameOf(name)

	rendered, err := c.renderer.Render(string(content), typeName)
	if err != nil {
		return nil, err
	}
	return c.persister.Persist(c.to, name, c.imports, rendered, c.listeners)
}

// logicalName strips the source root prefix, normalizes separators, and
// drops the template suffix together with any trailing variant segment, so
// pages/foo.tone.pt and pages/foo.tone both map to pages/foo.
func (c *Compiler) logicalName(abs string) string {
	rel := strings.TrimPrefix(abs, c.from)
	rel = strings.TrimLeft(filepath.ToSlash(rel), "/")
	return stripToneSuffix(rel)
}

// stripToneSuffix removes everything from the first template-suffix
// occurrence onward.
func stripToneSuffix(name string) string {
	if i := strings.Index(name, ToneSuffix); i >= 0 {
		return name[:i]
	}
	return name
}

// typeNameOf derives the bare type identifier from the last path segment.
func typeNameOf(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
