package compiler

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Artifact is the generated source counterpart of one template.
type Artifact struct {
	// Path is the absolute location of the written file.
	Path string
	// Name is the root-relative logical name (slash-separated, no suffix).
	Name string
	// Content is the final formatted source as written.
	Content string
}

// Persister formats the final generated source and writes it under the
// output root. The listener set is passed through for persisters that emit
// additional companion files.
type Persister interface {
	Persist(outputRoot, name string, imports []string, rendered string, listeners []Listener) (*Artifact, error)
}

// JavaPersister writes generated Java sources under the output sub-prefix,
// deriving the package declaration from the logical name's directory.
type JavaPersister struct {
	// SubPrefix is the directory and package root for generated sources.
	SubPrefix string
}

func (p JavaPersister) Persist(outputRoot, name string, imports []string, rendered string, _ []Listener) (*Artifact, error) {
	sub := p.SubPrefix
	if sub == "" {
		sub = "templates"
	}
	rel := path.Join(sub, name)

	var b strings.Builder
	fmt.Fprintf(&b, "package %s;\n\n", strings.ReplaceAll(path.Dir(rel), "/", "."))
	for _, imp := range imports {
		fmt.Fprintf(&b, "import %s;\n", imp)
	}
	if len(imports) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(rendered)

	out := filepath.Join(outputRoot, filepath.FromSlash(rel)+JavaSuffix)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	content := b.String()
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write artifact: %w", err)
	}
	return &Artifact{Path: out, Name: name, Content: content}, nil
}
