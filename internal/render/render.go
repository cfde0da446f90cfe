// Package render turns template text into generated Java source for one type.
//
// The template grammar itself is pluggable: the compiler only requires the
// Renderer contract defined in internal/compiler. JavaClassRenderer is the
// built-in emitter, producing a class whose render method writes the template
// text verbatim; richer grammars replace it without touching the compiler.
package render

import (
	"fmt"
	"strings"
)

// JavaClassRenderer emits a Java class wrapping the template text.
type JavaClassRenderer struct {
	// Extends, when set, is used as the superclass of every generated type.
	Extends string
}

// Render produces the body of the generated type for one template.
func (r JavaClassRenderer) Render(content, typeName string) (string, error) {
	if typeName == "" {
		return "", fmt.Errorf("empty type name")
	}
	if !validTypeName(typeName) {
		return "", fmt.Errorf("invalid type name %q", typeName)
	}

	var b strings.Builder
	b.WriteString("public class ")
	b.WriteString(typeName)
	if r.Extends != "" {
		b.WriteString(" extends ")
		b.WriteString(r.Extends)
	}
	b.WriteString(" {\n\n")
	b.WriteString("\tprivate final java.io.PrintWriter out;\n\n")
	fmt.Fprintf(&b, "\tpublic %s(java.io.PrintWriter out) {\n\t\tthis.out = out;\n\t}\n\n", typeName)
	b.WriteString("\tpublic void render() {\n")
	b.WriteString("\t\tout.write(\"")
	b.WriteString(escape(content))
	b.WriteString("\");\n")
	b.WriteString("\t}\n")
	b.WriteString("}\n")
	return b.String(), nil
}

// escape turns raw template text into a Java string literal body.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validTypeName(name string) bool {
	for i, r := range name {
		if r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(i > 0 && r >= '0' && r <= '9') {
			continue
		}
		return false
	}
	return true
}
