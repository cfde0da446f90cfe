package compiler

import (
	"fmt"
	"strings"
)

// CompilationError is the failure of exactly one compile unit. It always
// carries the absolute source path so callers can identify the failing
// template from the error alone.
type CompilationError struct {
	File string
	Err  error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("%v in template[%s]", e.Err, e.File)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// BatchError aggregates every unit failure of one batch. It is only raised
// by CompileAllOrError; CompileAll reports the same list without failing.
type BatchError struct {
	Errors []*CompilationError
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, unit := range e.Errors {
		msgs[i] = unit.Error()
	}
	return fmt.Sprintf("compilation failed with %d error(s):\n%s", len(e.Errors), strings.Join(msgs, "\n"))
}
