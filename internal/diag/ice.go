package diag

import (
	"fmt"
	"runtime"
)

// InternalError is raised by ICE. Unlike Diagnostic, it is never
// accumulated — it represents a programmer bug (a later pass expected
// something an earlier pass should have guaranteed) and aborts the
// compilation immediately.
type InternalError struct {
	Site    string
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal compiler error at %s: %s", e.Site, e.Message)
}

// ICE panics with an InternalError locating the call site, per spec.md §7's
// "internal invariant violations" row. internal/air uses this for
// conditions that a correctly functioning earlier pass rules out.
func ICE(format string, args ...interface{}) {
	_, file, line, ok := runtime.Caller(1)
	site := "unknown"
	if ok {
		site = fmt.Sprintf("%s:%d", file, line)
	}
	panic(&InternalError{Site: site, Message: fmt.Sprintf(format, args...)})
}
