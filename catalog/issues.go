package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeSyntax          = "syntax"
	CodeUnknownAdapter  = "unknown_adapter"
	CodeUnknownTarget   = "unknown_target"
	CodeArity           = "arity"
	CodeInvalidArgument = "invalid_argument"
	CodeUnsupported     = "unsupported"
)

var (
	ErrSyntax           = errors.New("catalog: syntax error")
	ErrUnknownAdapter   = errors.New("catalog: unknown adapter")
	ErrUnknownTarget    = errors.New("catalog: unknown target type")
	ErrArity            = errors.New("catalog: wrong number of arguments")
	ErrInvalidArgument  = errors.New("catalog: invalid argument")
	ErrDuplicateAdapter = errors.New("catalog: adapter already registered")
)

// Issue is one problem found in an adapter expression.
type Issue struct {
	Offset  int    // Byte offset in the expression.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: accepted values, a close name, etc.
	Cause   error  // Sentinel or underlying error.
}

// Issues is a collection of expression problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i, it := range iss[:lim] {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. unknown_adapter at 6: Vec
		fmt.Fprintf(b, "%s at %d: %s", it.Code, it.Offset, it.Message)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Unwrap exposes each cause to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func issue(off int, code string, cause error, format string, args ...any) Issue {
	return Issue{Offset: off, Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}
