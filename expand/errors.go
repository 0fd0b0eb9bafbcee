package expand

import "fmt"

type Kind int

const (
	// UsageError covers malformed flags, a missing base command and a
	// missing option value.
	UsageError Kind = iota
	// ResolutionError is raised while expanding a single value spec.
	ResolutionError
	// SemanticError is raised after every argument has been resolved.
	SemanticError
)

func (k Kind) String() string {
	switch k {
	case UsageError:
		return "usage"
	case ResolutionError:
		return "resolution"
	case SemanticError:
		return "semantic"
	default:
		return "unknown"
	}
}

// Error is returned for every failed expansion. Msg is the message shown to
// the user.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, a ...interface{}) error {
	return &Error{Kind: UsageError, Msg: fmt.Sprintf(format, a...)}
}

func resolutionErrorf(cause error, format string, a ...interface{}) error {
	return &Error{Kind: ResolutionError, Msg: fmt.Sprintf(format, a...), Err: cause}
}
