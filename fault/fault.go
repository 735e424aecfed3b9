package fault

import "fmt"

type Code string

const (
	UnknownCode          Code = "unknown"
	NotFoundCode         Code = "not_found"
	BadInputCode         Code = "bad_input"
	PermissionDeniedCode Code = "permission_denied"

	// Filter compilation codes. Each one is a client error and its message
	// is safe to return to the caller verbatim.
	UnknownColumnCode       Code = "unknown_column"
	DisallowedOperatorCode  Code = "disallowed_operator"
	MalformedClauseCode     Code = "malformed_clause"
	TypeCoercionFailureCode Code = "type_coercion_failure"
	FunctionOnNonStringCode Code = "function_on_non_string_column"
	InvalidIdentifierCode   Code = "invalid_identifier_encoding"
	CompilationTimeoutCode  Code = "compilation_timeout"
)

type FieldErrorsMetadata map[string][]string

// Fault is the error type exchanged between layers. Handlers match on Code
// to pick an HTTP status; anything else falls through to a 500.
type Fault struct {
	code     Code
	message  string
	metadata any
	original error
}

func New(code Code, message string) Fault {
	return Fault{
		code:    code,
		message: message,
	}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) Fault {
	return New(code, fmt.Sprintf(format, args...))
}

func (f Fault) WithMetadata(metadata any) Fault {
	e := f
	e.metadata = metadata
	return e
}

func (f Fault) WithOriginal(original error) Fault {
	e := f
	e.original = original
	return e
}

func (f Fault) Code() Code {
	return f.code
}

func (f Fault) Message() string {
	return f.message
}

func (f Fault) Metadata() any {
	return f.metadata
}

func (f Fault) Original() error {
	return f.original
}

func (f Fault) Error() string {
	if f.original != nil {
		return fmt.Sprintf("%s: %v", f.message, f.original)
	}
	return f.message
}
