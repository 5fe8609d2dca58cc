package jsondoc

import (
	"errors"
	"fmt"
)

var (
	// ErrParse wraps syntax errors reported while reading JSON or YAML text.
	ErrParse = errors.New("jsondoc: parse failure")
	// ErrMalformed is matched by every *MalformedError.
	ErrMalformed = errors.New("malformed document")
)

// MalformedError reports a required key that is missing or holds a value of
// the wrong kind.
type MalformedError struct {
	Path   string
	Reason string
}

func (e *MalformedError) Error() string {
	path := e.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("%s at %s: %s", ErrMalformed, path, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *MalformedError) Unwrap() error { return ErrMalformed }

// Malformed builds a *MalformedError for path.
func Malformed(path, format string, args ...any) *MalformedError {
	return &MalformedError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// JoinPath appends key to a dotted path.
func JoinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// IndexPath appends an array index to a path.
func IndexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// KindOf names the tree kind of v for error messages.
func KindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int32, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
