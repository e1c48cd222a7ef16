// Package errs defines cadutil's error taxonomy: sentinel values
// adapters wrap with fmt.Errorf's %w (the same pattern the teacher
// package uses for flatgeobuf.ErrNilGeometry and friends) plus a
// Code() accessor for callers that branch on a stable code rather
// than on error text, as spec.md's error surface requires.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors. Wrap these with fmt.Errorf("...: %w", ErrX) and
// callers can still match with errors.Is.
var (
	// ErrIo covers file-absent, unreadable, unwritable failures.
	ErrIo = errors.New("cadutil: io error")
	// ErrMalformedInput covers structural parse failures propagated
	// from an upstream tokenizer: unbalanced block, truncated record,
	// bad tag.
	ErrMalformedInput = errors.New("cadutil: malformed input")
	// ErrUnsupportedFormat covers an extension outside the recognised
	// set (dxf, dwg, jww, jwc).
	ErrUnsupportedFormat = errors.New("cadutil: unsupported format")
	// ErrUnsupportedVersion covers a DXF generation outside the
	// accepted set.
	ErrUnsupportedVersion = errors.New("cadutil: unsupported version")
	// ErrInvalidArgument covers nil document, nil filename, negative
	// size, and similar caller mistakes.
	ErrInvalidArgument = errors.New("cadutil: invalid argument")
	// ErrBrokenReference covers a writer-time unresolved block
	// reference.
	ErrBrokenReference = errors.New("cadutil: broken reference")
)

// Code is the enumerated, language-neutral error code from spec.md §6,
// for callers that want to branch on a code instead of on error text
// or errors.Is.
type Code int

const (
	Ok Code = iota
	FileNotFound
	InvalidFormat
	ReadError
	WriteError
	UnsupportedVersion
	OutOfMemory
	InvalidArgument
	Unknown
)

func (c Code) String() string {
	switch c {
	case Ok:
		return "Ok"
	case FileNotFound:
		return "FileNotFound"
	case InvalidFormat:
		return "InvalidFormat"
	case ReadError:
		return "ReadError"
	case WriteError:
		return "WriteError"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case OutOfMemory:
		return "OutOfMemory"
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// CodeOf maps an error produced anywhere in cadutil to its Code, by
// walking the error chain with errors.Is against the taxonomy above.
// It never inspects error text.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return Ok
	case errors.Is(err, ErrIo):
		return ReadError
	case errors.Is(err, ErrMalformedInput):
		return InvalidFormat
	case errors.Is(err, ErrUnsupportedFormat):
		return InvalidFormat
	case errors.Is(err, ErrUnsupportedVersion):
		return UnsupportedVersion
	case errors.Is(err, ErrInvalidArgument):
		return InvalidArgument
	case errors.Is(err, ErrBrokenReference):
		return WriteError
	default:
		return Unknown
	}
}

// Wrap annotates err with a message while preserving errors.Is
// matchability against the sentinel taxonomy above.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, sentinel)...)
}
