package dxf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/f4ah6o/cadutil/errs"
)

// tag is one group-code/value pair of the ASCII tag-value stream DXF
// files are made of: an integer group code on its own line, followed by
// its value on the next line. This is the external low-level tokenizer
// spec.md treats as an out-of-core collaborator; cadutil carries a
// minimal one so the adapter above it is exercisable and testable.
type tag struct {
	Code  int
	Value string
}

type tagReader struct {
	sc      *bufio.Scanner
	line    int
	pending *tag
}

func newTagReader(r io.Reader) *tagReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &tagReader{sc: sc}
}

// Pushback returns t to the front of the stream; the next Next() call
// returns it again. Only one tag of lookahead is ever needed by this
// package's readers.
func (r *tagReader) Pushback(t tag) {
	r.pending = &t
}

// Next returns the next tag, or io.EOF when the stream is exhausted.
// A truncated pair (a code line with no following value line) is
// malformed input, not a clean EOF.
func (r *tagReader) Next() (tag, error) {
	if r.pending != nil {
		t := *r.pending
		r.pending = nil
		return t, nil
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return tag{}, errs.Wrap(errs.ErrIo, "reading tag stream: %v", err)
		}
		return tag{}, io.EOF
	}
	r.line++
	codeLine := strings.TrimSpace(r.sc.Text())
	code, err := strconv.Atoi(codeLine)
	if err != nil {
		return tag{}, errs.Wrap(errs.ErrMalformedInput, "line %d: bad group code %q", r.line, codeLine)
	}

	if !r.sc.Scan() {
		return tag{}, errs.Wrap(errs.ErrMalformedInput, "line %d: group code %d has no value", r.line, code)
	}
	r.line++
	return tag{Code: code, Value: r.sc.Text()}, nil
}

func (t tag) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrMalformedInput, "group code %d: bad float %q", t.Code, t.Value)
	}
	return v, nil
}

func (t tag) Int() (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(t.Value))
	if err != nil {
		return 0, errs.Wrap(errs.ErrMalformedInput, "group code %d: bad int %q", t.Code, t.Value)
	}
	return v, nil
}

func (t tag) HandleInt() (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(t.Value), 16, 64)
	if err != nil {
		return 0, errs.Wrap(errs.ErrMalformedInput, "group code %d: bad handle %q", t.Code, t.Value)
	}
	return int(v), nil
}

// tagWriter emits the same tag/value line pairs tagReader consumes.
type tagWriter struct {
	w   *bufio.Writer
	err error
}

func newTagWriter(w io.Writer) *tagWriter {
	return &tagWriter{w: bufio.NewWriter(w)}
}

func (w *tagWriter) Pair(code int, value string) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, "%d\n%s\n", code, value)
}

func (w *tagWriter) Int(code int, value int) {
	w.Pair(code, strconv.Itoa(value))
}

func (w *tagWriter) Float(code int, value float64) {
	w.Pair(code, strconv.FormatFloat(value, 'g', -1, 64))
}

func (w *tagWriter) Handle(code int, value int) {
	w.Pair(code, strconv.FormatInt(int64(value), 16))
}

func (w *tagWriter) Flush() error {
	if w.err != nil {
		return errs.Wrap(errs.ErrIo, "writing tag stream: %v", w.err)
	}
	if err := w.w.Flush(); err != nil {
		return errs.Wrap(errs.ErrIo, "flushing tag stream: %v", err)
	}
	return nil
}
