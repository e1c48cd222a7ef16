// Package cadutil is the facade spec.md §6 describes as "external
// interfaces": a small set of whole-document operations — open,
// save, convert, validate, report — layered over the document,
// dxf, jww, validate, report, and interchange packages, none of
// which know about each other's file formats.
//
// The library never logs and never panics on malformed input; every
// failure path returns an error wrapping one of the errs sentinels.
// cmd/cadutil is the only thing in this module that calls log.
package cadutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/f4ah6o/cadutil/document"
	"github.com/f4ah6o/cadutil/dxf"
	"github.com/f4ah6o/cadutil/errs"
	"github.com/f4ah6o/cadutil/interchange"
	"github.com/f4ah6o/cadutil/jww"
	"github.com/f4ah6o/cadutil/report"
	"github.com/f4ah6o/cadutil/validate"
	"github.com/paulmach/orb/geojson"
)

// Format names one of the two families this package reads and writes.
type Format string

const (
	FormatDXF Format = "dxf"
	FormatJWW Format = "jww"
)

// DetectFormat infers a Format from a path's extension, the same
// dispatch rule spec.md §6 names as unchanged: ".dxf" and ".dwg" both
// select FormatDXF (DWG routes through the DXF reader/writer, same as
// original_source's lc_open), ".jww"/".jwc" select FormatJWW, anything
// else is errs.ErrUnsupportedFormat.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dxf", ".dwg":
		return FormatDXF, nil
	case ".jww", ".jwc":
		return FormatJWW, nil
	default:
		return "", setLastError(errs.Wrap(errs.ErrUnsupportedFormat, "unrecognised extension %q", filepath.Ext(path)))
	}
}

// OpenOptions configures Open. A nil *OpenOptions uses DetectFormat.
type OpenOptions struct {
	Format Format // overrides DetectFormat when non-empty
}

// Open reads path into a fresh document.Document, dispatching to the
// dxf or jww reader adapter by extension (or opts.Format, if given).
// The returned document is ready for Validate, Info, or Save; the
// caller owns it and must call Close when done.
func Open(path string, opts *OpenOptions) (*document.Document, error) {
	format, err := resolveFormat(path, opts)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, setLastError(errs.Wrap(errs.ErrIo, "opening %s: %v", path, err))
	}
	defer f.Close()

	doc := document.New(path)
	switch format {
	case FormatDXF:
		err = dxf.Read(f, doc)
	case FormatJWW:
		err = jww.Read(f, doc)
	}
	if err != nil {
		doc.Close()
		return nil, setLastError(fmt.Errorf("reading %s: %w", path, err))
	}
	return doc, nil
}

// SaveOptions configures Save. A nil *SaveOptions saves at the
// format's own default generation/options.
type SaveOptions struct {
	Format     Format
	DXFOptions *dxf.WriteOptions
	JWWOptions *jww.WriteOptions
}

// Save writes doc to path, dispatching to the dxf or jww writer
// adapter by extension (or opts.Format, if given).
func Save(doc *document.Document, path string, opts *SaveOptions) error {
	var format Format
	var err error
	if opts != nil && opts.Format != "" {
		format = opts.Format
	} else {
		format, err = DetectFormat(path)
		if err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return setLastError(errs.Wrap(errs.ErrIo, "creating %s: %v", path, err))
	}
	defer f.Close()

	switch format {
	case FormatDXF:
		dxfOpts := dxf.DefaultWriteOptions()
		if opts != nil && opts.DXFOptions != nil {
			dxfOpts = opts.DXFOptions
		}
		err = dxf.Write(f, doc, dxfOpts)
	case FormatJWW:
		jwwOpts := jww.DefaultWriteOptions()
		if opts != nil && opts.JWWOptions != nil {
			jwwOpts = opts.JWWOptions
		}
		err = jww.Write(f, doc, jwwOpts)
	default:
		err = errs.Wrap(errs.ErrUnsupportedFormat, "save format %q", format)
	}
	if err != nil {
		return setLastError(fmt.Errorf("writing %s: %w", path, err))
	}
	return nil
}

// Convert opens srcPath, then immediately saves the resulting
// document to dstPath, closing it on every exit path. This is the
// "cross-format conversion" use case spec.md §1 names: DXF↔JWW at a
// caller-selected DXF generation via opts.DXFOptions.
func Convert(srcPath, dstPath string, opts *SaveOptions) error {
	doc, err := Open(srcPath, nil)
	if err != nil {
		return err
	}
	defer doc.Close()

	if err := Save(doc, dstPath, opts); err != nil {
		return err
	}
	return nil
}

// Validate runs the read-only validator over doc.
func Validate(doc *document.Document) validate.Result {
	return validate.Check(doc)
}

// Info projects doc into a Report at the requested detail level.
// format and generation are caller-supplied labels; Info does not look
// them up in doc (a DXF read keeps $ACADVER in doc.Header, but Info
// does not consult it). Pass "" when unknown.
func Info(doc *document.Document, format, generation string, level report.Level) report.Report {
	return report.Build(doc, format, generation, level)
}

// ToGeoJSON projects doc onto the XY plane, lossily, via the
// interchange package. See interchange.ToFeatureCollection for the
// per-kind projection rules and which entity kinds have no analogue.
func ToGeoJSON(doc *document.Document) (*geojson.FeatureCollection, []interchange.SkippedEntity) {
	return interchange.ToFeatureCollection(doc)
}

// ToFlatGeobuf projects doc the same way ToGeoJSON does, then streams
// the result to w as a FlatGeobuf file via the interchange package. A
// nil opts uses interchange.DefaultOptions.
func ToFlatGeobuf(w io.Writer, doc *document.Document, opts *interchange.Options) error {
	if err := interchange.WriteFlatGeobuf(w, doc, opts); err != nil {
		return setLastError(err)
	}
	return nil
}

func resolveFormat(path string, opts *OpenOptions) (Format, error) {
	if opts != nil && opts.Format != "" {
		return opts.Format, nil
	}
	return DetectFormat(path)
}

// lastErrors is the goroutine-local "last error" compatibility shim
// spec.md's concurrency model calls for: a migration aid for callers
// coming from original_source/'s C API, which reports failures via a
// thread-local slot rather than a return value. Go callers should
// never need this — the returned error is always populated first —
// but it lets a thin cgo-style shim reconstruct that API without
// threading a context object through every call.
var (
	lastErrorsMu sync.Mutex
	lastErrors   = map[string]error{}
)

// LastError returns the most recent error recorded by a cadutil call
// on the calling goroutine, or nil if none has occurred yet.
func LastError() error {
	lastErrorsMu.Lock()
	defer lastErrorsMu.Unlock()
	return lastErrors[goroutineID()]
}

func setLastError(err error) error {
	lastErrorsMu.Lock()
	lastErrors[goroutineID()] = err
	lastErrorsMu.Unlock()
	return err
}

// goroutineID extracts the numeric goroutine id from runtime.Stack's
// header line ("goroutine 123 [running]:"), the same trick older
// goroutine-local-storage shims use in lieu of a real API for it.
func goroutineID() string {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := strings.Fields(string(buf[:n]))
	if len(fields) < 2 {
		return "0"
	}
	if _, err := strconv.Atoi(fields[1]); err != nil {
		return "0"
	}
	return fields[1]
}
