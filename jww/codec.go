package jww

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"

	"github.com/f4ah6o/cadutil/errs"
	"github.com/f4ah6o/cadutil/geom"
)

// recordWriter emits the fixed-width and length-prefixed fields JWW's
// binary record layouts are made of, one manual binary.LittleEndian
// write at a time — the same discipline the teacher's property codec
// uses for its column-keyed values, applied here to version-tagged
// record fields instead.
type recordWriter struct {
	w   *bufio.Writer
	err error
}

func newRecordWriter(w io.Writer) *recordWriter {
	return &recordWriter{w: bufio.NewWriter(w)}
}

func (w *recordWriter) Uint8(v uint8) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write([]byte{v})
}

func (w *recordWriter) Uint16(v uint16) {
	if w.err != nil {
		return
	}
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, w.err = w.w.Write(b[:])
}

func (w *recordWriter) Uint32(v uint32) {
	if w.err != nil {
		return
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, w.err = w.w.Write(b[:])
}

func (w *recordWriter) Float64(v float64) {
	if w.err != nil {
		return
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	_, w.err = w.w.Write(b[:])
}

// String writes a uint16 byte-length prefix followed by the raw bytes.
func (w *recordWriter) String(s string) {
	w.Uint16(uint16(len(s)))
	if w.err != nil {
		return
	}
	_, w.err = w.w.WriteString(s)
}

func (w *recordWriter) Point(p geom.Point3D) {
	w.Float64(p.X)
	w.Float64(p.Y)
	w.Float64(p.Z)
}

func (w *recordWriter) Flush() error {
	if w.err != nil {
		return errs.Wrap(errs.ErrIo, "writing JWW record stream: %v", w.err)
	}
	if err := w.w.Flush(); err != nil {
		return errs.Wrap(errs.ErrIo, "flushing JWW record stream: %v", err)
	}
	return nil
}

// recordReader is recordWriter's inverse.
type recordReader struct {
	r *bufio.Reader
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{r: bufio.NewReader(r)}
}

func (r *recordReader) read(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errs.Wrap(errs.ErrMalformedInput, "truncated JWW record stream: %v", err)
		}
		return nil, errs.Wrap(errs.ErrIo, "reading JWW record stream: %v", err)
	}
	return b, nil
}

func (r *recordReader) Uint8() (uint8, error) {
	b, err := r.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *recordReader) Uint16() (uint16, error) {
	b, err := r.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *recordReader) Uint32() (uint32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *recordReader) Float64() (float64, error) {
	b, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (r *recordReader) String() (string, error) {
	n, err := r.Uint16()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	b, err := r.read(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *recordReader) Point() (geom.Point3D, error) {
	x, err := r.Float64()
	if err != nil {
		return geom.Point3D{}, err
	}
	y, err := r.Float64()
	if err != nil {
		return geom.Point3D{}, err
	}
	z, err := r.Float64()
	if err != nil {
		return geom.Point3D{}, err
	}
	return geom.Point3D{X: x, Y: y, Z: z}, nil
}
