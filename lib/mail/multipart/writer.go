// Package multipart generates MIME multipart messages (RFC 2046),
// as used by HTTP form submissions (RFC 7578).
//
// Writer is not safe for concurrent use.
package multipart

import (
	"bytes"
	crand "crypto/rand"
	"io"
	"strings"

	"mpform/lib/mail"
)

type writerState int

const (
	stateNotStarted writerState = iota
	stateInProgress
	stateClosed
)

// Writer generates multipart messages into borrowed io.Writer.
type Writer struct {
	w        io.Writer
	boundary string
	state    writerState
	seq      uint64 // sequence number of current part
}

// New returns Writer with random boundary, writing to w.
// It panics if system random source fails.
func New(w io.Writer) *Writer {
	return &Writer{w: w, boundary: mustRandomBoundary()}
}

// NewWithRandom returns Writer with boundary generated from bytes of r.
func NewWithRandom(w io.Writer, r io.Reader) (*Writer, error) {
	if r == nil {
		r = crand.Reader
	}
	b, err := randomBoundary(r)
	if err != nil {
		return nil, err
	}
	return &Writer{w: w, boundary: b}, nil
}

// NewWithBoundary returns Writer using fixed boundary.
func NewWithBoundary(w io.Writer, boundary string) (*Writer, error) {
	if !validBoundary(boundary) {
		return nil, ErrInvalidBoundary
	}
	return &Writer{w: w, boundary: boundary}, nil
}

func (mw *Writer) Boundary() string {
	return mw.boundary
}

// FormDataContentType returns Content-Type value for HTTP
// multipart/form-data body generated by mw.
func (mw *Writer) FormDataContentType() string {
	b := mw.boundary
	// quote if boundary has tspecials
	if strings.ContainsAny(b, `()<>@,;:"/[]?=`) {
		b = `"` + b + `"`
	}
	return "multipart/form-data; boundary=" + b
}

// CreatePart writes delimiter and header block of new part and returns
// handle for writing its body. Header keys are written in sorted order.
// Returned part becomes invalid as soon as another part is created or
// mw is closed.
//
// On write failure *WriteError is returned; partially written
// block is not rolled back.
func (mw *Writer) CreatePart(header mail.Headers) (*Part, error) {
	if mw.state == stateClosed {
		return nil, ErrClosed
	}

	var b bytes.Buffer
	if mw.state == stateInProgress {
		b.WriteString("\r\n")
	}
	b.WriteString("--")
	b.WriteString(mw.boundary)
	b.WriteString("\r\n")
	mail.AppendPartHeaders(&b, header)
	b.WriteString("\r\n")

	mw.state = stateInProgress
	mw.seq++

	if _, err := mw.w.Write(b.Bytes()); err != nil {
		return nil, &WriteError{Op: "create part", Err: err}
	}
	return &Part{mw: mw, seq: mw.seq}, nil
}

// Close writes closing delimiter. Writer stays closed even if
// writing fails.
func (mw *Writer) Close() error {
	if mw.state == stateClosed {
		return ErrClosed
	}
	mw.state = stateClosed
	if _, err := io.WriteString(mw.w, "\r\n--"+mw.boundary+"--\r\n"); err != nil {
		return &WriteError{Op: "close", Err: err}
	}
	return nil
}

// Part is body writer of single part.
type Part struct {
	mw  *Writer
	seq uint64
}

var _ io.Writer = (*Part)(nil)

func (p *Part) Write(b []byte) (n int, err error) {
	if p.mw.state == stateClosed || p.mw.seq != p.seq {
		return 0, ErrStalePart
	}
	n, err = p.mw.w.Write(b)
	if err != nil {
		err = &WriteError{Op: "write part", Err: err}
	}
	return
}
