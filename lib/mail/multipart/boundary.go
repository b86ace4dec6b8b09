package multipart

import (
	crand "crypto/rand"
	"encoding/hex"
	"io"

	"golang.org/x/xerrors"
)

const (
	boundaryRandLen = 30
	boundaryGroups  = 7
	boundarySuffix  = "xx"
	maxBoundaryLen  = 70
)

// randomBoundary reads boundaryRandLen bytes from r and renders
// first boundaryGroups 32bit groups of them as fixed-width hex.
func randomBoundary(r io.Reader) (string, error) {
	var b [boundaryRandLen]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return "", xerrors.Errorf("multipart: reading random boundary: %w", err)
	}
	var s [boundaryGroups*8 + len(boundarySuffix)]byte
	for i := 0; i < boundaryGroups; i++ {
		// big-endian uint32 as %08x
		hex.Encode(s[i*8:], b[i*4:i*4+4])
	}
	copy(s[boundaryGroups*8:], boundarySuffix)
	return string(s[:]), nil
}

func mustRandomBoundary() string {
	s, err := randomBoundary(crand.Reader)
	if err != nil {
		panic(err)
	}
	return s
}

// rfc2046#section-5.1.1
func validBoundary(boundary string) bool {
	if len(boundary) < 1 || len(boundary) > maxBoundaryLen {
		return false
	}
	end := len(boundary) - 1
	for i := 0; i < len(boundary); i++ {
		b := boundary[i]
		if 'A' <= b && b <= 'Z' || 'a' <= b && b <= 'z' || '0' <= b && b <= '9' {
			continue
		}
		switch b {
		case '\'', '(', ')', '+', '_', ',', '-', '.', '/', ':', '=', '?':
			continue
		case ' ':
			if i != end {
				continue
			}
		}
		return false
	}
	return true
}
