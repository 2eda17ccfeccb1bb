//go:build linux && (amd64 || arm64)

package xu

import (
	"bytes"

	"github.com/google/uuid"
)

// GUID is an extension unit identifier in USB wire order: the first three
// groups of the canonical form are little-endian, the last two big-endian.
type GUID [16]byte

// ParseGUID converts a canonical GUID string to wire order.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, err
	}
	return wireOrder(u), nil
}

// MustGUID is ParseGUID for package-level constants; it panics on a
// malformed string.
func MustGUID(s string) GUID {
	return wireOrder(uuid.MustParse(s))
}

func wireOrder(u uuid.UUID) GUID {
	var g GUID
	g[0], g[1], g[2], g[3] = u[3], u[2], u[1], u[0]
	g[4], g[5] = u[5], u[4]
	g[6], g[7] = u[7], u[6]
	copy(g[8:], u[8:])
	return g
}

// UUID converts back to canonical byte order.
func (g GUID) UUID() uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = g[3], g[2], g[1], g[0]
	u[4], u[5] = g[5], g[4]
	u[6], u[7] = g[7], g[6]
	copy(u[8:], g[8:])
	return u
}

func (g GUID) String() string { return g.UUID().String() }

// FindUnitID scans a raw descriptor blob for the GUID and returns the byte
// immediately before the first match, which inside an extension unit
// descriptor is the unit id. A match at offset zero has no preceding byte
// and counts as no match.
func FindUnitID(blob []byte, g GUID) (uint8, bool) {
	i := bytes.Index(blob, g[:])
	if i <= 0 {
		return 0, false
	}
	return blob[i-1], true
}
