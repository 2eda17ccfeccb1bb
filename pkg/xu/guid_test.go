//go:build linux && (amd64 || arm64)

package xu

import (
	"bytes"
	"testing"
)

func TestGUIDWireOrder(t *testing.T) {
	g := MustGUID("23e49ed0-1178-4f31-ae52-d2fb8a8d3b48")
	want := GUID{
		0xd0, 0x9e, 0xe4, 0x23, // first group, little-endian
		0x78, 0x11, // second group, little-endian
		0x31, 0x4f, // third group, little-endian
		0xae, 0x52, // fourth group, as written
		0xd2, 0xfb, 0x8a, 0x8d, 0x3b, 0x48, // node, as written
	}
	if g != want {
		t.Errorf("MustGUID wire order = % x, want % x", g[:], want[:])
	}
	if got := g.String(); got != "23e49ed0-1178-4f31-ae52-d2fb8a8d3b48" {
		t.Errorf("String() = %q, want canonical form back", got)
	}
}

func TestParseGUIDRejectsGarbage(t *testing.T) {
	if _, err := ParseGUID("not-a-guid"); err == nil {
		t.Error("ParseGUID(not-a-guid) should fail")
	}
}

func TestFindUnitID(t *testing.T) {
	g := MustGUID("23e49ed0-1178-4f31-ae52-d2fb8a8d3b48")

	blob := append([]byte{0x18, 0x24, 0x06, 0x05}, g[:]...)
	blob = append(blob, 0x0f, 0x01)

	id, ok := FindUnitID(blob, g)
	if !ok {
		t.Fatal("FindUnitID: no match in blob containing the GUID")
	}
	if id != 5 {
		t.Errorf("unit id = %d, want 5", id)
	}

	if _, ok := FindUnitID(bytes.Repeat([]byte{0xaa}, 64), g); ok {
		t.Error("FindUnitID matched a blob without the GUID")
	}

	// A match at offset zero has no preceding unit id byte.
	if _, ok := FindUnitID(g[:], g); ok {
		t.Error("FindUnitID matched at offset zero")
	}
}
