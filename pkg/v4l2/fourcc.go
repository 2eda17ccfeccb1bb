//go:build linux && (amd64 || arm64)

package v4l2

import "fmt"

// FourCC is a four-character pixel format code packed little-endian, first
// character in the lowest byte.
type FourCC uint32

// MakeFourCC packs four ASCII characters into a FourCC.
func MakeFourCC(a, b, c, d byte) FourCC {
	return FourCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// ParseFourCC packs a four-character string into a FourCC.
func ParseFourCC(s string) (FourCC, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("fourcc %q: need exactly 4 characters", s)
	}
	return MakeFourCC(s[0], s[1], s[2], s[3]), nil
}

// String unpacks the code back into its four characters.
func (f FourCC) String() string {
	return string([]byte{
		byte(f),
		byte(f >> 8),
		byte(f >> 16),
		byte(f >> 24),
	})
}
