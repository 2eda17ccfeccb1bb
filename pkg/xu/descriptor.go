//go:build linux && (amd64 || arm64)

package xu

import (
	"errors"
	"io"
)

var ErrInvalidDescriptor = errors.New("invalid descriptor")

const (
	classSpecificInterface     = 0x24
	subtypeVCExtensionUnit     = 0x06
	extensionUnitDescriptorMin = 24
)

// ExtensionUnitDescriptor is a parsed VC_EXTENSION_UNIT descriptor as
// defined in UVC spec 1.5, 3.7.2.7.
type ExtensionUnitDescriptor struct {
	UnitID      uint8
	GUID        GUID
	NumControls uint8
	SourceIDs   []uint8
	Controls    []byte
}

func (eud *ExtensionUnitDescriptor) UnmarshalBinary(buf []byte) error {
	if len(buf) < extensionUnitDescriptorMin || len(buf) < int(buf[0]) {
		return io.ErrShortBuffer
	}
	if buf[1] != classSpecificInterface {
		return ErrInvalidDescriptor
	}
	if buf[2] != subtypeVCExtensionUnit {
		return ErrInvalidDescriptor
	}
	eud.UnitID = buf[3]
	copy(eud.GUID[:], buf[4:20])
	eud.NumControls = buf[20]
	p := int(buf[21])
	if len(buf) < extensionUnitDescriptorMin+p {
		return io.ErrShortBuffer
	}
	eud.SourceIDs = append([]uint8(nil), buf[22:22+p]...)
	n := int(buf[22+p])
	if len(buf) < extensionUnitDescriptorMin+p+n {
		return io.ErrShortBuffer
	}
	eud.Controls = append([]byte(nil), buf[23+p:23+p+n]...)
	return nil
}

// ExtensionUnits walks a raw descriptor blob and parses every extension
// unit descriptor found in it. USB descriptors are length-prefixed, so the
// walk steps by the leading length byte; anything that is not an extension
// unit is skipped.
func ExtensionUnits(blob []byte) []ExtensionUnitDescriptor {
	var units []ExtensionUnitDescriptor
	for i := 0; i < len(blob) && blob[i] > 0; i += int(blob[i]) {
		if i+int(blob[i]) > len(blob) {
			break
		}
		d := blob[i : i+int(blob[i])]
		if len(d) < 3 || d[1] != classSpecificInterface || d[2] != subtypeVCExtensionUnit {
			continue
		}
		var eud ExtensionUnitDescriptor
		if err := eud.UnmarshalBinary(d); err != nil {
			continue
		}
		units = append(units, eud)
	}
	return units
}
