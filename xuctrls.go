package cameractrls

import (
	"fmt"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
	"github.com/kevmo314/cameractrls/pkg/xu"
)

// xuUnit is the slice of xu.Unit the vendor backends consume. Tests
// substitute an in-memory register file.
type xuUnit interface {
	Probe(selector uint8) bool
	GetCur(selector uint8) ([]byte, error)
	GetMin(selector uint8) ([]byte, error)
	GetMax(selector uint8) ([]byte, error)
	SetCur(selector uint8, data []byte) error
}

var _ xuUnit = (*xu.Unit)(nil)

// resolveUnit looks up a vendor's extension unit in the device's descriptor
// blob. A missing descriptor source or an absent GUID means the vendor's
// feature set is not present, which is not an error.
func resolveUnit(dev *v4l2.Device, info *xu.DeviceInfo, guid xu.GUID) xuUnit {
	if info == nil {
		return nil
	}
	id, ok := xu.FindUnitID(info.Descriptors, guid)
	if !ok {
		return nil
	}
	return xu.NewUnit(dev, id)
}

func usbID(info *xu.DeviceInfo) string {
	if info == nil {
		return ""
	}
	return info.ID
}

// registerByte reads one byte of a register, tolerating devices that report
// a shorter length than the offset assumes.
func registerByte(buf []byte, offset int) (byte, bool) {
	if offset >= len(buf) {
		return 0, false
	}
	return buf[offset], true
}

func errShortRegister(selector uint8, n int) error {
	return fmt.Errorf("selector %#02x register is %d bytes", selector, n)
}

// registerUint decodes a whole register as a little-endian unsigned integer.
func registerUint(buf []byte) uint64 {
	var v uint64
	for i := len(buf) - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}
	return v
}
