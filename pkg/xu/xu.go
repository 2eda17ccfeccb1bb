//go:build linux && (amd64 || arm64)

// Package xu drives vendor-specific UVC extension unit controls through the
// uvcvideo driver's passthrough ioctl. An extension unit is a block of
// fixed-length byte registers addressed by selector; the device reports each
// register's length, so every access starts with a length query.
package xu

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
)

// controlQuery mirrors struct uvc_xu_control_query from uvcvideo.h.
type controlQuery struct {
	Unit     uint8
	Selector uint8
	Query    uint8
	_        uint8
	Size     uint16
	_        [2]byte
	Data     *byte
}

var _ [0]struct{} = [unsafe.Sizeof(controlQuery{}) - 16]struct{}{}

// uvciocCtrlQuery is _IOWR('u', 0x21, struct uvc_xu_control_query).
var uvciocCtrlQuery = uint32(3)<<30 | uint32(unsafe.Sizeof(controlQuery{}))<<16 | uint32('u')<<8 | 0x21

// Unit addresses one extension unit on an open video device.
type Unit struct {
	dev *v4l2.Device
	id  uint8
}

// NewUnit wraps a device fd and a unit id resolved with FindUnitID.
func NewUnit(dev *v4l2.Device, id uint8) *Unit {
	return &Unit{dev: dev, id: id}
}

// ID returns the unit id.
func (u *Unit) ID() uint8 { return u.id }

func (u *Unit) query(code RequestCode, selector uint8, size uint16, data *byte) error {
	q := controlQuery{Unit: u.id, Selector: selector, Query: uint8(code), Size: size, Data: data}
	if err := u.dev.Ioctl(uvciocCtrlQuery, unsafe.Pointer(&q)); err != nil {
		return fmt.Errorf("UVCIOC_CTRL_QUERY unit %d selector %d query %#02x: %w", u.id, selector, uint8(code), err)
	}
	return nil
}

// Len asks the device how many bytes the selector's register holds.
func (u *Unit) Len(selector uint8) (uint16, error) {
	var b [2]byte
	if err := u.query(RequestCodeGetLen, selector, 2, &b[0]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// Probe reports whether the unit answers a length query for the selector.
// Devices reject queries for selectors they do not implement, which is how
// optional registers are detected.
func (u *Unit) Probe(selector uint8) bool {
	_, err := u.Len(selector)
	return err == nil
}

func (u *Unit) get(code RequestCode, selector uint8) ([]byte, error) {
	n, err := u.Len(selector)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("unit %d selector %d: device reports zero-length register", u.id, selector)
	}
	buf := make([]byte, n)
	if err := u.query(code, selector, n, &buf[0]); err != nil {
		return nil, err
	}
	return buf, nil
}

// GetCur reads the register's current value at its device-reported length.
func (u *Unit) GetCur(selector uint8) ([]byte, error) {
	return u.get(RequestCodeGetCur, selector)
}

// GetMin reads the register's minimum value.
func (u *Unit) GetMin(selector uint8) ([]byte, error) {
	return u.get(RequestCodeGetMin, selector)
}

// GetMax reads the register's maximum value.
func (u *Unit) GetMax(selector uint8) ([]byte, error) {
	return u.get(RequestCodeGetMax, selector)
}

// GetDef reads the register's default value.
func (u *Unit) GetDef(selector uint8) ([]byte, error) {
	return u.get(RequestCodeGetDef, selector)
}

// SetCur writes data to the register, padded or truncated to the
// device-reported length. Sending a size other than the reported one is
// rejected by some firmware.
func (u *Unit) SetCur(selector uint8, data []byte) error {
	n, err := u.Len(selector)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("unit %d selector %d: device reports zero-length register", u.id, selector)
	}
	buf := make([]byte, n)
	copy(buf, data)
	return u.query(RequestCodeSetCur, selector, n, &buf[0])
}
