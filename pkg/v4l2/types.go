//go:build linux && (amd64 || arm64)

package v4l2

import (
	"encoding/binary"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// The structs in this file are passed to the kernel by pointer, so field
// order, widths and padding must reproduce the C layouts from videodev2.h
// on 64-bit targets exactly. The zero-length array assertions at the bottom
// of the file fail to compile when a layout drifts from the kernel's size.

// Capability mirrors struct v4l2_capability, returned by VIDIOC_QUERYCAP.
type Capability struct {
	Driver       [16]byte
	Card         [32]byte
	BusInfo      [32]byte
	Version      uint32
	Capabilities uint32
	DeviceCaps   uint32
	Reserved     [3]uint32
}

// DriverName returns the NUL-terminated driver field as a string.
func (c *Capability) DriverName() string { return cstr(c.Driver[:]) }

// CardName returns the NUL-terminated card field as a string.
func (c *Capability) CardName() string { return cstr(c.Card[:]) }

// QueryCtrl mirrors struct v4l2_queryctrl, filled in by VIDIOC_QUERYCTRL.
type QueryCtrl struct {
	ID           uint32
	Type         CtrlType
	Name         [32]byte
	Minimum      int32
	Maximum      int32
	Step         int32
	DefaultValue int32
	Flags        CtrlFlag
	Reserved     [2]uint32
}

// CtrlName returns the NUL-terminated name field as a string.
func (q *QueryCtrl) CtrlName() string { return cstr(q.Name[:]) }

// QueryMenu mirrors struct v4l2_querymenu. The struct is packed in the
// kernel headers; the layout here has no implicit padding either. NameOrValue
// is a union: a NUL-terminated label for CtrlTypeMenu items and a
// little-endian int64 for CtrlTypeIntegerMenu items.
type QueryMenu struct {
	ID          uint32
	Index       uint32
	NameOrValue [32]byte
	Reserved    uint32
}

// MenuName returns the union region as a menu item label.
func (q *QueryMenu) MenuName() string { return cstr(q.NameOrValue[:]) }

// Value returns the union region as an integer menu item value.
func (q *QueryMenu) Value() int64 {
	return int64(binary.LittleEndian.Uint64(q.NameOrValue[:8]))
}

// Control mirrors struct v4l2_control, used by VIDIOC_G_CTRL and
// VIDIOC_S_CTRL. On a set call the driver writes the value it actually
// applied back into Value.
type Control struct {
	ID    uint32
	Value int32
}

// PixFormat mirrors struct v4l2_pix_format, the single-planar payload of
// Format.
type PixFormat struct {
	Width        uint32
	Height       uint32
	PixelFormat  FourCC
	Field        uint32
	BytesPerLine uint32
	SizeImage    uint32
	Colorspace   uint32
	Priv         uint32
	Flags        uint32
	YcbcrEnc     uint32
	Quantization uint32
	XferFunc     uint32
}

// Format mirrors struct v4l2_format. The kernel declares the payload as a
// 200-byte union of several shapes selected by Type; only the single-planar
// pixel shape is modeled, the rest of the union is padding. The union
// carries pointers in some shapes, so it sits at offset 8 on 64-bit.
type Format struct {
	Type uint32
	_    [4]byte
	Pix  PixFormat
	_    [152]byte
}

// Fract mirrors struct v4l2_fract, a rational number used both for frame
// intervals and for the time-per-frame streaming parameter.
type Fract struct {
	Numerator   uint32
	Denominator uint32
}

// FPS returns the frame rate described by a time-per-frame fraction.
func (f Fract) FPS() float64 {
	if f.Numerator == 0 {
		return 0
	}
	return float64(f.Denominator) / float64(f.Numerator)
}

// FPSString formats the frame rate with one decimal place, eliding a
// trailing ".0" so whole rates read as plain integers.
func (f Fract) FPSString() string {
	s := strconv.FormatFloat(f.FPS(), 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// CaptureParm mirrors struct v4l2_captureparm.
type CaptureParm struct {
	Capability   uint32
	CaptureMode  uint32
	TimePerFrame Fract
	ExtendedMode uint32
	ReadBuffers  uint32
	Reserved     [4]uint32
}

// StreamParm mirrors struct v4l2_streamparm. As with Format the payload is
// a 200-byte union; only the capture shape is modeled. The union holds no
// pointers, so it starts right after Type.
type StreamParm struct {
	Type    uint32
	Capture CaptureParm
	_       [160]byte
}

// FormatDesc mirrors struct v4l2_fmtdesc, enumerated by VIDIOC_ENUM_FMT.
type FormatDesc struct {
	Index       uint32
	Type        uint32
	Flags       uint32
	Description [32]byte
	PixelFormat FourCC
	MbusCode    uint32
	Reserved    [3]uint32
}

// FrameSizeDiscrete mirrors struct v4l2_frmsize_discrete.
type FrameSizeDiscrete struct {
	Width  uint32
	Height uint32
}

// FrameSizeEnum mirrors struct v4l2_frmsizeenum. Only the discrete union
// shape is modeled; stepwise ranges are left as padding.
type FrameSizeEnum struct {
	Index       uint32
	PixelFormat FourCC
	Type        uint32
	Discrete    FrameSizeDiscrete
	_           [16]byte
	Reserved    [2]uint32
}

// FrameIntervalEnum mirrors struct v4l2_frmivalenum. Only the discrete
// union shape is modeled.
type FrameIntervalEnum struct {
	Index       uint32
	PixelFormat FourCC
	Width       uint32
	Height      uint32
	Type        uint32
	Discrete    Fract
	_           [16]byte
	Reserved    [2]uint32
}

// EventSubscription mirrors struct v4l2_event_subscription.
type EventSubscription struct {
	Type     uint32
	ID       uint32
	Flags    uint32
	Reserved [5]uint32
}

// Event mirrors struct v4l2_event. The 64-byte union region is decoded on
// demand by Ctrl; the union holds an int64, so it is 8-aligned.
type Event struct {
	Type      uint32
	_         [4]byte
	U         [64]byte
	Pending   uint32
	Sequence  uint32
	Timestamp unix.Timespec
	ID        uint32
	Reserved  [8]uint32
}

// EventCtrl is the decoded control-change payload of an Event whose Type is
// EventTypeCtrl, mirroring struct v4l2_event_ctrl.
type EventCtrl struct {
	Changes uint32
	Type    CtrlType
	Value   int32
	Value64 int64
	Flags   CtrlFlag
	Minimum int32
	Maximum int32
	Step    int32
	Default int32
}

// Ctrl decodes the event union as a control-change payload.
func (e *Event) Ctrl() EventCtrl {
	return EventCtrl{
		Changes: binary.LittleEndian.Uint32(e.U[0:4]),
		Type:    CtrlType(binary.LittleEndian.Uint32(e.U[4:8])),
		Value:   int32(binary.LittleEndian.Uint32(e.U[8:12])),
		Value64: int64(binary.LittleEndian.Uint64(e.U[8:16])),
		Flags:   CtrlFlag(binary.LittleEndian.Uint32(e.U[16:20])),
		Minimum: int32(binary.LittleEndian.Uint32(e.U[20:24])),
		Maximum: int32(binary.LittleEndian.Uint32(e.U[24:28])),
		Step:    int32(binary.LittleEndian.Uint32(e.U[28:32])),
		Default: int32(binary.LittleEndian.Uint32(e.U[32:36])),
	}
}

func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// Layout assertions against the kernel's struct sizes. A mismatch in either
// direction fails to compile.
var (
	_ [0]struct{} = [unsafe.Sizeof(Capability{}) - 104]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(QueryCtrl{}) - 68]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(QueryMenu{}) - 44]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(Control{}) - 8]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(PixFormat{}) - 48]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(Format{}) - 208]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(CaptureParm{}) - 40]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(StreamParm{}) - 204]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(FormatDesc{}) - 64]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(FrameSizeEnum{}) - 44]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(FrameIntervalEnum{}) - 52]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(EventSubscription{}) - 32]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(Event{}) - 136]struct{}{}
)
