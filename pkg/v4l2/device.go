//go:build linux && (amd64 || arm64)

// Package v4l2 speaks the subset of the Video4Linux2 ioctl interface needed
// to query and set camera controls and to negotiate capture formats. It
// deliberately stops short of buffer queueing and streaming.
package v4l2

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Device is an open video device node.
type Device struct {
	fd   int
	path string
}

// Open opens a device node read-write.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Device{fd: fd, path: path}, nil
}

// Close releases the file descriptor.
func (d *Device) Close() error {
	return unix.Close(d.fd)
}

// Fd returns the underlying file descriptor, for pollers.
func (d *Device) Fd() int { return d.fd }

// Path returns the path the device was opened with.
func (d *Device) Path() string { return d.path }

// Ioctl issues a raw ioctl against the device, retrying on EINTR. The caller
// keeps ownership of arg; it must be a pointer to a kernel-layout struct.
func (d *Device) Ioctl(op uint32, arg unsafe.Pointer) error {
	for {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), uintptr(op), uintptr(arg))
		switch errno {
		case 0:
			return nil
		case unix.EINTR:
			continue
		default:
			return errno
		}
	}
}

// QueryCap returns the device's capability record.
func (d *Device) QueryCap() (*Capability, error) {
	var c Capability
	if err := d.Ioctl(vidiocQueryCap, unsafe.Pointer(&c)); err != nil {
		return nil, fmt.Errorf("VIDIOC_QUERYCAP: %w", err)
	}
	return &c, nil
}

// QueryCtrl describes one control. OR CtrlFlagNextCtrl|CtrlFlagNextCompound
// into id to step through the device's controls; the first failure marks the
// end of the enumeration.
func (d *Device) QueryCtrl(id uint32) (*QueryCtrl, error) {
	q := QueryCtrl{ID: id}
	if err := d.Ioctl(vidiocQueryCtrl, unsafe.Pointer(&q)); err != nil {
		return nil, fmt.Errorf("VIDIOC_QUERYCTRL: %w", err)
	}
	return &q, nil
}

// QueryMenu describes one menu item of a menu control. Indices are sparse;
// a failure means the index carries no item, not that the menu ended.
func (d *Device) QueryMenu(id, index uint32) (*QueryMenu, error) {
	q := QueryMenu{ID: id, Index: index}
	if err := d.Ioctl(vidiocQueryMenu, unsafe.Pointer(&q)); err != nil {
		return nil, fmt.Errorf("VIDIOC_QUERYMENU: %w", err)
	}
	return &q, nil
}

// GetCtrl reads a control's current value.
func (d *Device) GetCtrl(id uint32) (int32, error) {
	c := Control{ID: id}
	if err := d.Ioctl(vidiocGetCtrl, unsafe.Pointer(&c)); err != nil {
		return 0, fmt.Errorf("VIDIOC_G_CTRL: %w", err)
	}
	return c.Value, nil
}

// SetCtrl writes a control value and returns the value the driver reports
// having applied, which may differ when the driver clamps.
func (d *Device) SetCtrl(id uint32, value int32) (int32, error) {
	c := Control{ID: id, Value: value}
	if err := d.Ioctl(vidiocSetCtrl, unsafe.Pointer(&c)); err != nil {
		return 0, fmt.Errorf("VIDIOC_S_CTRL: %w", err)
	}
	return c.Value, nil
}

// GetFormat returns the current capture format.
func (d *Device) GetFormat() (*Format, error) {
	f := Format{Type: BufTypeVideoCapture}
	if err := d.Ioctl(vidiocGetFormat, unsafe.Pointer(&f)); err != nil {
		return nil, fmt.Errorf("VIDIOC_G_FMT: %w", err)
	}
	return &f, nil
}

// SetFormat writes a capture format. The driver updates f in place with the
// format it actually applied.
func (d *Device) SetFormat(f *Format) error {
	if err := d.Ioctl(vidiocSetFormat, unsafe.Pointer(f)); err != nil {
		return fmt.Errorf("VIDIOC_S_FMT: %w", err)
	}
	return nil
}

// GetParm returns the current capture streaming parameters.
func (d *Device) GetParm() (*StreamParm, error) {
	p := StreamParm{Type: BufTypeVideoCapture}
	if err := d.Ioctl(vidiocGetParm, unsafe.Pointer(&p)); err != nil {
		return nil, fmt.Errorf("VIDIOC_G_PARM: %w", err)
	}
	return &p, nil
}

// SetParm writes capture streaming parameters. The driver updates p in
// place with the parameters it actually applied.
func (d *Device) SetParm(p *StreamParm) error {
	if err := d.Ioctl(vidiocSetParm, unsafe.Pointer(p)); err != nil {
		return fmt.Errorf("VIDIOC_S_PARM: %w", err)
	}
	return nil
}

// EnumFormat describes the index-th supported capture format. The first
// failure marks the end of the enumeration.
func (d *Device) EnumFormat(index uint32) (*FormatDesc, error) {
	f := FormatDesc{Index: index, Type: BufTypeVideoCapture}
	if err := d.Ioctl(vidiocEnumFmt, unsafe.Pointer(&f)); err != nil {
		return nil, fmt.Errorf("VIDIOC_ENUM_FMT: %w", err)
	}
	return &f, nil
}

// EnumFrameSize describes the index-th frame size supported for a pixel
// format.
func (d *Device) EnumFrameSize(pixelFormat FourCC, index uint32) (*FrameSizeEnum, error) {
	f := FrameSizeEnum{Index: index, PixelFormat: pixelFormat}
	if err := d.Ioctl(vidiocEnumFrameSizes, unsafe.Pointer(&f)); err != nil {
		return nil, fmt.Errorf("VIDIOC_ENUM_FRAMESIZES: %w", err)
	}
	return &f, nil
}

// EnumFrameInterval describes the index-th frame interval supported for a
// pixel format at a resolution.
func (d *Device) EnumFrameInterval(pixelFormat FourCC, width, height, index uint32) (*FrameIntervalEnum, error) {
	f := FrameIntervalEnum{Index: index, PixelFormat: pixelFormat, Width: width, Height: height}
	if err := d.Ioctl(vidiocEnumFrameIntervals, unsafe.Pointer(&f)); err != nil {
		return nil, fmt.Errorf("VIDIOC_ENUM_FRAMEINTERVALS: %w", err)
	}
	return &f, nil
}

// SubscribeEvent subscribes the fd to events of the given type for one
// control id.
func (d *Device) SubscribeEvent(typ, id, flags uint32) error {
	s := EventSubscription{Type: typ, ID: id, Flags: flags}
	if err := d.Ioctl(vidiocSubscribeEvent, unsafe.Pointer(&s)); err != nil {
		return fmt.Errorf("VIDIOC_SUBSCRIBE_EVENT: %w", err)
	}
	return nil
}

// UnsubscribeEvent removes an event subscription.
func (d *Device) UnsubscribeEvent(typ, id uint32) error {
	s := EventSubscription{Type: typ, ID: id}
	if err := d.Ioctl(vidiocUnsubscribeEvent, unsafe.Pointer(&s)); err != nil {
		return fmt.Errorf("VIDIOC_UNSUBSCRIBE_EVENT: %w", err)
	}
	return nil
}

// DequeueEvent pops one pending event off the device's event queue.
func (d *Device) DequeueEvent() (*Event, error) {
	var e Event
	if err := d.Ioctl(vidiocDequeueEvent, unsafe.Pointer(&e)); err != nil {
		return nil, fmt.Errorf("VIDIOC_DQEVENT: %w", err)
	}
	return &e, nil
}
