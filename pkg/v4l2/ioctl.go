//go:build linux && (amd64 || arm64)

package v4l2

import "unsafe"

// ioctl opcodes pack the transfer direction, an ASCII type tag, a command
// number and the payload size into one 32-bit value, matching the layout in
// the kernel's ioctl.h. The sizes below come from unsafe.Sizeof on the
// structs in types.go, so a wrong struct layout yields a wrong opcode and
// the kernel rejects the call instead of silently corrupting memory.
const (
	iocNrBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNrShift   = 0
	iocTypeShift = iocNrShift + iocNrBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uint32) uint32 {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNrShift | size<<iocSizeShift
}

func ioR(typ, nr, size uint32) uint32  { return ioc(iocRead, typ, nr, size) }
func ioW(typ, nr, size uint32) uint32  { return ioc(iocWrite, typ, nr, size) }
func ioWR(typ, nr, size uint32) uint32 { return ioc(iocRead|iocWrite, typ, nr, size) }

var (
	vidiocQueryCap           = ioR('V', 0, uint32(unsafe.Sizeof(Capability{})))
	vidiocEnumFmt            = ioWR('V', 2, uint32(unsafe.Sizeof(FormatDesc{})))
	vidiocGetFormat          = ioWR('V', 4, uint32(unsafe.Sizeof(Format{})))
	vidiocSetFormat          = ioWR('V', 5, uint32(unsafe.Sizeof(Format{})))
	vidiocGetParm            = ioWR('V', 21, uint32(unsafe.Sizeof(StreamParm{})))
	vidiocSetParm            = ioWR('V', 22, uint32(unsafe.Sizeof(StreamParm{})))
	vidiocGetCtrl            = ioWR('V', 27, uint32(unsafe.Sizeof(Control{})))
	vidiocSetCtrl            = ioWR('V', 28, uint32(unsafe.Sizeof(Control{})))
	vidiocQueryCtrl          = ioWR('V', 36, uint32(unsafe.Sizeof(QueryCtrl{})))
	vidiocQueryMenu          = ioWR('V', 37, uint32(unsafe.Sizeof(QueryMenu{})))
	vidiocEnumFrameSizes     = ioWR('V', 74, uint32(unsafe.Sizeof(FrameSizeEnum{})))
	vidiocEnumFrameIntervals = ioWR('V', 75, uint32(unsafe.Sizeof(FrameIntervalEnum{})))
	vidiocDequeueEvent       = ioR('V', 89, uint32(unsafe.Sizeof(Event{})))
	vidiocSubscribeEvent     = ioW('V', 90, uint32(unsafe.Sizeof(EventSubscription{})))
	vidiocUnsubscribeEvent   = ioW('V', 91, uint32(unsafe.Sizeof(EventSubscription{})))
)
