//go:build linux && (amd64 || arm64)

package v4l2

import "testing"

// Reference values computed from videodev2.h on a 64-bit kernel. If a
// struct layout drifts, the computed opcode changes and this test names the
// offending request.
func TestOpcodeValues(t *testing.T) {
	tests := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"VIDIOC_QUERYCAP", vidiocQueryCap, 0x80685600},
		{"VIDIOC_ENUM_FMT", vidiocEnumFmt, 0xc0405602},
		{"VIDIOC_G_FMT", vidiocGetFormat, 0xc0d05604},
		{"VIDIOC_S_FMT", vidiocSetFormat, 0xc0d05605},
		{"VIDIOC_G_PARM", vidiocGetParm, 0xc0cc5615},
		{"VIDIOC_S_PARM", vidiocSetParm, 0xc0cc5616},
		{"VIDIOC_G_CTRL", vidiocGetCtrl, 0xc008561b},
		{"VIDIOC_S_CTRL", vidiocSetCtrl, 0xc008561c},
		{"VIDIOC_QUERYCTRL", vidiocQueryCtrl, 0xc0445624},
		{"VIDIOC_QUERYMENU", vidiocQueryMenu, 0xc02c5625},
		{"VIDIOC_ENUM_FRAMESIZES", vidiocEnumFrameSizes, 0xc02c564a},
		{"VIDIOC_ENUM_FRAMEINTERVALS", vidiocEnumFrameIntervals, 0xc034564b},
		{"VIDIOC_DQEVENT", vidiocDequeueEvent, 0x80885659},
		{"VIDIOC_SUBSCRIBE_EVENT", vidiocSubscribeEvent, 0x4020565a},
		{"VIDIOC_UNSUBSCRIBE_EVENT", vidiocUnsubscribeEvent, 0x4020565b},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %#x, want %#x", tt.name, tt.got, tt.want)
		}
	}
}

func TestOpcodePacking(t *testing.T) {
	op := ioWR('V', 27, 8) // VIDIOC_G_CTRL

	if dir := op >> iocDirShift; dir != iocRead|iocWrite {
		t.Errorf("direction = %d, want %d", dir, iocRead|iocWrite)
	}
	if size := (op >> iocSizeShift) & (1<<iocSizeBits - 1); size != 8 {
		t.Errorf("size = %d, want 8", size)
	}
	if typ := (op >> iocTypeShift) & (1<<iocTypeBits - 1); typ != 'V' {
		t.Errorf("type = %#x, want %#x", typ, 'V')
	}
	if nr := op & (1<<iocNrBits - 1); nr != 27 {
		t.Errorf("nr = %d, want 27", nr)
	}
}
