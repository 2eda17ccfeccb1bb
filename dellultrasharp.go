package cameractrls

import (
	"github.com/kevmo314/cameractrls/pkg/v4l2"
	"github.com/kevmo314/cameractrls/pkg/xu"
)

// Dell UltraSharp WB7022. The unit reuses the Kiyo Pro's GUID, so the
// USB id match is what actually selects this backend; commands are whole
// 8-byte literals on a write-only selector, like the Kiyo.
var dellUltraSharpGUID = xu.MustGUID("23e49ed0-1178-4f31-ae52-d2fb8a8d3b48")

const (
	dellUltraSharpUSBID       = "413c:c015"
	dellUltraSharpSelectorSet = 0x01
)

// DellUltraSharpBackend drives the UltraSharp's framing, field of view and
// HDR features.
type DellUltraSharpBackend struct {
	unit  xuUnit
	ctrls []Control
}

func NewDellUltraSharpBackend(dev *v4l2.Device, info *xu.DeviceInfo) *DellUltraSharpBackend {
	if usbID(info) != dellUltraSharpUSBID {
		return &DellUltraSharpBackend{}
	}
	return newDellUltraSharpBackend(resolveUnit(dev, info, dellUltraSharpGUID))
}

func newDellUltraSharpBackend(unit xuUnit) *DellUltraSharpBackend {
	b := &DellUltraSharpBackend{unit: unit}
	if unit == nil {
		return b
	}
	b.ctrls = []Control{
		menuControl("dell_ultrasharp_auto_framing", "Auto Framing",
			"Intelligent scene analysis and facial tracking to zoom and pan the view when you move", []MenuEntry{
				{ID: "off", Name: "Off", Data: []byte{0xff, 0x14, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}},
				{ID: "on", Name: "On", Data: []byte{0xff, 0x14, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00}},
			}),
		menuControl("dell_ultrasharp_camera_transition", "Camera Transition",
			"It enables a smooth transition by panning and zooming when the camera readjusts your position in the frame", []MenuEntry{
				{ID: "off", Name: "Off", Data: []byte{0xff, 0x14, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00}},
				{ID: "on", Name: "On", Data: []byte{0xff, 0x14, 0x10, 0x01, 0x00, 0x00, 0x00, 0x00}},
			}),
		menuControl("dell_ultrasharp_tracking_sensitivity", "Tracking Sensitivity",
			"Adjust how quickly you'd like the camera to respond to your movement and readjust your position in the frame", []MenuEntry{
				{ID: "normal", Name: "Normal", Data: []byte{0xff, 0x14, 0x11, 0x01, 0x00, 0x00, 0x00, 0x00}},
				{ID: "fast", Name: "Fast", Data: []byte{0xff, 0x14, 0x11, 0x02, 0x00, 0x00, 0x00, 0x00}},
			}),
		menuControl("dell_ultrasharp_tracking_frame_size", "Tracking Frame Size",
			"Adjust the frame size", []MenuEntry{
				{ID: "narrow", Name: "Narrow", Data: []byte{0xff, 0x14, 0x12, 0x02, 0x00, 0x00, 0x00, 0x00}},
				{ID: "standard", Name: "Standard", Data: []byte{0xff, 0x14, 0x12, 0x01, 0x00, 0x00, 0x00, 0x00}},
			}),
		menuControl("dell_ultrasharp_fov", "FoV",
			"Angle selection for the camera's field of view", []MenuEntry{
				{ID: "65", Name: "65°", Data: []byte{0xff, 0x10, 0x01, 0x41, 0x00, 0x00, 0x00, 0x00}},
				{ID: "78", Name: "78°", Data: []byte{0xff, 0x10, 0x01, 0x4e, 0x00, 0x00, 0x00, 0x00}},
				{ID: "90", Name: "90°", Data: []byte{0xff, 0x10, 0x01, 0x5a, 0x00, 0x00, 0x00, 0x00}},
			}),
		menuControl("dell_ultrasharp_hdr", "HDR",
			"Enable High Dynamic Range to enhance image quality, particularly in extreme lighting conditions", []MenuEntry{
				{ID: "off", Name: "Off", Data: []byte{0xff, 0x11, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
				{ID: "on", Name: "On", Data: []byte{0xff, 0x11, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}},
			}),
	}
	return b
}

func (b *DellUltraSharpBackend) Supported() bool { return b.unit != nil }

func (b *DellUltraSharpBackend) Controls() []Control { return b.ctrls }

func (b *DellUltraSharpBackend) Apply(batch Batch, warns *Warnings) {
	if !b.Supported() {
		return
	}
	for _, a := range batch {
		ctrl := findControl(b.ctrls, a.Name)
		if ctrl == nil {
			continue
		}
		mc := ctrl.(*MenuControl)
		e := findEntry(mc.Entries, a.Value)
		if e == nil {
			warns.addf("can't find %s in %v", a.Value, entryIDs(mc.Entries))
			continue
		}
		mc.update(func(s *State) { s.Entry = e.ID })
		if err := b.unit.SetCur(dellUltraSharpSelectorSet, e.Data); err != nil {
			warns.addf("can't set %s to %s (%v)", a.Name, a.Value, err)
		}
	}
}
