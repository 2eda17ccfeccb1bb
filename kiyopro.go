package cameractrls

import (
	"github.com/kevmo314/cameractrls/pkg/v4l2"
	"github.com/kevmo314/cameractrls/pkg/xu"
)

// Razer Kiyo Pro. All settings go through one write-only ISP register as
// whole 8-byte command literals captured from the vendor's own software; the
// camera offers no way to read them back.
var kiyoProGUID = xu.MustGUID("23e49ed0-1178-4f31-ae52-d2fb8a8d3b48")

const (
	kiyoProUSBID       = "1532:0e05"
	kiyoProSelectorISP = 0x01
)

var (
	kiyoAFResponsive = []byte{0xff, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	kiyoAFPassive    = []byte{0xff, 0x06, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}

	kiyoHDROff = []byte{0xff, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	kiyoHDROn  = []byte{0xff, 0x02, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}

	kiyoHDRDark   = []byte{0xff, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	kiyoHDRBright = []byte{0xff, 0x07, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}

	// Medium and narrow field of view need a positioning command first,
	// otherwise the crop jumps visibly.
	kiyoFOVWide      = []byte{0xff, 0x01, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00}
	kiyoFOVMediumPre = []byte{0xff, 0x01, 0x00, 0x03, 0x01, 0x00, 0x00, 0x00}
	kiyoFOVMedium    = []byte{0xff, 0x01, 0x01, 0x03, 0x01, 0x00, 0x00, 0x00}
	kiyoFOVNarrowPre = []byte{0xff, 0x01, 0x00, 0x03, 0x02, 0x00, 0x00, 0x00}
	kiyoFOVNarrow    = []byte{0xff, 0x01, 0x01, 0x03, 0x02, 0x00, 0x00, 0x00}

	// Persists the current settings in the camera's NVRAM.
	kiyoSave = []byte{0xc0, 0x03, 0xa8, 0x00, 0x00, 0x00, 0x00, 0x00}
)

// KiyoProBackend drives the Kiyo Pro's ISP register. Writes are optimistic:
// with no readable state there is nothing to verify against, so the cache
// assumes the command took.
type KiyoProBackend struct {
	unit  xuUnit
	ctrls []Control
}

func NewKiyoProBackend(dev *v4l2.Device, info *xu.DeviceInfo) *KiyoProBackend {
	if usbID(info) != kiyoProUSBID {
		return &KiyoProBackend{}
	}
	return newKiyoProBackend(resolveUnit(dev, info, kiyoProGUID))
}

func newKiyoProBackend(unit xuUnit) *KiyoProBackend {
	b := &KiyoProBackend{unit: unit}
	if unit == nil {
		return b
	}
	b.ctrls = []Control{
		menuControl("kiyo_pro_af_mode", "AF Mode", "Kiyo Pro Auto Focus mode", []MenuEntry{
			{ID: "passive", Name: "Passive", Data: kiyoAFPassive},
			{ID: "responsive", Name: "Responsive", Data: kiyoAFResponsive},
		}),
		menuControl("kiyo_pro_hdr", "HDR", "Kiyo Pro High Dynamic Range", []MenuEntry{
			{ID: "off", Name: "Off", Data: kiyoHDROff},
			{ID: "on", Name: "On", Data: kiyoHDROn},
		}),
		menuControl("kiyo_pro_hdr_mode", "HDR Mode", "Kiyo Pro High Dynamic Range mode", []MenuEntry{
			{ID: "bright", Name: "Bright", Data: kiyoHDRBright},
			{ID: "dark", Name: "Dark", Data: kiyoHDRDark},
		}),
		menuControl("kiyo_pro_fov", "FoV", "Kiyo Pro Field of View", []MenuEntry{
			{ID: "narrow", Name: "Narrow", Data: kiyoFOVNarrow, Pre: kiyoFOVNarrowPre},
			{ID: "medium", Name: "Medium", Data: kiyoFOVMedium, Pre: kiyoFOVMediumPre},
			{ID: "wide", Name: "Wide", Data: kiyoFOVWide},
		}),
		buttonControl("kiyo_pro_save", "Save settings to Kiyo Pro", "Save the settings into the Kiyo Pro's NVRAM", []MenuEntry{
			{ID: "save", Name: "Save", Data: kiyoSave},
		}),
	}
	return b
}

func (b *KiyoProBackend) Supported() bool { return b.unit != nil }

func (b *KiyoProBackend) Controls() []Control { return b.ctrls }

func (b *KiyoProBackend) Apply(batch Batch, warns *Warnings) {
	if !b.Supported() {
		return
	}
	for _, a := range batch {
		ctrl := findControl(b.ctrls, a.Name)
		if ctrl == nil {
			continue
		}
		entries := menuEntriesOf(ctrl)
		e := findEntry(entries, a.Value)
		if e == nil {
			warns.addf("can't find %s in %v", a.Value, entryIDs(entries))
			continue
		}
		if mc, ok := ctrl.(*MenuControl); ok {
			mc.update(func(s *State) { s.Entry = e.ID })
		}
		if e.Pre != nil {
			if err := b.unit.SetCur(kiyoProSelectorISP, e.Pre); err != nil {
				warns.addf("can't set %s to %s (%v)", a.Name, a.Value, err)
				continue
			}
		}
		if err := b.unit.SetCur(kiyoProSelectorISP, e.Data); err != nil {
			warns.addf("can't set %s to %s (%v)", a.Name, a.Value, err)
		}
	}
}

// menuEntriesOf returns the entry list of a Menu or Button control.
func menuEntriesOf(c Control) []MenuEntry {
	switch c := c.(type) {
	case *MenuControl:
		return c.Entries
	case *ButtonControl:
		return c.Entries
	}
	return nil
}
