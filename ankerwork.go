package cameractrls

import (
	"strconv"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
	"github.com/kevmo314/cameractrls/pkg/xu"
)

// AnkerWork C310. Field of view ships as whole 7-byte command literals; the
// toggles are single-byte registers; face exposure compensation packs
// (value << 8) | enable_flag into one two-byte register, so the enable
// toggle and the magnitude must each preserve the other on write.
var ankerWorkGUID = xu.MustGUID("41769ea2-04de-e347-8b2b-f4341aff003b")

const ankerWorkUSBID = "291a:3367"

const (
	ankerSelectorFOV        = 0x10
	ankerSelectorHorFlip    = 0x11
	ankerSelectorHDR        = 0x13
	ankerSelectorFaceFocus  = 0x1b
	ankerSelectorNoiseRed   = 0x1d
	ankerSelectorMicPickup  = 0x1f
	ankerSelectorFaceExpose = 0x0b
)

var (
	ankerSoloFrame = []byte{0x02, 0x01, 0x5f, 0x00, 0x00, 0x00, 0x00}
	ankerFOV65     = []byte{0x00, 0x01, 0x5f, 0x00, 0x00, 0x00, 0x00}
	ankerFOV78     = []byte{0x00, 0x01, 0x4e, 0x00, 0x00, 0x00, 0x00}
	ankerFOV95     = []byte{0x00, 0x01, 0x41, 0x00, 0x00, 0x00, 0x00}
)

type ankerBinding struct {
	ctrl     Control
	selector uint8
}

// AnkerWorkBackend drives the C310's framing, microphone and face exposure
// features.
type AnkerWorkBackend struct {
	unit     xuUnit
	bindings []ankerBinding
}

func NewAnkerWorkBackend(dev *v4l2.Device, info *xu.DeviceInfo) *AnkerWorkBackend {
	if usbID(info) != ankerWorkUSBID {
		return &AnkerWorkBackend{}
	}
	return newAnkerWorkBackend(resolveUnit(dev, info, ankerWorkGUID))
}

func newAnkerWorkBackend(unit xuUnit) *AnkerWorkBackend {
	b := &AnkerWorkBackend{unit: unit}
	if unit == nil {
		return b
	}
	b.add(ankerSelectorFOV, menuControl("ankerwork_fov", "FoV",
		"Angle selection for the camera's field of view", []MenuEntry{
			{ID: "65", Name: "65°", Data: ankerFOV65},
			{ID: "78", Name: "78°", Data: ankerFOV78},
			{ID: "95", Name: "95°", Data: ankerFOV95},
			{ID: "auto", Name: "Auto", Data: ankerSoloFrame},
		}))
	b.add(ankerSelectorFaceFocus, menuControl("ankerwork_face_focus", "FF",
		"If the camera should track focusing on faces or not", []MenuEntry{
			{ID: "on", Name: "On", Value: 0x01, Valid: true},
			{ID: "off", Name: "Off", Value: 0x00, Valid: true},
		}))
	b.add(ankerSelectorNoiseRed, menuControl("ankerwork_mic_noisered", "mic",
		"Enable or disable the microphone noise reduction algorithm", []MenuEntry{
			{ID: "on", Name: "On", Value: 0x01, Valid: true},
			{ID: "off", Name: "Off", Value: 0x00, Valid: true},
		}))
	b.add(ankerSelectorMicPickup, menuControl("ankerwork_mic_pickup", "mic",
		"Set which microphone pickup pattern to use, either 360 or 90", []MenuEntry{
			{ID: "90", Name: "90°", Value: 0x5a, Valid: true},
			{ID: "360", Name: "360°", Value: 0x00, Valid: true},
		}))
	b.add(ankerSelectorHDR, menuControl("ankerwork_hdr", "HDR",
		"Enable High Dynamic Range to enhance image quality, particularly in extreme lighting conditions", []MenuEntry{
			{ID: "off", Name: "Off", Value: 0x00, Valid: true},
			{ID: "on", Name: "On", Value: 0x01, Valid: true},
		}))
	b.add(ankerSelectorFaceExpose, menuControl("ankerwork_face_compensation_enable", "Face Compensation Enable",
		"Enable face compensation algorithm", []MenuEntry{
			{ID: "off", Name: "Off", Value: 0x00, Valid: true},
			{ID: "on", Name: "On", Value: 0x01, Valid: true},
		}))
	comp := integerControl("ankerwork_face_compensation", "Face Compensation",
		"Set compensation for face exposure settings. Range goes from -3.5 EV as the lowest value (0) and 6.5 EV as the highest value (6.5 EV). The default is 35 (which is equivalent to 0 EV).")
	comp.Min, comp.Max, comp.Default = 0, 100, 35
	b.add(ankerSelectorFaceExpose, comp)
	b.add(ankerSelectorHorFlip, menuControl("ankerwork_hor_flip", "Flip Horizontal",
		"Flip the camera view horizontally.", []MenuEntry{
			{ID: "off", Name: "Off", Value: 0x00, Valid: true},
			{ID: "on", Name: "On", Value: 0x01, Valid: true},
		}))
	b.readState()
	return b
}

func (b *AnkerWorkBackend) add(selector uint8, ctrl Control) {
	b.bindings = append(b.bindings, ankerBinding{ctrl: ctrl, selector: selector})
}

func (b *AnkerWorkBackend) readState() {
	for _, bd := range b.bindings {
		buf, err := b.unit.GetCur(bd.selector)
		if err != nil {
			continue
		}
		switch c := bd.ctrl.(type) {
		case *MenuControl:
			if e := decodeAnkerEntry(bd.ctrl.Meta().ID, c, buf); e != nil {
				c.setState(State{Entry: e.ID})
			}
		case *IntegerControl:
			c.setState(State{Value: int32(registerUint(buf) >> 8), Valid: true})
		}
	}
}

// decodeAnkerEntry resolves a register image to its menu entry. The field
// of view register is matched as a whole literal; everything else decodes
// from the first byte. No match means the camera is in a state the menu
// does not describe, which resolves to unset.
func decodeAnkerEntry(id string, c *MenuControl, buf []byte) *MenuEntry {
	if id == "ankerwork_fov" {
		raw := registerUint(buf)
		for i := range c.Entries {
			if registerUint(c.Entries[i].Data) == raw {
				return &c.Entries[i]
			}
		}
		return nil
	}
	v, ok := registerByte(buf, 0)
	if !ok {
		return nil
	}
	return findEntryByValue(c.Entries, int32(v))
}

func (b *AnkerWorkBackend) Supported() bool { return b.unit != nil }

func (b *AnkerWorkBackend) Controls() []Control {
	var out []Control
	for _, bd := range b.bindings {
		out = append(out, bd.ctrl)
	}
	return out
}

func (b *AnkerWorkBackend) Apply(batch Batch, warns *Warnings) {
	if !b.Supported() {
		return
	}
	for _, a := range batch {
		for _, bd := range b.bindings {
			if bd.ctrl.Meta().ID == a.Name {
				b.applyOne(bd, a.Value, warns)
				break
			}
		}
	}
}

func (b *AnkerWorkBackend) applyOne(bd ankerBinding, value string, warns *Warnings) {
	id := bd.ctrl.Meta().ID
	switch c := bd.ctrl.(type) {
	case *MenuControl:
		e := findEntry(c.Entries, value)
		if e == nil {
			warns.addf("can't find %s in %v", value, entryIDs(c.Entries))
			return
		}
		var payload []byte
		switch {
		case e.Data != nil:
			payload = e.Data
		case id == "ankerwork_face_compensation_enable":
			cur, err := b.unit.GetCur(bd.selector)
			if err != nil {
				warns.addf("can't set %s to %s (%v)", id, value, err)
				return
			}
			if len(cur) == 0 {
				warns.addf("can't set %s to %s (%v)", id, value, errShortRegister(bd.selector, 0))
				return
			}
			// The toggle must leave the magnitude byte alone.
			cur[0] = byte(e.Value)
			payload = cur
		default:
			payload = []byte{byte(e.Value)}
		}
		if err := b.unit.SetCur(bd.selector, payload); err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
			return
		}
		buf, err := b.unit.GetCur(bd.selector)
		if err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
			return
		}
		ge := decodeAnkerEntry(id, c, buf)
		if ge == nil || ge.ID != e.ID {
			current := strconv.FormatUint(registerUint(buf), 10)
			if ge != nil {
				current = ge.ID
			}
			warns.addf("failed to set %s to %s, current value %s", id, e.ID, current)
			return
		}
		c.update(func(s *State) { s.Entry = e.ID })

	case *IntegerControl:
		v, err := c.resolveValue(value)
		if err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
			return
		}
		if v < c.Min || v > c.Max {
			warns.addf("can't set %s to %s (out of range %d..%d)", id, value, c.Min, c.Max)
			return
		}
		cur, err := b.unit.GetCur(bd.selector)
		if err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
			return
		}
		var enable byte
		if len(cur) > 0 {
			enable = cur[0]
		}
		enc := uint16(v)<<8 | uint16(enable)
		if err := b.unit.SetCur(bd.selector, []byte{byte(enc), byte(enc >> 8)}); err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
			return
		}
		buf, err := b.unit.GetCur(bd.selector)
		if err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
			return
		}
		got := int32(registerUint(buf) >> 8)
		if got != v {
			warns.addf("failed to set %s to %d, current value %d", id, v, got)
			return
		}
		c.update(func(s *State) { s.Value, s.Valid = v, true })
	}
}
