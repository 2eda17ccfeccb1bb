package cameractrls

import (
	"slices"
	"strconv"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
	"github.com/kevmo314/cameractrls/pkg/xu"
)

// Logitech splits its vendor features over four extension units. Registers
// pack several logical fields into one byte buffer, so writes are
// read-modify-write of a single byte at a fixed offset; pan/tilt motion and
// reset are fire-once button literals.
var (
	logitechPeripheralGUID = xu.MustGUID("ffe52d21-8030-4e2c-82d9-f587d00540bd")
	logitechUserHWGUID     = xu.MustGUID("63610682-5070-49ab-b8cc-b3855e8d221f")
	logitechMotorGUID      = xu.MustGUID("63610682-5070-49ab-b8cc-b3855e8d2256")
	logitechBrioGUID       = xu.MustGUID("49e40215-f434-47fe-b158-0e885023e51b")
)

const (
	logitechSelectorPanTiltRel    = 0x01
	logitechSelectorPanTiltReset  = 0x02
	logitechSelectorPanTiltPreset = 0x02
	logitechSelectorLED1          = 0x09
	logitechSelectorHWLED1        = 0x01
	logitechSelectorMotorFocus    = 0x03
	logitechSelectorBrioFOV       = 0x05
)

var logitechPresetDevices = []string{
	"046d:0853", // PTZ Pro
	"046d:0858", // Group camera
	"046d:085f", // PTZ Pro 2
	"046d:0866", // Meetup camera
	"046d:0881", // Rally camera
	"046d:0888", // Rally camera
	"046d:0889", // Rally camera
}

var logitechMotorFocusDevices = []string{
	"046d:0809", // Webcam Pro 9000
	"046d:0990", // QuickCam Pro 9000
	"046d:0991", // QuickCam Pro for Notebooks
	"046d:0994", // QuickCam Orbit/Sphere AF
}

var logitechBrioFOVDevices = []string{
	"046d:085e", // Brio
	"046d:0943", // Brio 500
	"046d:0946", // Brio 501
	"046d:0919", // Brio 505
	"046d:086b", // Brio 4K Stream Edition
	"046d:0944", // MX Brio
}

const logitechLED1ModeTooltip = "Off. The LED is never illuminated, whether or not the device is streaming video.\n" +
	"On. The LED is always illuminated, whether or not the device is streaming video.\n" +
	"Blinking. The LED blinks, whether or not the device is streaming video.\n" +
	"Auto. The LED is in control of the device. Typically this means that means that is is illuminated when streaming video and off when not streaming video."

const logitechLED1FrequencyTooltip = "The frequency value only influences the 'Blinking' mode.\n" +
	"It is expressed in units of 0.05 Hz and sets the blink frequency f.\n" +
	"The blink interval T = 1/f is defined as the time between two adjoining rising edges (or two adjoining falling edges)."

const logitechMotorFocusTooltip = "Allows the control of focus motor movements for camera models that support mechanical focus. Bits 0 to 7 allow selection of the desired lens position. There are no physical units, instead, the focus range is spread over 256 logical units with 0 representing infinity focus and 255 being macro focus."

func logitechLEDModeEntries() []MenuEntry {
	return []MenuEntry{
		{ID: "off", Name: "Off", Value: 0x00, Valid: true},
		{ID: "on", Name: "On", Value: 0x01, Valid: true},
		{ID: "blink", Name: "Blink", Value: 0x02, Valid: true},
		{ID: "auto", Name: "Auto", Value: 0x03, Valid: true},
	}
}

// logitechBinding ties one control to the unit, register and byte offset it
// lives at.
type logitechBinding struct {
	ctrl     Control
	unit     xuUnit
	selector uint8
	offset   int
}

// LogitechBackend exposes whichever Logitech extension unit groups the
// device answers for.
type LogitechBackend struct {
	bindings []logitechBinding
}

func NewLogitechBackend(dev *v4l2.Device, info *xu.DeviceInfo) *LogitechBackend {
	return newLogitechBackend(
		resolveUnit(dev, info, logitechPeripheralGUID),
		resolveUnit(dev, info, logitechUserHWGUID),
		resolveUnit(dev, info, logitechMotorGUID),
		resolveUnit(dev, info, logitechBrioGUID),
		usbID(info),
	)
}

func newLogitechBackend(peripheral, userHW, motor, brio xuUnit, usbID string) *LogitechBackend {
	b := &LogitechBackend{}

	if peripheral != nil {
		if peripheral.Probe(logitechSelectorLED1) {
			b.bind(peripheral, logitechSelectorLED1, 1, menuControl(
				"logitech_led1_mode", "LED1 Mode", logitechLED1ModeTooltip, logitechLEDModeEntries()))
			b.bind(peripheral, logitechSelectorLED1, 3, integerControl(
				"logitech_led1_frequency", "LED1 Frequency", logitechLED1FrequencyTooltip))
		}
		if peripheral.Probe(logitechSelectorPanTiltRel) {
			b.bind(peripheral, logitechSelectorPanTiltRel, 0, buttonControl(
				"logitech_pan_relative", "Pan, Relative", "Pan, Relative", []MenuEntry{
					{ID: "-8", Name: "-8", Data: []byte{0x00, 0x08, 0x00, 0x00}},
					{ID: "-1", Name: "-1", Data: []byte{0x00, 0x01, 0x00, 0x00}},
					{ID: "1", Name: "+1", Data: []byte{0xff, 0xfe, 0x00, 0x00}},
					{ID: "8", Name: "+8", Data: []byte{0xff, 0xf7, 0x00, 0x00}},
				}))
			b.bind(peripheral, logitechSelectorPanTiltRel, 0, buttonControl(
				"logitech_tilt_relative", "Tilt, Relative", "Tilt, Relative", []MenuEntry{
					{ID: "-3", Name: "-3", Data: []byte{0x00, 0x00, 0x00, 0x03}},
					{ID: "-1", Name: "-1", Data: []byte{0x00, 0x00, 0x00, 0x01}},
					{ID: "1", Name: "+1", Data: []byte{0x00, 0x00, 0xff, 0xfe}},
					{ID: "3", Name: "+3", Data: []byte{0x00, 0x00, 0xff, 0xfc}},
				}))
		}
		if peripheral.Probe(logitechSelectorPanTiltReset) {
			b.bind(peripheral, logitechSelectorPanTiltReset, 0, buttonControl(
				"logitech_pantilt_reset", "Pan/Tilt, Reset", "Pan/Tilt, Reset", []MenuEntry{
					{ID: "pan", Name: "Pan", Data: []byte{0x01}},
					{ID: "tilt", Name: "Tilt", Data: []byte{0x02}},
					{ID: "both", Name: "Both", Data: []byte{0x03}},
				}))
		}
		if peripheral.Probe(logitechSelectorPanTiltPreset) && slices.Contains(logitechPresetDevices, usbID) {
			b.bind(peripheral, logitechSelectorPanTiltPreset, 0, buttonControl(
				"logitech_pantilt_preset", "Pan/Tilt, Preset",
				"Pan/Tilt, Preset\nClick goes to the preset\nLong press saves it",
				logitechPresetEntries()))
		}
	}

	if userHW != nil {
		b.bind(userHW, logitechSelectorHWLED1, 0, menuControl(
			"logitech_led1_mode", "LED1 Mode", logitechLED1ModeTooltip, logitechLEDModeEntries()))
		b.bind(userHW, logitechSelectorHWLED1, 2, integerControl(
			"logitech_led1_frequency", "LED1 Frequency", logitechLED1FrequencyTooltip))
	}

	if motor != nil && slices.Contains(logitechMotorFocusDevices, usbID) {
		b.bind(motor, logitechSelectorMotorFocus, 0, integerControl(
			"logitech_motor_focus", "Focus (Absolute)", logitechMotorFocusTooltip))
	}

	if brio != nil && slices.Contains(logitechBrioFOVDevices, usbID) {
		b.bind(brio, logitechSelectorBrioFOV, 0, menuControl(
			"logitech_brio_fov", "FoV", "Logitech BRIO Field of View", []MenuEntry{
				{ID: "65", Name: "65°", Value: 0x02, Valid: true},
				{ID: "78", Name: "78°", Value: 0x01, Valid: true},
				{ID: "90", Name: "90°", Value: 0x00, Valid: true},
			}))
	}

	b.readState()
	return b
}

func logitechPresetEntries() []MenuEntry {
	var entries []MenuEntry
	for i := 0; i < 8; i++ {
		n := strconv.Itoa(i + 1)
		entries = append(entries, MenuEntry{
			ID: "goto_" + n, Name: n, Data: []byte{byte(0x0c + i)}, LongPress: "save_" + n,
		})
	}
	for i := 0; i < 8; i++ {
		n := strconv.Itoa(i + 1)
		entries = append(entries, MenuEntry{
			ID: "save_" + n, Name: "Save " + n, Data: []byte{byte(0x04 + i)}, Hidden: true,
		})
	}
	return entries
}

func (b *LogitechBackend) bind(unit xuUnit, selector uint8, offset int, ctrl Control) {
	b.bindings = append(b.bindings, logitechBinding{ctrl: ctrl, unit: unit, selector: selector, offset: offset})
}

// readState fills integer ranges and current values from the device.
// Buttons are write-only and have no state to read.
func (b *LogitechBackend) readState() {
	for _, bd := range b.bindings {
		switch c := bd.ctrl.(type) {
		case *IntegerControl:
			if buf, err := bd.unit.GetMin(bd.selector); err == nil {
				if v, ok := registerByte(buf, bd.offset); ok {
					c.Min = int32(v)
				}
			}
			if buf, err := bd.unit.GetMax(bd.selector); err == nil {
				if v, ok := registerByte(buf, bd.offset); ok {
					c.Max = int32(v)
				}
			}
			if buf, err := bd.unit.GetCur(bd.selector); err == nil {
				if v, ok := registerByte(buf, bd.offset); ok {
					c.setState(State{Value: int32(v), Valid: true})
				}
			}
		case *MenuControl:
			if buf, err := bd.unit.GetCur(bd.selector); err == nil {
				if v, ok := registerByte(buf, bd.offset); ok {
					if e := findEntryByValue(c.Entries, int32(v)); e != nil {
						c.setState(State{Entry: e.ID})
					}
				}
			}
		}
	}
}

func (b *LogitechBackend) Supported() bool { return len(b.bindings) != 0 }

func (b *LogitechBackend) Controls() []Control {
	var out []Control
	for _, bd := range b.bindings {
		out = append(out, bd.ctrl)
	}
	return out
}

func (b *LogitechBackend) Apply(batch Batch, warns *Warnings) {
	for _, a := range batch {
		for _, bd := range b.bindings {
			if bd.ctrl.Meta().ID == a.Name {
				b.applyOne(bd, a.Value, warns)
				break
			}
		}
	}
}

func (b *LogitechBackend) applyOne(bd logitechBinding, value string, warns *Warnings) {
	id := bd.ctrl.Meta().ID
	switch c := bd.ctrl.(type) {
	case *ButtonControl:
		e := findEntry(c.Entries, value)
		if e == nil {
			warns.addf("can't find %s in %v", value, entryIDs(c.Entries))
			return
		}
		if err := bd.unit.SetCur(bd.selector, e.Data); err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
		}
		return

	case *MenuControl:
		e := findEntry(c.Entries, value)
		if e == nil {
			warns.addf("can't find %s in %v", value, entryIDs(c.Entries))
			return
		}
		got, err := b.writeByte(bd, byte(e.Value))
		if err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
			return
		}
		// Compare in entry-id space so encoding stays invisible to callers.
		current := strconv.Itoa(int(got))
		if ge := findEntryByValue(c.Entries, int32(got)); ge != nil {
			current = ge.ID
		}
		if current != e.ID {
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
		got, err := b.writeByte(bd, byte(v))
		if err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
			return
		}
		if int32(got) != v {
			warns.addf("failed to set %s to %d, current value %d", id, v, got)
			return
		}
		c.update(func(s *State) { s.Value, s.Valid = v, true })

	default:
		warns.addf("can't set %s to %s (unsupported control type)", id, value)
	}
}

// writeByte read-modify-writes one byte of the register, then reads it back.
func (b *LogitechBackend) writeByte(bd logitechBinding, value byte) (byte, error) {
	buf, err := bd.unit.GetCur(bd.selector)
	if err != nil {
		return 0, err
	}
	if bd.offset >= len(buf) {
		return 0, errShortRegister(bd.selector, len(buf))
	}
	buf[bd.offset] = value
	if err := bd.unit.SetCur(bd.selector, buf); err != nil {
		return 0, err
	}
	buf, err = bd.unit.GetCur(bd.selector)
	if err != nil {
		return 0, err
	}
	got, ok := registerByte(buf, bd.offset)
	if !ok {
		return 0, errShortRegister(bd.selector, len(buf))
	}
	return got, nil
}
