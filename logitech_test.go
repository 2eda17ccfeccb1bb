package cameractrls

import (
	"bytes"
	"slices"
	"testing"
)

func TestLogitechNotPresent(t *testing.T) {
	b := newLogitechBackend(nil, nil, nil, nil, "")
	if b.Supported() {
		t.Error("Supported() = true, want false")
	}
	if n := len(b.Controls()); n != 0 {
		t.Errorf("len(Controls()) = %d, want 0", n)
	}
}

func TestLogitechPeripheralLED(t *testing.T) {
	fake := newFakeXU().
		set(logitechSelectorLED1, 0x00, 0x03, 0x00, 0x02, 0x00).
		setRange(logitechSelectorLED1,
			[]byte{0x00, 0x00, 0x00, 0x00, 0x00},
			[]byte{0x00, 0x03, 0x00, 0x0a, 0x00})
	b := newLogitechBackend(fake, nil, nil, nil, "")

	want := []string{"logitech_led1_mode", "logitech_led1_frequency"}
	if got := controlIDs(b); !slices.Equal(got, want) {
		t.Fatalf("control ids = %v, want %v", got, want)
	}
	if got := stateOf(t, b, "logitech_led1_mode").Entry; got != "auto" {
		t.Errorf("led1_mode entry = %q, want %q", got, "auto")
	}
	freq := findControl(b.Controls(), "logitech_led1_frequency").(*IntegerControl)
	if freq.Min != 0 || freq.Max != 10 {
		t.Errorf("frequency range = %d..%d, want 0..10", freq.Min, freq.Max)
	}
	if s := freq.State(); !s.Valid || s.Value != 2 {
		t.Errorf("frequency state = %+v, want value 2", s)
	}
}

func TestLogitechApplyLEDMode(t *testing.T) {
	fake := newFakeXU().
		set(logitechSelectorLED1, 0x00, 0x03, 0x00, 0x02, 0x00).
		setRange(logitechSelectorLED1, make([]byte, 5), []byte{0x00, 0x03, 0x00, 0x0a, 0x00})
	b := newLogitechBackend(fake, nil, nil, nil, "")

	var warns Warnings
	b.Apply(Batch{{Name: "logitech_led1_mode", Value: "blink"}}, &warns)
	if len(warns) != 0 {
		t.Fatalf("warnings = %v, want none", warns)
	}
	// Only the mode byte changes; the rest of the register is untouched.
	wantReg := []byte{0x00, 0x02, 0x00, 0x02, 0x00}
	if len(fake.writes) != 1 || !bytes.Equal(fake.writes[0].data, wantReg) {
		t.Errorf("writes = %v, want % x", fake.writes, wantReg)
	}
	if got := stateOf(t, b, "logitech_led1_mode").Entry; got != "blink" {
		t.Errorf("led1_mode entry = %q, want %q", got, "blink")
	}
}

func TestLogitechApplyMismatch(t *testing.T) {
	fake := newFakeXU().
		set(logitechSelectorLED1, 0x00, 0x03, 0x00, 0x02, 0x00).
		setRange(logitechSelectorLED1, make([]byte, 5), []byte{0x00, 0x03, 0x00, 0x0a, 0x00})
	fake.ignoreWrites = true
	b := newLogitechBackend(fake, nil, nil, nil, "")

	var warns Warnings
	b.Apply(Batch{{Name: "logitech_led1_mode", Value: "blink"}}, &warns)
	if len(warns) != 1 {
		t.Fatalf("warnings = %v, want one", warns)
	}
	want := "failed to set logitech_led1_mode to blink, current value auto"
	if warns[0] != want {
		t.Errorf("warning = %q, want %q", warns[0], want)
	}
	if got := stateOf(t, b, "logitech_led1_mode").Entry; got != "auto" {
		t.Errorf("led1_mode entry = %q, want %q", got, "auto")
	}
}

func TestLogitechPanTiltButtons(t *testing.T) {
	fake := newFakeXU().
		set(logitechSelectorPanTiltRel, 0x00, 0x00, 0x00, 0x00).
		set(logitechSelectorPanTiltReset, 0x00)
	b := newLogitechBackend(fake, nil, nil, nil, "")

	want := []string{"logitech_pan_relative", "logitech_tilt_relative", "logitech_pantilt_reset"}
	if got := controlIDs(b); !slices.Equal(got, want) {
		t.Fatalf("control ids = %v, want %v", got, want)
	}

	var warns Warnings
	b.Apply(Batch{{Name: "logitech_pan_relative", Value: "8"}}, &warns)
	b.Apply(Batch{{Name: "logitech_pantilt_reset", Value: "both"}}, &warns)
	if len(warns) != 0 {
		t.Fatalf("warnings = %v, want none", warns)
	}
	if len(fake.writes) != 2 {
		t.Fatalf("len(writes) = %d, want 2", len(fake.writes))
	}
	if !bytes.Equal(fake.writes[0].data, []byte{0xff, 0xf7, 0x00, 0x00}) {
		t.Errorf("pan write = % x, want ff f7 00 00", fake.writes[0].data)
	}
	if !bytes.Equal(fake.writes[1].data, []byte{0x03}) {
		t.Errorf("reset write = % x, want 03", fake.writes[1].data)
	}
}

func TestLogitechPresetGating(t *testing.T) {
	fake := newFakeXU().
		set(logitechSelectorPanTiltRel, 0x00, 0x00, 0x00, 0x00).
		set(logitechSelectorPanTiltPreset, 0x00)

	b := newLogitechBackend(fake, nil, nil, nil, "046d:085f")
	if findControl(b.Controls(), "logitech_pantilt_preset") == nil {
		t.Error("preset control missing on a PTZ Pro 2")
	}
	b = newLogitechBackend(fake, nil, nil, nil, "046d:0825")
	if findControl(b.Controls(), "logitech_pantilt_preset") != nil {
		t.Error("preset control present on a device without preset support")
	}
}

func TestLogitechPresetEntries(t *testing.T) {
	entries := logitechPresetEntries()
	if len(entries) != 16 {
		t.Fatalf("len(entries) = %d, want 16", len(entries))
	}
	first := entries[0]
	if first.ID != "goto_1" || first.Name != "1" || first.LongPress != "save_1" || first.Hidden {
		t.Errorf("entries[0] = %+v, want visible goto_1 named 1 with long press save_1", first)
	}
	if !bytes.Equal(first.Data, []byte{0x0c}) {
		t.Errorf("goto_1 data = % x, want 0c", first.Data)
	}
	save := entries[8]
	if save.ID != "save_1" || !save.Hidden || !bytes.Equal(save.Data, []byte{0x04}) {
		t.Errorf("entries[8] = %+v, want hidden save_1 with data 04", save)
	}
	last := entries[15]
	if save8 := []byte{0x0b}; last.ID != "save_8" || !bytes.Equal(last.Data, save8) {
		t.Errorf("entries[15] = %+v, want save_8 with data 0b", last)
	}
}

func TestLogitechMotorFocus(t *testing.T) {
	fake := newFakeXU().
		set(logitechSelectorMotorFocus, 0x55, 0x00, 0x00, 0x00, 0x00, 0x00).
		setRange(logitechSelectorMotorFocus, make([]byte, 6), []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x00})
	b := newLogitechBackend(nil, nil, fake, nil, "046d:0809")

	focus := findControl(b.Controls(), "logitech_motor_focus")
	if focus == nil {
		t.Fatal("motor focus control missing")
	}
	if s := focus.State(); !s.Valid || s.Value != 0x55 {
		t.Errorf("focus state = %+v, want value 0x55", s)
	}

	var warns Warnings
	b.Apply(Batch{{Name: "logitech_motor_focus", Value: "96"}}, &warns)
	if len(warns) != 0 {
		t.Fatalf("warnings = %v, want none", warns)
	}
	wantReg := []byte{0x60, 0x00, 0x00, 0x00, 0x00, 0x00}
	if len(fake.writes) != 1 || !bytes.Equal(fake.writes[0].data, wantReg) {
		t.Errorf("writes = %v, want % x", fake.writes, wantReg)
	}
	if s := focus.State(); s.Value != 96 {
		t.Errorf("focus value = %d, want 96", s.Value)
	}

	// The same unit on an unlisted device exposes nothing.
	b = newLogitechBackend(nil, nil, fake, nil, "dead:beef")
	if findControl(b.Controls(), "logitech_motor_focus") != nil {
		t.Error("motor focus control present on an unlisted device")
	}
}

func TestLogitechBrioFOV(t *testing.T) {
	fake := newFakeXU().set(logitechSelectorBrioFOV, 0x02)
	b := newLogitechBackend(nil, nil, nil, fake, "046d:085e")

	if got := stateOf(t, b, "logitech_brio_fov").Entry; got != "65" {
		t.Errorf("fov entry = %q, want %q", got, "65")
	}

	var warns Warnings
	b.Apply(Batch{{Name: "logitech_brio_fov", Value: "90"}}, &warns)
	if len(warns) != 0 {
		t.Fatalf("warnings = %v, want none", warns)
	}
	if got := stateOf(t, b, "logitech_brio_fov").Entry; got != "90" {
		t.Errorf("fov entry = %q, want %q", got, "90")
	}
}

func TestLogitechHWLEDFirstBindingWins(t *testing.T) {
	// When both LED units answer, both register a logitech_led1_mode
	// binding and writes go to the first one.
	peripheral := newFakeXU().
		set(logitechSelectorLED1, 0x00, 0x01, 0x00, 0x02, 0x00).
		setRange(logitechSelectorLED1, make([]byte, 5), []byte{0x00, 0x03, 0x00, 0x0a, 0x00})
	userHW := newFakeXU().
		set(logitechSelectorHWLED1, 0x01, 0x00, 0x02).
		setRange(logitechSelectorHWLED1, make([]byte, 3), []byte{0x03, 0x00, 0x0a})
	b := newLogitechBackend(peripheral, userHW, nil, nil, "")

	ids := controlIDs(b)
	if got := len(ids); got != 4 {
		t.Fatalf("control ids = %v, want 4 entries", ids)
	}

	var warns Warnings
	b.Apply(Batch{{Name: "logitech_led1_mode", Value: "off"}}, &warns)
	if len(peripheral.writes) != 1 {
		t.Errorf("peripheral writes = %v, want one", peripheral.writes)
	}
	if len(userHW.writes) != 0 {
		t.Errorf("user HW writes = %v, want none", userHW.writes)
	}
}
