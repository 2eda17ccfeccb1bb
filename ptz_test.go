package cameractrls

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func ptzControl(id string, kid uint32, min, max, step, def, value int32) *IntegerControl {
	c := &IntegerControl{Min: min, Max: max, Step: step, Default: def}
	if step != 0 {
		c.BigStep = step * 20
	}
	c.meta = ControlMeta{ID: id, Name: id, KernelID: kid}
	c.setState(State{Value: value, Valid: true})
	return c
}

// applyRecorder captures the batches a controller emits, one per call.
type applyRecorder struct {
	batches []Batch
}

func (r *applyRecorder) apply(b Batch, warns *Warnings) {
	r.batches = append(r.batches, b)
}

func (r *applyRecorder) strings() []string {
	var out []string
	for _, b := range r.batches {
		var items []string
		for _, a := range b {
			items = append(items, a.Name+"="+a.Value)
		}
		out = append(out, strings.Join(items, ","))
	}
	return out
}

func TestPTZAxisRepeat(t *testing.T) {
	if a := newPTZAxis(nil); a != nil {
		t.Fatalf("axis without a control = %v, want nil", a)
	}
	// 20 steps across the range share the 2s sweep, 100ms each.
	a := newPTZAxis(ptzControl("pan_absolute", 0, -36000, 36000, 3600, 0, 0))
	if a.repeat != 100*time.Millisecond {
		t.Errorf("repeat = %v, want 100ms", a.repeat)
	}
}

func TestPTZPercent(t *testing.T) {
	var rec applyRecorder
	p := &PTZController{
		apply: rec.apply,
		zoom:  newPTZAxis(ptzControl("zoom_absolute", 0, 100, 500, 1, 100, 100)),
	}

	var warns Warnings
	p.ZoomPercent(0, &warns)
	if len(rec.batches) != 0 {
		t.Fatalf("zoom to the current position emitted %v", rec.strings())
	}
	p.ZoomPercent(0.5, &warns)
	if want := []string{"zoom_absolute=300"}; !reflect.DeepEqual(rec.strings(), want) {
		t.Errorf("batches = %v, want %v", rec.strings(), want)
	}
	// Axes the device lacks are no-ops.
	p.PanPercent(0.5, &warns)
	p.TiltPercent(0.5, &warns)
	if len(rec.batches) != 1 || len(warns) != 0 {
		t.Errorf("missing axes emitted batches %v, warnings %v", rec.strings(), warns)
	}
}

func TestPTZStep(t *testing.T) {
	var rec applyRecorder
	p := &PTZController{
		apply: rec.apply,
		pan:   newPTZAxis(ptzControl("pan_absolute", 0, -100, 100, 10, 0, 0)),
	}

	var warns Warnings
	if clamped := p.PanStep(1, &warns); clamped {
		t.Errorf("in-range step reported the range end")
	}
	if want := []string{"pan_absolute=10"}; !reflect.DeepEqual(rec.strings(), want) {
		t.Fatalf("batches = %v, want %v", rec.strings(), want)
	}

	// The repeat interval gates a held key to one write per interval.
	p.pan.repeat = time.Hour
	if clamped := p.PanStep(1, &warns); clamped || len(rec.batches) != 1 {
		t.Errorf("step inside the repeat interval acted: clamped=%v batches=%v", clamped, rec.strings())
	}

	p.pan.lastSet = time.Time{}
	if clamped := p.PanStep(100, &warns); !clamped {
		t.Errorf("step past the range end not reported")
	}
	if want := []string{"pan_absolute=10", "pan_absolute=100"}; !reflect.DeepEqual(rec.strings(), want) {
		t.Errorf("batches = %v, want %v", rec.strings(), want)
	}
}

func TestPTZStepAtRangeEnd(t *testing.T) {
	var rec applyRecorder
	p := &PTZController{
		apply: rec.apply,
		tilt:  newPTZAxis(ptzControl("tilt_absolute", 0, -100, 100, 10, 0, 100)),
	}

	var warns Warnings
	if clamped := p.TiltStep(1, &warns); !clamped {
		t.Errorf("step at the range end not reported")
	}
	if len(rec.batches) != 0 {
		t.Errorf("step at the range end still wrote %v", rec.strings())
	}
}

func TestPTZStepBig(t *testing.T) {
	var rec applyRecorder
	p := &PTZController{
		apply: rec.apply,
		zoom:  newPTZAxis(ptzControl("zoom_absolute", 0, 0, 200, 1, 0, 0)),
	}

	var warns Warnings
	p.ZoomStepBig(1, &warns)
	if want := []string{"zoom_absolute=20"}; !reflect.DeepEqual(rec.strings(), want) {
		t.Errorf("batches = %v, want %v", rec.strings(), want)
	}
	p.zoom.repeat = time.Hour
	if p.ZoomStepBig(-1, &warns); len(rec.batches) != 1 {
		t.Errorf("big step inside the repeat interval acted: %v", rec.strings())
	}
}

func TestPTZSpeed(t *testing.T) {
	var rec applyRecorder
	p := &PTZController{
		apply:    rec.apply,
		panSpeed: ptzControl("pan_speed", 0, -1, 1, 1, 0, 0),
	}

	var warns Warnings
	p.PanSpeed(5, &warns)
	if want := []string{"pan_speed=1"}; !reflect.DeepEqual(rec.strings(), want) {
		t.Errorf("batches = %v, want %v", rec.strings(), want)
	}
	// Stopping an already stopped axis writes nothing.
	p.PanSpeed(0, &warns)
	if len(rec.batches) != 1 {
		t.Errorf("batches = %v", rec.strings())
	}
	p.TiltSpeed(1, &warns)
	if len(rec.batches) != 1 {
		t.Errorf("missing speed axis acted: %v", rec.strings())
	}
}

func TestPTZReset(t *testing.T) {
	var rec applyRecorder
	p := &PTZController{
		apply: rec.apply,
		zoom:  newPTZAxis(ptzControl("zoom_absolute", 0, 100, 500, 1, 150, 300)),
		pan:   newPTZAxis(ptzControl("pan_absolute", 0, -100, 100, 10, 0, 20)),
		reset: buttonControl("logitech_pantilt_reset", "Pan/Tilt Reset", "", nil),
	}

	var warns Warnings
	p.Reset(&warns)
	want := []string{
		"zoom_absolute=150",
		"pan_absolute=0",
		"logitech_pantilt_reset=both",
	}
	if !reflect.DeepEqual(rec.strings(), want) {
		t.Errorf("batches = %v, want %v", rec.strings(), want)
	}
}

func TestPTZPreset(t *testing.T) {
	var rec applyRecorder
	p := &PTZController{apply: rec.apply}

	var warns Warnings
	p.GoToPreset(3, &warns)
	if len(rec.batches) != 0 {
		t.Fatalf("preset without the vendor control acted: %v", rec.strings())
	}

	p.preset = buttonControl("logitech_pantilt_preset", "Preset", "", nil)
	p.GoToPreset(3, &warns)
	if want := []string{"logitech_pantilt_preset=goto_3"}; !reflect.DeepEqual(rec.strings(), want) {
		t.Errorf("batches = %v, want %v", rec.strings(), want)
	}
}

func TestIntegerByKernelID(t *testing.T) {
	zoom := ptzControl("zoom_absolute", 0x009a090d, 100, 500, 1, 100, 100)
	menu := menuControl("power_line_frequency", "Power Line", "", nil)
	menu.meta.KernelID = 0x00980918
	ctrls := []Control{menu, zoom}

	if got := integerByKernelID(ctrls, 0x009a090d); got != zoom {
		t.Errorf("integerByKernelID = %v, want the zoom control", got)
	}
	if got := integerByKernelID(ctrls, 0x00980918); got != nil {
		t.Errorf("non-integer control resolved to %v", got)
	}
	if got := integerByKernelID(ctrls, 0xdead); got != nil {
		t.Errorf("unknown id resolved to %v", got)
	}
}
