package cameractrls

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
)

// ptzSweepInterval is the end to end travel time a held step key should
// take across an axis. The per-step repeat interval is derived from it and
// the axis range, so coarse and fine axes move at the same apparent speed.
const ptzSweepInterval = 2 * time.Second

// PTZController drives pan, tilt and zoom from continuous input such as
// held keys, gamepad axes or a space mouse. Absolute axes are rate limited
// per axis; speed axes and the vendor reset and preset buttons pass
// straight through.
type PTZController struct {
	apply func(Batch, *Warnings)

	zoom *ptzAxis
	pan  *ptzAxis
	tilt *ptzAxis

	panSpeed  *IntegerControl
	tiltSpeed *IntegerControl
	reset     Control
	preset    Control
}

// PTZ builds a controller over the camera's motion controls. Axes the
// device lacks stay nil and their methods turn into no-ops.
func (c *Camera) PTZ() *PTZController {
	kernel := c.v4l.Controls()
	all := c.Controls()
	return &PTZController{
		apply:     c.Apply,
		zoom:      newPTZAxis(integerByKernelID(kernel, v4l2.CIDZoomAbsolute)),
		pan:       newPTZAxis(integerByKernelID(kernel, v4l2.CIDPanAbsolute)),
		tilt:      newPTZAxis(integerByKernelID(kernel, v4l2.CIDTiltAbsolute)),
		panSpeed:  integerByKernelID(kernel, v4l2.CIDPanSpeed),
		tiltSpeed: integerByKernelID(kernel, v4l2.CIDTiltSpeed),
		reset:     findControl(all, "logitech_pantilt_reset"),
		preset:    findControl(all, "logitech_pantilt_preset"),
	}
}

func integerByKernelID(ctrls []Control, id uint32) *IntegerControl {
	c, _ := findControlByKernelID(ctrls, id).(*IntegerControl)
	return c
}

func (p *PTZController) HasZoom() bool { return p.zoom != nil }

func (p *PTZController) HasPanTiltAbsolute() bool { return p.pan != nil && p.tilt != nil }

func (p *PTZController) HasPanTiltSpeed() bool {
	return p.panSpeed != nil && p.tiltSpeed != nil
}

// ZoomPercent moves the zoom to a fraction of its range, 0 at the near end
// and 1 at the far end.
func (p *PTZController) ZoomPercent(pct float64, warns *Warnings) {
	p.zoom.percent(pct, p.apply, warns)
}

func (p *PTZController) PanPercent(pct float64, warns *Warnings) {
	p.pan.percent(pct, p.apply, warns)
}

func (p *PTZController) TiltPercent(pct float64, warns *Warnings) {
	p.tilt.percent(pct, p.apply, warns)
}

// ZoomStep nudges the zoom by n steps. It reports whether the request ran
// past the end of the range, so a caller can stop auto-repeating.
func (p *PTZController) ZoomStep(n int32, warns *Warnings) bool {
	return p.zoom.step(n, p.apply, warns)
}

// ZoomStepBig nudges the zoom by n coarse steps.
func (p *PTZController) ZoomStepBig(n int32, warns *Warnings) bool {
	if p.zoom == nil {
		return false
	}
	return p.zoom.step(n*p.zoom.ctrl.BigStep, p.apply, warns)
}

func (p *PTZController) PanStep(n int32, warns *Warnings) bool {
	return p.pan.step(n, p.apply, warns)
}

func (p *PTZController) TiltStep(n int32, warns *Warnings) bool {
	return p.tilt.step(n, p.apply, warns)
}

// PanSpeed sets the continuous pan rate to n speed steps, negative for the
// opposite direction and 0 to stop.
func (p *PTZController) PanSpeed(n int32, warns *Warnings) {
	applySpeed(p.panSpeed, n, p.apply, warns)
}

func (p *PTZController) TiltSpeed(n int32, warns *Warnings) {
	applySpeed(p.tiltSpeed, n, p.apply, warns)
}

// Reset returns every absolute axis to its default and fires the vendor
// pan and tilt reset where the device has one.
func (p *PTZController) Reset(warns *Warnings) {
	for _, a := range []*ptzAxis{p.zoom, p.pan, p.tilt} {
		if a != nil {
			p.apply(Batch{{Name: a.ctrl.meta.ID, Value: strconv.Itoa(int(a.ctrl.Default))}}, warns)
		}
	}
	if p.reset != nil {
		p.apply(Batch{{Name: p.reset.Meta().ID, Value: "both"}}, warns)
	}
}

// GoToPreset recalls a stored camera position by slot number.
func (p *PTZController) GoToPreset(n int, warns *Warnings) {
	if p.preset != nil {
		p.apply(Batch{{Name: p.preset.Meta().ID, Value: fmt.Sprintf("goto_%d", n)}}, warns)
	}
}

// ptzAxis wraps one absolute motion control with the repeat bookkeeping
// that keeps held keys from flooding the device.
type ptzAxis struct {
	ctrl    *IntegerControl
	repeat  time.Duration
	lastSet time.Time
}

func newPTZAxis(c *IntegerControl) *ptzAxis {
	if c == nil {
		return nil
	}
	a := &ptzAxis{ctrl: c}
	if steps := (c.Max - c.Min) / stepOr1(c.Step); steps > 0 {
		a.repeat = ptzSweepInterval / time.Duration(steps)
	}
	return a
}

func (a *ptzAxis) percent(pct float64, apply func(Batch, *Warnings), warns *Warnings) {
	if a == nil {
		return
	}
	c := a.ctrl
	size := (c.Max - c.Min) / stepOr1(c.Step)
	v := c.Min + int32(math.Round(pct*float64(size)))*stepOr1(c.Step)
	s := c.State()
	if !s.Valid || v != s.Value {
		apply(Batch{{Name: c.meta.ID, Value: strconv.Itoa(int(v))}}, warns)
	}
}

// step moves the axis by n steps if the per-axis repeat interval has
// passed. The return reports a request clamped at the range end.
func (a *ptzAxis) step(n int32, apply func(Batch, *Warnings), warns *Warnings) bool {
	if a == nil {
		return false
	}
	now := time.Now()
	if now.Sub(a.lastSet) <= a.repeat {
		return false
	}
	c := a.ctrl
	cur := c.State().Value
	want := cur + stepOr1(c.Step)*n
	v := min(max(want, c.Min), c.Max)
	if v != cur {
		apply(Batch{{Name: c.meta.ID, Value: strconv.Itoa(int(v))}}, warns)
		a.lastSet = now
	}
	return want != v
}

func applySpeed(c *IntegerControl, n int32, apply func(Batch, *Warnings), warns *Warnings) {
	if c == nil {
		return
	}
	v := min(max(stepOr1(c.Step)*n, c.Min), c.Max)
	if v != c.State().Value {
		apply(Batch{{Name: c.meta.ID, Value: strconv.Itoa(int(v))}}, warns)
	}
}

func stepOr1(s int32) int32 {
	if s == 0 {
		return 1
	}
	return s
}
