package cameractrls

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
)

// Descriptions lifted from the V4L2 documentation of struct v4l2_capability.
const (
	cardTooltip     = "Name of the device, a NUL-terminated UTF-8 string. For example: “Yoyodyne TV/FM”. One driver may support different brands or models of video hardware. This information is intended for users, for example in a menu of available devices. Since multiple TV cards of the same brand may be installed which are supported by the same driver, this name should be combined with the character device file name (e. g. /dev/video2) or the bus_info string to avoid ambiguities."
	driverTooltip   = "Name of the driver, a unique NUL-terminated ASCII string. For example: “bttv”. Driver specific applications can use this information to verify the driver identity. It is also useful to work around known bugs, or to identify drivers in error reports."
	pathTooltip     = "Location of the character device in the system."
	realPathTooltip = "The real location of the character device in the system."
)

// FormatBackend exposes the capture format, resolution and frame rate as
// menu controls, plus read-only device identity. The three menus carry the
// reopen flag: the device rejects format changes while another handle
// streams, so the consumer owns the reopen, not this backend.
type FormatBackend struct {
	dev   *v4l2.Device
	ctrls []Control

	pxf *MenuControl
	res *MenuControl
	fps *MenuControl
}

func NewFormatBackend(dev *v4l2.Device, warns *Warnings) *FormatBackend {
	b := &FormatBackend{dev: dev}

	f, err := dev.GetFormat()
	if err != nil {
		warns.addf("can't get fmt (%v)", err)
		return b
	}
	pixelformat := f.Pix.PixelFormat.String()
	resolution := resolutionString(f.Pix.Width, f.Pix.Height)
	fps, err := b.readFPS()
	if err != nil {
		warns.addf("can't get fps (%v)", err)
	}

	var card, driver string
	if cap, err := dev.QueryCap(); err != nil {
		warns.addf("can't get capability (%v)", err)
	} else {
		card, driver = cap.CardName(), cap.DriverName()
	}
	path := dev.Path()
	realPath := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		realPath = resolved
	}

	b.pxf = formatMenu("pixelformat", "Pixel format", "Output pixel format", pixelformat, b.formats())
	b.ctrls = []Control{
		b.pxf,
		infoControl("card", "Card", card, cardTooltip),
		infoControl("driver", "Driver", driver, driverTooltip),
		infoControl("path", "Path", path, pathTooltip),
		infoControl("real_path", "Real Path", realPath, realPathTooltip),
	}
	if resolutions := b.resolutions(f.Pix.PixelFormat); len(resolutions) > 0 {
		b.res = formatMenu("resolution", "Resolution", "Resolution in pixels", resolution, resolutions)
		b.ctrls = append(b.ctrls, b.res)
	}
	if framerates := b.framerates(f.Pix.PixelFormat, f.Pix.Width, f.Pix.Height); len(framerates) > 0 {
		b.fps = formatMenu("fps", "FPS", "Frame per second", fps, framerates)
		b.ctrls = append(b.ctrls, b.fps)
	}
	return b
}

func formatMenu(id, name, tooltip, current string, options []string) *MenuControl {
	c := &MenuControl{}
	for _, o := range options {
		c.Entries = append(c.Entries, MenuEntry{ID: o, Name: o})
	}
	c.meta = ControlMeta{ID: id, Name: name, Reopen: true, Tooltip: tooltip}
	c.setState(State{Entry: current})
	return c
}

func infoControl(id, name, text, tooltip string) *InfoControl {
	c := &InfoControl{}
	c.meta = ControlMeta{ID: id, Name: name, Tooltip: tooltip}
	c.setState(State{Text: text})
	return c
}

func (b *FormatBackend) Supported() bool { return true }

func (b *FormatBackend) Controls() []Control { return b.ctrls }

func (b *FormatBackend) Apply(batch Batch, warns *Warnings) {
	for _, a := range batch {
		ctrl := findControl(b.ctrls, a.Name)
		if ctrl == nil {
			continue
		}
		mc, ok := ctrl.(*MenuControl)
		if !ok {
			warns.addf("info type %s couldn't be set", a.Name)
			continue
		}
		if findEntry(mc.Entries, a.Value) == nil {
			warns.addf("can't find %s in %v", a.Value, entryIDs(mc.Entries))
			continue
		}
		switch a.Name {
		case "pixelformat":
			b.setPixelFormat(mc, a.Value, warns)
		case "resolution":
			b.setResolution(mc, a.Value, warns)
		case "fps":
			b.setFPS(mc, a.Value, warns)
		}
	}
}

func (b *FormatBackend) setPixelFormat(ctrl *MenuControl, value string, warns *Warnings) {
	f, err := b.dev.GetFormat()
	if err != nil {
		warns.addf("can't get fmt (%v)", err)
		return
	}
	if f.Pix.PixelFormat.String() == value {
		return
	}
	pxf, err := v4l2.ParseFourCC(value)
	if err != nil {
		warns.addf("can't set pixelformat to %s (%v)", value, err)
		return
	}
	f.Pix.PixelFormat = pxf
	if err := b.dev.SetFormat(f); err != nil {
		warns.addf("can't set fmt (%v)", err)
		return
	}
	if got := f.Pix.PixelFormat.String(); got != value {
		warns.addf("can't set pixelformat to %s using %s", value, got)
		return
	}
	ctrl.update(func(s *State) { s.Entry = value })
}

func (b *FormatBackend) setResolution(ctrl *MenuControl, value string, warns *Warnings) {
	f, err := b.dev.GetFormat()
	if err != nil {
		warns.addf("can't get fmt (%v)", err)
		return
	}
	if resolutionString(f.Pix.Width, f.Pix.Height) == value {
		return
	}
	w, h, err := parseResolution(value)
	if err != nil {
		warns.addf("can't set resolution to %s (%v)", value, err)
		return
	}
	f.Pix.Width, f.Pix.Height = w, h
	if err := b.dev.SetFormat(f); err != nil {
		warns.addf("can't set fmt (%v)", err)
		return
	}
	if got := resolutionString(f.Pix.Width, f.Pix.Height); got != value {
		warns.addf("can't set resolution to %s using %s", value, got)
		return
	}
	ctrl.update(func(s *State) { s.Entry = value })
}

func (b *FormatBackend) setFPS(ctrl *MenuControl, value string, warns *Warnings) {
	if cur, _ := b.readFPS(); cur == value {
		return
	}
	want, err := strconv.ParseFloat(value, 64)
	if err != nil {
		warns.addf("can't set fps to %s (%v)", value, err)
		return
	}
	p, err := b.dev.GetParm()
	if err != nil {
		warns.addf("can't get parm (%v)", err)
		return
	}
	p.Capture.TimePerFrame = encodeFPS(want)
	if err := b.dev.SetParm(p); err != nil {
		warns.addf("can't set fps (%v)", err)
		return
	}
	tf := p.Capture.TimePerFrame
	if tf.Numerator == 0 || tf.Denominator == 0 {
		warns.addf("VIDIOC_S_PARM: invalid frame rate %s", value)
		return
	}
	if want != tf.FPS() {
		warns.addf("can't set fps to %s using %v", value, tf.FPS())
		return
	}
	ctrl.update(func(s *State) { s.Entry = value })
}

// refresh re-reads the live format and folds changes made through other
// device handles into the cached menus. It returns the controls whose value
// moved, in pixelformat, resolution, fps order. A failed read skips the
// field rather than clearing the cache.
func (b *FormatBackend) refresh() []Control {
	var updates []Control
	if f, err := b.dev.GetFormat(); err == nil {
		updates = refreshMenu(b.pxf, f.Pix.PixelFormat.String(), updates)
		updates = refreshMenu(b.res, resolutionString(f.Pix.Width, f.Pix.Height), updates)
	}
	if fps, err := b.readFPS(); err == nil {
		updates = refreshMenu(b.fps, fps, updates)
	}
	return updates
}

func refreshMenu(ctrl *MenuControl, value string, updates []Control) []Control {
	if ctrl == nil || ctrl.State().Entry == value {
		return updates
	}
	ctrl.update(func(s *State) { s.Entry = value })
	return append(updates, ctrl)
}

// encodeFPS builds a time-per-frame fraction with a fixed numerator of 10,
// keeping one decimal of precision. The multiplication truncates: 29.97
// encodes as 299/10, which the driver then reports back as 29.9.
func encodeFPS(fps float64) v4l2.Fract {
	return v4l2.Fract{Numerator: 10, Denominator: uint32(fps * 10)}
}

// readFPS returns the current frame rate as its one-decimal display string.
func (b *FormatBackend) readFPS() (string, error) {
	p, err := b.dev.GetParm()
	if err != nil {
		return "", err
	}
	tf := p.Capture.TimePerFrame
	if tf.Numerator == 0 || tf.Denominator == 0 {
		return "", fmt.Errorf("invalid fps (%d / %d)", tf.Denominator, tf.Numerator)
	}
	return tf.FPSString(), nil
}

func (b *FormatBackend) formats() []string {
	var out []string
	for i := uint32(0); ; i++ {
		f, err := b.dev.EnumFormat(i)
		if err != nil {
			break
		}
		out = append(out, f.PixelFormat.String())
	}
	return out
}

// resolutions lists the discrete frame sizes for a pixel format, largest
// first. A stepwise or continuous answer ends the enumeration; those devices
// get no resolution menu.
func (b *FormatBackend) resolutions(pxf v4l2.FourCC) []string {
	var sizes []v4l2.FrameSizeDiscrete
	for i := uint32(0); ; i++ {
		f, err := b.dev.EnumFrameSize(pxf, i)
		if err != nil || f.Type != v4l2.FrameSizeTypeDiscrete {
			break
		}
		sizes = append(sizes, f.Discrete)
	}
	sortResolutions(sizes)
	var out []string
	for _, s := range sizes {
		out = append(out, resolutionString(s.Width, s.Height))
	}
	return out
}

func sortResolutions(sizes []v4l2.FrameSizeDiscrete) {
	sort.Slice(sizes, func(i, j int) bool {
		if sizes[i].Width != sizes[j].Width {
			return sizes[i].Width > sizes[j].Width
		}
		return sizes[i].Height > sizes[j].Height
	})
}

func (b *FormatBackend) framerates(pxf v4l2.FourCC, width, height uint32) []string {
	var out []string
	for i := uint32(0); ; i++ {
		f, err := b.dev.EnumFrameInterval(pxf, width, height, i)
		if err != nil || f.Type != v4l2.FrameIntervalTypeDiscrete {
			break
		}
		out = append(out, f.Discrete.FPSString())
	}
	return out
}

func resolutionString(w, h uint32) string {
	return fmt.Sprintf("%dx%d", w, h)
}

func parseResolution(s string) (w, h uint32, err error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("bad resolution %q", s)
	}
	pw, err := strconv.ParseUint(ws, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad resolution %q", s)
	}
	ph, err := strconv.ParseUint(hs, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad resolution %q", s)
	}
	return uint32(pw), uint32(ph), nil
}
