package cameractrls

import (
	"slices"

	"github.com/kevmo314/cameractrls/pkg/preset"
	"github.com/kevmo314/cameractrls/pkg/v4l2"
	"github.com/kevmo314/cameractrls/pkg/xu"
)

// Config selects the camera and where its presets live.
type Config struct {
	// Device is the video node path. Any alias under /dev works.
	Device string
	// PresetDir overrides the per-user preset directory.
	PresetDir string
}

// Camera aggregates every control backend of one device behind two
// operations: list the controls, apply a batch of assignments.
type Camera struct {
	dev      *v4l2.Device
	v4l      *V4L2Backend
	format   *FormatBackend
	backends []Backend
}

// Open opens the device node and discovers its controls. Discovery
// problems that leave the registry usable are appended to warns; only a
// node that cannot be opened is fatal.
func Open(cfg Config, warns *Warnings) (*Camera, error) {
	dev, err := v4l2.Open(cfg.Device)
	if err != nil {
		return nil, err
	}
	c := &Camera{dev: dev}

	// Not every video node is USB-backed. The vendor backends treat a
	// missing USB identity as "not this camera".
	info, _ := xu.ResolveDevice(cfg.Device)

	c.v4l = NewV4L2Backend(dev, warns)
	c.format = NewFormatBackend(dev, warns)
	c.backends = []Backend{
		c.v4l,
		c.format,
		NewKiyoProBackend(dev, info),
		NewLogitechBackend(dev, info),
		NewDellUltraSharpBackend(dev, info),
		NewAnkerWorkBackend(dev, info),
		NewColorPresetBackend(c.v4l.Controls(), c.Apply),
		NewConfigPresetBackend(cfg.Device, preset.NewStore(cfg.PresetDir), c.Controls, c.Apply),
	}
	return c, nil
}

// Close releases the device node.
func (c *Camera) Close() error { return c.dev.Close() }

// Device returns the opened node path.
func (c *Camera) Device() string { return c.dev.Path() }

// Controls returns every control of every backend, in backend order.
func (c *Camera) Controls() []Control {
	var out []Control
	for _, b := range c.backends {
		out = append(out, b.Controls()...)
	}
	return out
}

// Apply broadcasts the batch to every backend in order. Backends ignore
// assignments they do not own; names no backend owns are reported once,
// after the whole batch ran.
func (c *Camera) Apply(batch Batch, warns *Warnings) {
	for _, b := range c.backends {
		b.Apply(batch, warns)
	}
	known := c.Controls()
	var unknown []string
	for _, a := range batch {
		if findControl(known, a.Name) == nil && !slices.Contains(unknown, a.Name) {
			unknown = append(unknown, a.Name)
		}
	}
	if len(unknown) > 0 {
		warns.addf("can't find %v controls", unknown)
	}
}

// HasPTZ reports whether the camera has motorized pan, tilt or zoom.
func (c *Camera) HasPTZ() bool {
	kernel := c.v4l.Controls()
	for _, id := range []uint32{
		v4l2.CIDZoomAbsolute,
		v4l2.CIDPanAbsolute,
		v4l2.CIDTiltAbsolute,
		v4l2.CIDPanSpeed,
		v4l2.CIDTiltSpeed,
	} {
		if findControlByKernelID(kernel, id) != nil {
			return true
		}
	}
	return false
}
