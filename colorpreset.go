package cameractrls

import "github.com/kevmo314/cameractrls/pkg/v4l2"

// A look is declared against kernel control ids and resolved to textual
// ids at construction. Looks that reference a control the camera does not
// have are dropped whole, so applying one never half-works.
type cidValue struct {
	cid   uint32
	value string
}

// colorPresetDefaults resets everything a look may touch. Keys the look
// itself sets override these, in this order, so white balance is switched
// to manual before a temperature lands.
var colorPresetDefaults = []cidValue{
	{v4l2.CIDBrightness, "default"},
	{v4l2.CIDSaturation, "default"},
	{v4l2.CIDContrast, "default"},
	{v4l2.CIDSharpness, "default"},
	{v4l2.CIDAutoWhiteBalance, "default"},
}

var colorPresetDefs = []struct {
	id, name string
	values   []cidValue
}{
	{"default", "Default", nil},
	{"blossom", "Blossom", []cidValue{
		{v4l2.CIDAutoWhiteBalance, "0"},
		{v4l2.CIDWhiteBalanceTemperature, "7500"},
		{v4l2.CIDSaturation, "40%"},
		{v4l2.CIDSharpness, "30%"},
	}},
	{"bright", "Bright", []cidValue{
		{v4l2.CIDBrightness, "71%"},
		{v4l2.CIDContrast, "59%"},
	}},
	{"film", "Film", []cidValue{
		{v4l2.CIDContrast, "30%"},
		{v4l2.CIDSaturation, "70%"},
		{v4l2.CIDSharpness, "100%"},
	}},
	{"forest", "Forest", []cidValue{
		{v4l2.CIDAutoWhiteBalance, "0"},
		{v4l2.CIDWhiteBalanceTemperature, "2800"},
		{v4l2.CIDBrightness, "55%"},
		{v4l2.CIDSaturation, "20%"},
	}},
	{"glaze", "Glaze", []cidValue{
		{v4l2.CIDAutoWhiteBalance, "0"},
		{v4l2.CIDWhiteBalanceTemperature, "2800"},
		{v4l2.CIDContrast, "60%"},
		{v4l2.CIDSaturation, "55%"},
		{v4l2.CIDSharpness, "60%"},
	}},
	{"gray", "Gray", []cidValue{
		{v4l2.CIDSaturation, "0%"},
	}},
	{"vibrant", "Vibrant", []cidValue{
		{v4l2.CIDBrightness, "47.5%"},
		{v4l2.CIDContrast, "57.25%"},
		{v4l2.CIDSaturation, "53.33%"},
	}},
	{"vivid", "Vivid", []cidValue{
		{v4l2.CIDAutoWhiteBalance, "0"},
		{v4l2.CIDWhiteBalanceTemperature, "6400"},
		{v4l2.CIDBrightness, "65%"},
		{v4l2.CIDContrast, "75%"},
		{v4l2.CIDSaturation, "25%"},
		{v4l2.CIDSharpness, "60%"},
	}},
}

type colorPreset struct {
	id, name string
	resolved Batch
}

// ColorPresetBackend applies predefined looks as control batches routed
// back through the whole registry.
type ColorPresetBackend struct {
	apply    func(Batch, *Warnings)
	defaults Batch
	tracked  []Control
	presets  []colorPreset
	ctrls    []Control
}

// NewColorPresetBackend resolves the looks against the kernel controls.
// The color_preset button only appears when at least one look besides
// default survived resolution.
func NewColorPresetBackend(kernel []Control, apply func(Batch, *Warnings)) *ColorPresetBackend {
	b := &ColorPresetBackend{apply: apply}
	for _, dv := range colorPresetDefaults {
		if c := findControlByKernelID(kernel, dv.cid); c != nil {
			b.tracked = append(b.tracked, c)
			b.defaults = append(b.defaults, Assignment{Name: c.Meta().ID, Value: dv.value})
		}
	}
	for _, def := range colorPresetDefs {
		p := colorPreset{id: def.id, name: def.name}
		for _, cv := range def.values {
			if c := findControlByKernelID(kernel, cv.cid); c != nil {
				p.resolved = append(p.resolved, Assignment{Name: c.Meta().ID, Value: cv.value})
			}
		}
		if len(p.resolved) != len(def.values) {
			continue
		}
		b.presets = append(b.presets, p)
	}
	if len(b.presets) > 1 {
		entries := make([]MenuEntry, 0, len(b.presets))
		for _, p := range b.presets {
			entries = append(entries, MenuEntry{ID: p.id, Name: p.name})
		}
		c := buttonControl("color_preset", "Preset", "Color preset", entries)
		c.Default = "default"
		b.ctrls = []Control{c}
	}
	return b
}

func (b *ColorPresetBackend) Supported() bool { return len(b.ctrls) != 0 }

func (b *ColorPresetBackend) Controls() []Control { return b.ctrls }

// AtDefaults reports whether every control the looks touch sits at its
// default. Controls that cannot currently be changed don't count.
func (b *ColorPresetBackend) AtDefaults() bool {
	for _, c := range b.tracked {
		s := c.State()
		if s.Inactive || s.ReadOnly || !s.Valid {
			continue
		}
		switch c := c.(type) {
		case *IntegerControl:
			if s.Value != c.Default {
				return false
			}
		case *BooleanControl:
			if s.Value != b2i(c.Default) {
				return false
			}
		}
	}
	return true
}

func (b *ColorPresetBackend) Apply(batch Batch, warns *Warnings) {
	for _, a := range batch {
		ctrl := findControl(b.ctrls, a.Name)
		if ctrl == nil {
			continue
		}
		bc := ctrl.(*ButtonControl)
		e := findEntry(bc.Entries, a.Value)
		if e == nil {
			warns.addf("can't find %s in %v", a.Value, entryIDs(bc.Entries))
			continue
		}
		b.apply(b.batchFor(e.ID), warns)
	}
}

// batchFor merges the defaults with one look, defaults order first, the
// look's extra keys after.
func (b *ColorPresetBackend) batchFor(id string) Batch {
	var p *colorPreset
	for i := range b.presets {
		if b.presets[i].id == id {
			p = &b.presets[i]
			break
		}
	}
	if p == nil {
		return nil
	}
	out := make(Batch, 0, len(b.defaults)+len(p.resolved))
	for _, d := range b.defaults {
		v := d.Value
		for _, pv := range p.resolved {
			if pv.Name == d.Name {
				v = pv.Value
				break
			}
		}
		out = append(out, Assignment{Name: d.Name, Value: v})
	}
	for _, pv := range p.resolved {
		inDefaults := false
		for _, d := range b.defaults {
			if d.Name == pv.Name {
				inDefaults = true
				break
			}
		}
		if !inDefaults {
			out = append(out, pv)
		}
	}
	return out
}
