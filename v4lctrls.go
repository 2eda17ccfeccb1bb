package cameractrls

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
)

// toTextID derives a control's stable textual identifier from its kernel
// name: lower case, spaces and dashes become underscores, punctuation is
// dropped, doubled underscores collapse.
func toTextID(name string) string {
	s := strings.ToLower(name)
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', '&', '(', '.', ')', '/':
			return -1
		}
		return r
	}, s)
	return strings.ReplaceAll(s, "__", "_")
}

// Motion controls whose value must snap back to zero when a UI input is
// released.
var zeroOnReleaseIDs = map[uint32]bool{
	v4l2.CIDPanSpeed:       true,
	v4l2.CIDTiltSpeed:      true,
	v4l2.CIDZoomContinuous: true,
}

func kernelHint(id uint32) DisplayHint {
	switch id {
	case v4l2.CIDWhiteBalanceTemperature:
		return DisplayTemperature
	case v4l2.CIDExposureAbsolute:
		return DisplayExposure
	case v4l2.CIDGain, v4l2.CIDAnalogueGain, v4l2.CIDDigitalGain:
		return DisplayGain
	}
	return DisplayDefault
}

// V4L2Backend exposes the device's kernel controls. It enumerates them once
// at construction with the NEXT_CTRL walk and afterwards only exchanges
// values with the driver.
type V4L2Backend struct {
	dev   *v4l2.Device
	ctrls []Control
}

func NewV4L2Backend(dev *v4l2.Device, warns *Warnings) *V4L2Backend {
	b := &V4L2Backend{dev: dev}
	id := uint32(v4l2.CtrlFlagNextCtrl | v4l2.CtrlFlagNextCompound)
	for {
		q, err := b.dev.QueryCtrl(id)
		if err != nil {
			// The walk ends with an error once ids are exhausted.
			break
		}
		id = q.ID | uint32(v4l2.CtrlFlagNextCtrl|v4l2.CtrlFlagNextCompound)
		if c := b.controlFromQuery(q, warns); c != nil {
			b.ctrls = append(b.ctrls, c)
		}
	}
	return b
}

func (b *V4L2Backend) Supported() bool { return true }

func (b *V4L2Backend) Controls() []Control { return b.ctrls }

func (b *V4L2Backend) controlFromQuery(q *v4l2.QueryCtrl, warns *Warnings) Control {
	switch q.Type {
	case v4l2.CtrlTypeInteger, v4l2.CtrlTypeBoolean, v4l2.CtrlTypeMenu,
		v4l2.CtrlTypeIntegerMenu, v4l2.CtrlTypeButton:
	default:
		return nil
	}

	name := q.CtrlName()
	meta := ControlMeta{
		ID:            toTextID(name),
		Name:          name,
		KernelID:      q.ID,
		ZeroOnRelease: zeroOnReleaseIDs[q.ID],
		Hint:          kernelHint(q.ID),
	}
	state := State{
		Inactive: q.Flags&v4l2.CtrlFlagInactive != 0,
		ReadOnly: q.Flags&v4l2.CtrlFlagReadOnly != 0,
	}

	var value int32
	valid := false
	if q.Type != v4l2.CtrlTypeButton {
		v, err := b.dev.GetCtrl(q.ID)
		if err != nil {
			warns.addf("can't get ctrl %s value (%v)", name, err)
		} else {
			value, valid = v, true
		}
	}

	switch q.Type {
	case v4l2.CtrlTypeInteger:
		// Some drivers report two-state switches as [0,1] step-1 integers.
		if q.Minimum == 0 && q.Maximum == 1 && q.Step == 1 {
			c := &BooleanControl{Default: q.DefaultValue != 0}
			c.meta = meta
			state.Value, state.Valid = value, valid
			c.setState(state)
			return c
		}
		def := q.DefaultValue
		if meta.ZeroOnRelease {
			def = 0
		}
		c := &IntegerControl{Min: q.Minimum, Max: q.Maximum, Step: q.Step, Default: def}
		if q.Step != 0 {
			c.BigStep = q.Step * 20
		}
		c.meta = meta
		state.Value, state.Valid = value, valid
		c.setState(state)
		return c

	case v4l2.CtrlTypeBoolean:
		c := &BooleanControl{Default: q.DefaultValue != 0}
		c.meta = meta
		state.Value, state.Valid = value, valid
		c.setState(state)
		return c

	case v4l2.CtrlTypeMenu, v4l2.CtrlTypeIntegerMenu:
		c := &MenuControl{Entries: b.menuEntries(q)}
		if e := findEntryByValue(c.Entries, q.DefaultValue); e != nil {
			c.Default = e.ID
		}
		if valid {
			if e := findEntryByValue(c.Entries, value); e != nil {
				state.Entry = e.ID
			}
		}
		c.meta = meta
		c.setState(state)
		return c

	case v4l2.CtrlTypeButton:
		c := &ButtonControl{Entries: []MenuEntry{{ID: meta.ID, Name: name}}}
		c.meta = meta
		c.setState(state)
		return c
	}
	return nil
}

// menuEntries scans every index in [min,max]. Indices may be sparse; a query
// failure means the index carries no item and the scan continues.
func (b *V4L2Backend) menuEntries(q *v4l2.QueryCtrl) []MenuEntry {
	var entries []MenuEntry
	for i := q.Minimum; i <= q.Maximum; i++ {
		m, err := b.dev.QueryMenu(q.ID, uint32(i))
		if err != nil {
			continue
		}
		e := MenuEntry{Value: i, Valid: true}
		if q.Type == v4l2.CtrlTypeMenu {
			e.Name = m.MenuName()
			e.ID = toTextID(e.Name)
		} else {
			e.Name = strconv.FormatInt(m.Value(), 10)
			e.ID = e.Name
		}
		entries = append(entries, e)
	}
	return entries
}

func (b *V4L2Backend) Apply(batch Batch, warns *Warnings) {
	for _, a := range batch {
		if c := findControl(b.ctrls, a.Name); c != nil {
			b.applyOne(c, a.Value, warns)
		}
	}
}

func (b *V4L2Backend) applyOne(ctrl Control, value string, warns *Warnings) {
	id := ctrl.Meta().ID
	var want int32
	entry := ""
	switch c := ctrl.(type) {
	case *IntegerControl:
		v, err := c.resolveValue(value)
		if err != nil {
			warns.addf("can't set %s to %s (%v)", id, value, err)
			return
		}
		want = v
	case *BooleanControl:
		if value == "default" {
			want = b2i(c.Default)
		} else {
			want = b2i(parseBool(value))
		}
	case *MenuControl:
		eid := value
		if eid == "default" {
			eid = c.Default
		}
		e := findEntry(c.Entries, eid)
		if e == nil {
			warns.addf("can't find %s in %v", eid, entryIDs(c.Entries))
			return
		}
		want, entry = e.Value, e.ID
	case *ButtonControl:
		want = 0
	default:
		warns.addf("can't set %s to %s", id, value)
		return
	}

	got, err := b.dev.SetCtrl(ctrl.Meta().KernelID, want)
	if err != nil {
		warns.addf("can't set %s to %s (%v)", id, value, err)
		return
	}
	// The driver reports the value it applied; a disagreement means the
	// write did not take and the cache must keep the device's truth.
	if got != want {
		warns.addf("can't set %s to %s using %d", id, value, got)
		return
	}

	switch c := ctrl.(type) {
	case *MenuControl:
		c.update(func(s *State) { s.Entry = entry })
	case *IntegerControl:
		c.update(func(s *State) { s.Value, s.Valid = want, true })
	case *BooleanControl:
		c.update(func(s *State) { s.Value, s.Valid = want, true })
	case *ButtonControl:
	}
}

// applyEventValue folds a control-change event's value into the cached
// state. A menu code with no matching entry is an error and leaves the
// cache untouched.
func applyEventValue(ctrl Control, value int32) error {
	switch c := ctrl.(type) {
	case *MenuControl:
		e := findEntryByValue(c.Entries, value)
		if e == nil {
			return fmt.Errorf("can't find %d in %s menu", value, c.meta.ID)
		}
		c.update(func(s *State) { s.Entry = e.ID })
	case *IntegerControl:
		c.update(func(s *State) { s.Value, s.Valid = value, true })
	case *BooleanControl:
		c.update(func(s *State) { s.Value, s.Valid = value, true })
	}
	return nil
}

func b2i(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
