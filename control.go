// Package cameractrls exposes one uniform control registry over a camera
// whose settings are split across the kernel's V4L2 control interface and
// vendor-specific UVC extension unit registers. Backends discover controls
// against a live device, encode writes for their protocol, verify them, and
// report disagreements as warnings rather than hard failures.
package cameractrls

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// DisplayHint tells a presentation layer how to scale and label a control.
type DisplayHint uint8

const (
	DisplayDefault DisplayHint = iota
	// DisplayTemperature is a white balance scale in kelvin.
	DisplayTemperature
	// DisplayExposure is a dark-to-light scale in units of 100 µs.
	DisplayExposure
	// DisplayGain is a dark-to-light scale.
	DisplayGain
)

// FormatValue renders an integer control value for display.
func (h DisplayHint) FormatValue(v int32) string {
	switch h {
	case DisplayTemperature:
		return fmt.Sprintf("%d K", v)
	case DisplayExposure:
		return fmt.Sprintf("%d00 µs", v)
	default:
		return strconv.Itoa(int(v))
	}
}

// ControlMeta is the immutable identity of a control, fixed at discovery.
type ControlMeta struct {
	// ID is the stable textual identifier, unique across the registry.
	ID string
	// Name is the human-readable label.
	Name string
	// KernelID is the numeric V4L2 control id, 0 for non-kernel controls.
	KernelID uint32
	// Reopen marks controls whose change only takes effect after the caller
	// closes and reopens the device handle.
	Reopen bool
	// ZeroOnRelease marks motion controls that a UI should snap back to
	// zero when the input is released.
	ZeroOnRelease bool
	// Unrestorable excludes the control from saved presets.
	Unrestorable bool
	Hint         DisplayHint
	Tooltip      string
}

// State is a control's live, device-backed state. Writers swap the whole
// struct atomically, so a reader on another goroutine never observes a
// half-applied update. Reads may lag the device by one poll interval.
type State struct {
	// Value carries Integer and Boolean control values.
	Value int32
	// Valid is false until Value has been read or resolved.
	Valid bool
	// Entry is a Menu or Button control's current entry id, "" while the
	// live numeric code has no known mapping.
	Entry string
	// Text carries Info control values.
	Text string
	// Inactive mirrors the kernel's inactive flag: the control exists but
	// currently has no effect (an automatic mode overrides it).
	Inactive bool
	// ReadOnly mirrors the kernel's read-only flag.
	ReadOnly bool
}

// Control is one named camera property. The concrete kinds are
// IntegerControl, BooleanControl, MenuControl, ButtonControl and
// InfoControl; which numeric or menu fields are meaningful follows from the
// concrete type.
type Control interface {
	Meta() *ControlMeta
	State() State

	setState(State)
	isControl()
}

type controlBase struct {
	meta ControlMeta
	live atomic.Pointer[State]
}

func (b *controlBase) Meta() *ControlMeta { return &b.meta }

func (b *controlBase) State() State {
	if s := b.live.Load(); s != nil {
		return *s
	}
	return State{}
}

func (b *controlBase) setState(s State) { b.live.Store(&s) }

// update applies f to a copy of the current state and swaps the copy in.
func (b *controlBase) update(f func(*State)) {
	s := b.State()
	f(&s)
	b.live.Store(&s)
}

func (b *controlBase) isControl() {}

// IntegerControl is a numeric control with a driver-reported range.
type IntegerControl struct {
	controlBase
	Min     int32
	Max     int32
	Step    int32
	Default int32
	// BigStep is a coarse step for page-style UI movement.
	BigStep int32
}

// resolveValue resolves the textual forms accepted for integer controls:
// "default", a percentage of the working range, or a bare integer. A
// percentage maps the default onto 50%, so value = min + 2·(default-min)·pct
// clamped to [min,max]; this lets one preset scale across devices with
// different ranges. Bare integers are not clamped here, the driver's
// write-back decides.
func (c *IntegerControl) resolveValue(v string) (int32, error) {
	if v == "default" {
		return c.Default, nil
	}
	if pct, ok := strings.CutSuffix(v, "%"); ok {
		p, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, fmt.Errorf("bad percentage %q", v)
		}
		val := int32(math.Round(float64(c.Min) + float64(c.Default-c.Min)*p/100*2))
		return min(max(val, c.Min), c.Max), nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad integer %q", v)
	}
	return int32(n), nil
}

// BooleanControl is an on/off control.
type BooleanControl struct {
	controlBase
	Default bool
}

// MenuControl selects one of a fixed set of entries. Value and Default are
// entry ids, never raw numeric codes; "" means no known mapping.
type MenuControl struct {
	controlBase
	Default string
	Entries []MenuEntry
}

// ButtonControl triggers an action. Multi-action buttons carry one entry
// per action.
type ButtonControl struct {
	controlBase
	// Default names the entry a UI may highlight as the neutral choice.
	Default string
	Entries []MenuEntry
}

// InfoControl is read-only display text.
type InfoControl struct {
	controlBase
}

// MenuEntry is one named choice of a Menu or Button control, owned by
// exactly one control.
type MenuEntry struct {
	ID   string
	Name string
	// Value is the numeric code for kernel menus and integer-coded vendor
	// registers. Valid guards it because 0 is a legitimate code.
	Value int32
	Valid bool
	// Data is a whole pre-built register image for vendors that ship
	// per-choice command literals.
	Data []byte
	// Pre is a command sent before Data when the transition needs an
	// intermediate step to avoid a visible artifact.
	Pre []byte
	// LongPress names the alternate entry a long press triggers.
	LongPress string
	// Hidden excludes the entry from interactive pickers.
	Hidden bool
}

func findControl(ctrls []Control, id string) Control {
	for _, c := range ctrls {
		if c.Meta().ID == id {
			return c
		}
	}
	return nil
}

func findControlByKernelID(ctrls []Control, id uint32) Control {
	for _, c := range ctrls {
		if c.Meta().KernelID == id {
			return c
		}
	}
	return nil
}

func findEntry(entries []MenuEntry, id string) *MenuEntry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

func findEntryByValue(entries []MenuEntry, v int32) *MenuEntry {
	for i := range entries {
		if entries[i].Valid && entries[i].Value == v {
			return &entries[i]
		}
	}
	return nil
}

func entryIDs(entries []MenuEntry) []string {
	ids := make([]string, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
	}
	return ids
}

func menuControl(id, name, tooltip string, entries []MenuEntry) *MenuControl {
	c := &MenuControl{Entries: entries}
	c.meta = ControlMeta{ID: id, Name: name, Tooltip: tooltip}
	return c
}

func integerControl(id, name, tooltip string) *IntegerControl {
	c := &IntegerControl{}
	c.meta = ControlMeta{ID: id, Name: name, Tooltip: tooltip}
	return c
}

func buttonControl(id, name, tooltip string, entries []MenuEntry) *ButtonControl {
	c := &ButtonControl{Entries: entries}
	c.meta = ControlMeta{ID: id, Name: name, Tooltip: tooltip}
	return c
}

// parseBool accepts the boolean spellings the command line has always
// accepted; anything else is false.
func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "t", "true", "on", "1":
		return true
	}
	return false
}

// Warnings accumulates the recoverable failures of a batch. Each entry is
// one line naming the backend, the control and the cause.
type Warnings []string

func (w *Warnings) addf(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

// Assignment is one name=value pair of a batch.
type Assignment struct {
	Name  string
	Value string
}

// Batch is an ordered list of assignments. Order is preserved end to end
// because dependent controls exist: enabling a manual mode must reach the
// device before the manual value it unlocks.
type Batch []Assignment

// ParseBatch parses "name=value,name=value" syntax. Malformed items are
// skipped with a warning.
func ParseBatch(s string, warns *Warnings) Batch {
	var batch Batch
	for _, item := range strings.Split(s, ",") {
		if item == "" {
			continue
		}
		name, value, ok := strings.Cut(item, "=")
		if !ok {
			warns.addf("invalid control value: %s", item)
			continue
		}
		batch = append(batch, Assignment{Name: name, Value: value})
	}
	return batch
}

// Backend is one source of controls behind the aggregated registry.
type Backend interface {
	// Supported reports whether the device carries this backend's feature
	// set. Unsupported backends expose no controls and are not an error.
	Supported() bool
	// Controls lists the backend's controls in discovery order.
	Controls() []Control
	// Apply receives every assignment of a batch and ignores names it does
	// not own. Failures are appended to warns; the batch never aborts.
	Apply(batch Batch, warns *Warnings)
}
