package cameractrls

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/kevmo314/cameractrls/pkg/preset"
)

// ConfigPresetBackend saves and restores whole control snapshots through
// the preset store. Loading applies one assignment at a time so a control
// that unlocks another one, a manual mode ahead of its value, takes
// effect first and each key fails on its own.
type ConfigPresetBackend struct {
	store    *preset.Store
	devID    string
	controls func() []Control
	apply    func(Batch, *Warnings)
	ctrls    []Control
}

func NewConfigPresetBackend(device string, store *preset.Store, controls func() []Control, apply func(Batch, *Warnings)) *ConfigPresetBackend {
	b := &ConfigPresetBackend{
		store:    store,
		devID:    presetID(device),
		controls: controls,
		apply:    apply,
	}
	c := buttonControl("preset", "Preset",
		"Preset\nClick loads the preset\nLong press saves it", configPresetEntries())
	// A restored snapshot can change the stream format.
	c.meta.Reopen = true
	b.ctrls = []Control{c}
	return b
}

func configPresetEntries() []MenuEntry {
	var entries []MenuEntry
	for i := 1; i <= 4; i++ {
		n := strconv.Itoa(i)
		entries = append(entries, MenuEntry{ID: "load_" + n, Name: n, LongPress: "save_" + n})
	}
	for i := 1; i <= 4; i++ {
		n := strconv.Itoa(i)
		entries = append(entries, MenuEntry{ID: "save_" + n, Name: "Save " + n, Hidden: true})
	}
	return entries
}

func (b *ConfigPresetBackend) Supported() bool { return len(b.ctrls) != 0 }

func (b *ConfigPresetBackend) Controls() []Control { return b.ctrls }

func (b *ConfigPresetBackend) Apply(batch Batch, warns *Warnings) {
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
		op, num, _ := strings.Cut(e.ID, "_")
		switch op {
		case "load":
			b.load(num, warns)
		case "save":
			b.save(num, warns)
		}
	}
}

func (b *ConfigPresetBackend) load(num string, warns *Warnings) {
	file := b.store.File(b.devID)
	if _, err := os.Stat(file); err != nil {
		warns.addf("preset file %s not found", file)
		return
	}
	values, err := b.store.Load(b.devID, "preset_"+num)
	if err != nil {
		if errors.Is(err, preset.ErrNoSection) {
			warns.addf("preset_%s not found in %s", num, file)
			return
		}
		warns.addf("can't load %s (%v)", file, err)
		return
	}
	for _, v := range values {
		b.apply(Batch{{Name: v.Key, Value: v.Value}}, warns)
	}
}

func (b *ConfigPresetBackend) save(num string, warns *Warnings) {
	if err := b.store.Save(b.devID, "preset_"+num, claimedValues(b.controls())); err != nil {
		warns.addf("can't save preset (%v)", err)
	}
}

// claimedValues snapshots everything worth restoring: no info or button
// controls, nothing inactive, read-only or unset, nothing marked
// unrestorable.
func claimedValues(ctrls []Control) []preset.Value {
	var out []preset.Value
	for _, c := range ctrls {
		m := c.Meta()
		if m.Unrestorable {
			continue
		}
		s := c.State()
		if s.Inactive || s.ReadOnly {
			continue
		}
		var v string
		switch c.(type) {
		case *InfoControl, *ButtonControl:
			continue
		case *MenuControl:
			if s.Entry == "" {
				continue
			}
			v = s.Entry
		case *BooleanControl:
			if !s.Valid {
				continue
			}
			v = "false"
			if s.Value != 0 {
				v = "true"
			}
		case *IntegerControl:
			if !s.Valid {
				continue
			}
			v = strconv.Itoa(int(s.Value))
		}
		out = append(out, preset.Value{Key: m.ID, Value: v})
	}
	return out
}
