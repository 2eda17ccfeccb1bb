package cameractrls

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/kevmo314/cameractrls/pkg/preset"
)

// snapshotControls is a restorable mix: an integer, a menu and a boolean,
// plus one of every kind a snapshot must skip.
func snapshotControls() []Control {
	bright := &IntegerControl{Min: 0, Max: 255, Step: 1, Default: 128}
	bright.meta = ControlMeta{ID: "brightness", Name: "Brightness"}
	bright.setState(State{Value: 100, Valid: true})

	freq := &MenuControl{Entries: []MenuEntry{{ID: "disabled"}, {ID: "50hz"}, {ID: "60hz"}}}
	freq.meta = ControlMeta{ID: "power_line_frequency", Name: "Power Line Frequency"}
	freq.setState(State{Entry: "50hz"})

	awb := &BooleanControl{Default: true}
	awb.meta = ControlMeta{ID: "white_balance_automatic", Name: "White Balance, Automatic"}
	awb.setState(State{Value: 1, Valid: true})

	info := infoControl("card", "Card", "Test Camera", "")

	save := buttonControl("kiyo_pro_save", "Save", "", nil)

	locked := &IntegerControl{}
	locked.meta = ControlMeta{ID: "exposure_time_absolute", Name: "Exposure Time"}
	locked.setState(State{Value: 250, Valid: true, Inactive: true})

	unset := &MenuControl{Entries: []MenuEntry{{ID: "wide"}}}
	unset.meta = ControlMeta{ID: "kiyo_pro_fov", Name: "FoV"}

	transient := &IntegerControl{}
	transient.meta = ControlMeta{ID: "pan_speed", Name: "Pan Speed", Unrestorable: true}
	transient.setState(State{Value: 0, Valid: true})

	return []Control{bright, freq, awb, info, save, locked, unset, transient}
}

func TestClaimedValues(t *testing.T) {
	got := claimedValues(snapshotControls())
	want := []preset.Value{
		{Key: "brightness", Value: "100"},
		{Key: "power_line_frequency", Value: "50hz"},
		{Key: "white_balance_automatic", Value: "true"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("claimedValues = %v, want %v", got, want)
	}
}

func TestConfigPresetControl(t *testing.T) {
	b := NewConfigPresetBackend("/dev/v4l/by-id/usb-cam0", preset.NewStore(t.TempDir()), nil, nil)
	if !b.Supported() || len(b.Controls()) != 1 {
		t.Fatalf("controls = %v, want the preset button", controlIDList(b.Controls()))
	}
	c := b.Controls()[0].(*ButtonControl)
	if c.Meta().ID != "preset" || !c.Meta().Reopen {
		t.Errorf("meta = %+v, want a reopening preset button", c.Meta())
	}
	if len(c.Entries) != 8 {
		t.Fatalf("entries = %v, want 4 load + 4 save", entryIDs(c.Entries))
	}
	load := c.Entries[0]
	if load.ID != "load_1" || load.Name != "1" || load.LongPress != "save_1" || load.Hidden {
		t.Errorf("entry 0 = %+v", load)
	}
	save := c.Entries[4]
	if save.ID != "save_1" || save.Name != "Save 1" || !save.Hidden {
		t.Errorf("entry 4 = %+v", save)
	}
}

func TestConfigPresetSaveLoad(t *testing.T) {
	dir := t.TempDir()
	ctrls := snapshotControls()
	var rec applyRecorder
	b := NewConfigPresetBackend("/dev/v4l/by-id/usb-cam0",
		preset.NewStore(dir), func() []Control { return ctrls }, rec.apply)

	var warns Warnings
	b.Apply(ParseBatch("preset=save_1", &warns), &warns)
	if len(warns) != 0 {
		t.Fatalf("save warnings = %v", warns)
	}
	if _, err := os.Stat(b.store.File("usb-cam0")); err != nil {
		t.Fatalf("preset file: %v", err)
	}

	b.Apply(ParseBatch("preset=load_1", &warns), &warns)
	if len(warns) != 0 {
		t.Fatalf("load warnings = %v", warns)
	}
	// One batch per key keeps the saved order and isolates failures.
	want := []string{
		"brightness=100",
		"power_line_frequency=50hz",
		"white_balance_automatic=true",
	}
	if !reflect.DeepEqual(rec.strings(), want) {
		t.Errorf("applied = %v, want %v", rec.strings(), want)
	}
}

func TestConfigPresetLoadMissingFile(t *testing.T) {
	var rec applyRecorder
	b := NewConfigPresetBackend("cam0", preset.NewStore(t.TempDir()), nil, rec.apply)

	var warns Warnings
	b.Apply(ParseBatch("preset=load_1", &warns), &warns)
	if len(warns) != 1 || !strings.Contains(warns[0], "not found") {
		t.Errorf("warnings = %v, want a missing file warning", warns)
	}
	if len(rec.batches) != 0 {
		t.Errorf("missing file still applied %v", rec.batches)
	}
}

func TestConfigPresetLoadMissingSection(t *testing.T) {
	dir := t.TempDir()
	ctrls := snapshotControls()
	var rec applyRecorder
	b := NewConfigPresetBackend("cam0", preset.NewStore(dir),
		func() []Control { return ctrls }, rec.apply)

	var warns Warnings
	b.Apply(ParseBatch("preset=save_2", &warns), &warns)
	b.Apply(ParseBatch("preset=load_1", &warns), &warns)
	if len(warns) != 1 || !strings.HasPrefix(warns[0], "preset_1 not found in ") {
		t.Errorf("warnings = %v, want a missing slot warning", warns)
	}
}

func TestConfigPresetUnknownEntry(t *testing.T) {
	b := NewConfigPresetBackend("cam0", preset.NewStore(t.TempDir()), nil, nil)

	var warns Warnings
	b.Apply(ParseBatch("preset=load_9", &warns), &warns)
	if len(warns) != 1 || !strings.HasPrefix(warns[0], "can't find load_9 in ") {
		t.Errorf("warnings = %v, want an unknown entry warning", warns)
	}
}
