package cameractrls

import (
	"reflect"
	"testing"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
)

func TestEncodeFPS(t *testing.T) {
	for _, tt := range []struct {
		fps  float64
		want v4l2.Fract
	}{
		{30, v4l2.Fract{Numerator: 10, Denominator: 300}},
		{7.5, v4l2.Fract{Numerator: 10, Denominator: 75}},
		// One decimal of precision is kept by truncation, so 29.97 encodes
		// as 299/10 and reads back as 29.9.
		{29.97, v4l2.Fract{Numerator: 10, Denominator: 299}},
		{5, v4l2.Fract{Numerator: 10, Denominator: 50}},
	} {
		if got := encodeFPS(tt.fps); got != tt.want {
			t.Errorf("encodeFPS(%v) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestEncodeFPSRoundTrip(t *testing.T) {
	if got := encodeFPS(30).FPSString(); got != "30" {
		t.Errorf("encodeFPS(30) reads back %q, want 30", got)
	}
	if got := encodeFPS(29.97).FPSString(); got != "29.9" {
		t.Errorf("encodeFPS(29.97) reads back %q, want 29.9", got)
	}
	// 29.97 does not survive the encoding, so a set must report the
	// applied rate instead of caching the request.
	if f := encodeFPS(29.97); f.FPS() == 29.97 {
		t.Errorf("encodeFPS(29.97).FPS() = %v, expected a mismatch", f.FPS())
	}
}

func TestSortResolutions(t *testing.T) {
	sizes := []v4l2.FrameSizeDiscrete{
		{Width: 640, Height: 480},
		{Width: 1920, Height: 1080},
		{Width: 1280, Height: 960},
		{Width: 1280, Height: 720},
		{Width: 640, Height: 360},
	}
	sortResolutions(sizes)
	want := []v4l2.FrameSizeDiscrete{
		{Width: 1920, Height: 1080},
		{Width: 1280, Height: 960},
		{Width: 1280, Height: 720},
		{Width: 640, Height: 480},
		{Width: 640, Height: 360},
	}
	if !reflect.DeepEqual(sizes, want) {
		t.Errorf("sortResolutions = %v, want %v", sizes, want)
	}
}

func TestResolutionStrings(t *testing.T) {
	if got := resolutionString(1920, 1080); got != "1920x1080" {
		t.Errorf("resolutionString = %q, want 1920x1080", got)
	}
	w, h, err := parseResolution("1280x720")
	if err != nil {
		t.Fatalf("parseResolution: %v", err)
	}
	if w != 1280 || h != 720 {
		t.Errorf("parseResolution = %dx%d, want 1280x720", w, h)
	}
	for _, bad := range []string{"1280", "x720", "1280x", "axb", ""} {
		if _, _, err := parseResolution(bad); err == nil {
			t.Errorf("parseResolution(%q): expected error", bad)
		}
	}
}

func TestFormatMenu(t *testing.T) {
	c := formatMenu("pixelformat", "Pixel format", "Output pixel format", "YUYV", []string{"YUYV", "MJPG", "NV12"})
	if !c.Meta().Reopen {
		t.Errorf("format menus must require a reopen")
	}
	if got := c.State().Entry; got != "YUYV" {
		t.Errorf("current = %q, want YUYV", got)
	}
	if got := entryIDs(c.Entries); !reflect.DeepEqual(got, []string{"YUYV", "MJPG", "NV12"}) {
		t.Errorf("entries = %v", got)
	}
}

func TestRefreshMenu(t *testing.T) {
	pxf := formatMenu("pixelformat", "Pixel format", "", "YUYV", []string{"YUYV", "MJPG"})
	res := formatMenu("resolution", "Resolution", "", "1920x1080", []string{"1920x1080", "1280x720"})

	var updates []Control
	updates = refreshMenu(pxf, "YUYV", updates)
	if len(updates) != 0 {
		t.Errorf("unchanged value reported %d updates", len(updates))
	}

	// A missing menu (stepwise devices carry no resolution menu) is skipped.
	updates = refreshMenu(nil, "640x480", updates)
	if len(updates) != 0 {
		t.Errorf("nil menu reported %d updates", len(updates))
	}

	updates = refreshMenu(pxf, "MJPG", updates)
	updates = refreshMenu(res, "1280x720", updates)
	if len(updates) != 2 || updates[0] != Control(pxf) || updates[1] != Control(res) {
		t.Fatalf("updates = %v, want [pixelformat resolution]", controlIDList(updates))
	}
	if got := pxf.State().Entry; got != "MJPG" {
		t.Errorf("pixelformat cache = %q, want MJPG", got)
	}
	if got := res.State().Entry; got != "1280x720" {
		t.Errorf("resolution cache = %q, want 1280x720", got)
	}
}
