package cameractrls

import (
	"slices"
	"strings"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
)

// Page groups controls for presentation. Footer pages render apart from
// the main list.
type Page struct {
	Title      string
	Categories []Category
	Footer     bool
}

// Category is one titled run of controls on a page.
type Category struct {
	Title    string
	Controls []Control
}

// Pages partitions the controls for presentation. Fixed categories pull
// their controls out of the pool by textual id prefix, kernel id or
// kernel class; whatever remains lands in Other on the Advanced page, so
// each control appears exactly once and nothing is dropped. Empty
// categories and pages are omitted.
func (c *Camera) Pages() []Page {
	return buildPages(c.Controls())
}

func buildPages(pool []Control) []Page {

	basic := Page{Title: "Basic", Categories: []Category{
		{Title: "Crop", Controls: slices.Concat(
			popByIDPrefix(&pool,
				"kiyo_pro_fov",
				"logitech_brio_fov",
				"dell_ultrasharp_fov",
				"dell_ultrasharp_auto_framing",
				"dell_ultrasharp_camera_transition",
				"dell_ultrasharp_tracking_sensitivity",
				"dell_ultrasharp_tracking_frame_size",
				"ankerwork_fov",
				"ankerwork_hor_flip"),
			popByKernelID(&pool,
				v4l2.CIDZoomAbsolute,
				v4l2.CIDZoomContinuous,
				v4l2.CIDZoomRelative,
				v4l2.CIDPanAbsolute,
				v4l2.CIDPanRelative,
				v4l2.CIDPanReset,
				v4l2.CIDPanSpeed,
				v4l2.CIDTiltAbsolute,
				v4l2.CIDTiltRelative,
				v4l2.CIDTiltReset,
				v4l2.CIDTiltSpeed),
			popByIDPrefix(&pool, "logitech_pan_", "logitech_tilt_", "logitech_pantilt"),
		)},
		{Title: "Focus", Controls: slices.Concat(
			popByKernelID(&pool,
				v4l2.CIDFocusAuto,
				v4l2.CIDFocusRelative,
				v4l2.CIDFocusAbsolute,
				v4l2.CIDAutoFocusStart,
				v4l2.CIDAutoFocusStop,
				v4l2.CIDAutoFocusRange,
				v4l2.CIDAutoFocusStatus),
			popByIDPrefix(&pool, "kiyo_pro_af_mode", "logitech_motor_focus", "ankerwork_face_focus"),
		)},
	}}

	exposure := Page{Title: "Exposure", Categories: []Category{
		{Title: "Exposure", Controls: popByKernelID(&pool,
			v4l2.CIDExposureAuto,
			v4l2.CIDExposureAbsolute,
			v4l2.CIDExposureAutoPriority,
			v4l2.CIDAutogain,
			v4l2.CIDExposure,
			v4l2.CIDExposureMetering,
			v4l2.CIDAutoExposureBias,
			v4l2.CIDGain,
			v4l2.CIDAnalogueGain,
			v4l2.CIDDigitalGain,
			v4l2.CIDChromaAGC,
			v4l2.CIDChromaGain,
			v4l2.CIDIrisAbsolute,
			v4l2.CIDIrisRelative,
			v4l2.CIDImageStabilization,
			v4l2.CIDSceneMode,
			v4l2.CID3ALock,
			v4l2.CIDCameraOrientation,
			v4l2.CIDCameraSensorRotation)},
		{Title: "ISO", Controls: popByKernelID(&pool,
			v4l2.CIDISOSensitivity,
			v4l2.CIDISOSensitivityAuto)},
		{Title: "Dynamic Range", Controls: slices.Concat(
			popByKernelID(&pool,
				v4l2.CIDBacklightCompensation,
				v4l2.CIDWideDynamicRange,
				v4l2.CIDHDRSensorMode),
			popByIDPrefix(&pool,
				"kiyo_pro_hdr",
				"dell_ultrasharp_hdr",
				"ankerwork_hdr",
				"ankerwork_face_compensation_enable",
				"ankerwork_face_compensation"),
		)},
	}}

	color := Page{Title: "Color", Categories: []Category{
		{Title: "Color Preset", Controls: popByIDPrefix(&pool, "color_preset")},
		{Title: "Balance", Controls: popByKernelID(&pool,
			v4l2.CIDAutoWhiteBalance,
			v4l2.CIDAutoNPresetWhiteBalance,
			v4l2.CIDWhiteBalanceTemperature,
			v4l2.CIDDoWhiteBalance,
			v4l2.CIDRedBalance,
			v4l2.CIDBlueBalance)},
		{Title: "Color", Controls: popByKernelID(&pool,
			v4l2.CIDAutobrightness,
			v4l2.CIDBrightness,
			v4l2.CIDContrast,
			v4l2.CIDSaturation,
			v4l2.CIDSharpness,
			v4l2.CIDHueAuto,
			v4l2.CIDHue,
			v4l2.CIDGamma,
			v4l2.CIDColorKiller,
			v4l2.CIDBandStopFilter,
			v4l2.CIDBgColor)},
		{Title: "Effects", Controls: popByKernelID(&pool,
			v4l2.CIDColorFX,
			v4l2.CIDColorFXCbCr,
			v4l2.CIDColorFXRGB)},
	}}

	advanced := Page{Title: "Advanced", Categories: []Category{
		{Title: "Power Line", Controls: popByKernelID(&pool, v4l2.CIDPowerLineFrequency)},
		{Title: "Privacy", Controls: popByKernelID(&pool, v4l2.CIDPrivacy)},
		{Title: "Rotate/Flip", Controls: popByKernelID(&pool,
			v4l2.CIDRotate,
			v4l2.CIDHFlip,
			v4l2.CIDVFlip)},
		{Title: "Image Source Control", Controls: popByClass(&pool, v4l2.CIDImageSourceClassBase)},
		{Title: "Image Process Control", Controls: popByClass(&pool, v4l2.CIDImageProcClassBase)},
	}}

	compression := Page{Title: "Compression", Categories: []Category{
		{Title: "Codec", Controls: popByClass(&pool, v4l2.CIDCodecBase)},
		{Title: "JPEG", Controls: popByClass(&pool, v4l2.CIDJPEGClassBase)},
	}}

	info := Page{Title: "Info", Categories: []Category{
		{Title: "Info", Controls: popByIDPrefix(&pool, "card", "driver", "path", "real_path")},
	}}

	settings := Page{Title: "Settings", Footer: true, Categories: []Category{
		{Title: "Save", Controls: popByIDPrefix(&pool, "kiyo_pro_save", "preset")},
	}}

	advanced.Categories = append(advanced.Categories, Category{Title: "Other", Controls: pool})

	var out []Page
	for _, p := range []Page{basic, exposure, color, advanced, compression, info, settings} {
		var cats []Category
		for _, cat := range p.Categories {
			if len(cat.Controls) > 0 {
				cats = append(cats, cat)
			}
		}
		if len(cats) > 0 {
			p.Categories = cats
			out = append(out, p)
		}
	}
	return out
}

// popByIDPrefix removes every control whose textual id starts with one of
// the prefixes, in prefix order.
func popByIDPrefix(pool *[]Control, prefixes ...string) []Control {
	var out []Control
	for _, prefix := range prefixes {
		for i := 0; i < len(*pool); {
			if strings.HasPrefix((*pool)[i].Meta().ID, prefix) {
				out = append(out, (*pool)[i])
				*pool = slices.Delete(*pool, i, i+1)
			} else {
				i++
			}
		}
	}
	return out
}

// popByKernelID removes the controls with exactly these kernel ids, in id
// order.
func popByKernelID(pool *[]Control, ids ...uint32) []Control {
	var out []Control
	for _, id := range ids {
		for i := 0; i < len(*pool); {
			if m := (*pool)[i].Meta(); m.KernelID == id {
				out = append(out, (*pool)[i])
				*pool = slices.Delete(*pool, i, i+1)
			} else {
				i++
			}
		}
	}
	return out
}

// popByClass removes every kernel control in one control class.
func popByClass(pool *[]Control, base uint32) []Control {
	var out []Control
	for i := 0; i < len(*pool); {
		m := (*pool)[i].Meta()
		if m.KernelID != 0 && m.KernelID&v4l2.CtrlClassMask == base&v4l2.CtrlClassMask {
			out = append(out, (*pool)[i])
			*pool = slices.Delete(*pool, i, i+1)
		} else {
			i++
		}
	}
	return out
}
