//go:build linux && (amd64 || arm64)

package v4l2

// cidNames maps well-known control ids to their videodev2.h symbol, for
// display next to the driver-reported control name.
var cidNames = map[uint32]string{
	CIDBrightness:              "V4L2_CID_BRIGHTNESS",
	CIDContrast:                "V4L2_CID_CONTRAST",
	CIDSaturation:              "V4L2_CID_SATURATION",
	CIDHue:                     "V4L2_CID_HUE",
	CIDAutoWhiteBalance:        "V4L2_CID_AUTO_WHITE_BALANCE",
	CIDDoWhiteBalance:          "V4L2_CID_DO_WHITE_BALANCE",
	CIDRedBalance:              "V4L2_CID_RED_BALANCE",
	CIDBlueBalance:             "V4L2_CID_BLUE_BALANCE",
	CIDGamma:                   "V4L2_CID_GAMMA",
	CIDExposure:                "V4L2_CID_EXPOSURE",
	CIDAutogain:                "V4L2_CID_AUTOGAIN",
	CIDGain:                    "V4L2_CID_GAIN",
	CIDHFlip:                   "V4L2_CID_HFLIP",
	CIDVFlip:                   "V4L2_CID_VFLIP",
	CIDPowerLineFrequency:      "V4L2_CID_POWER_LINE_FREQUENCY",
	CIDHueAuto:                 "V4L2_CID_HUE_AUTO",
	CIDWhiteBalanceTemperature: "V4L2_CID_WHITE_BALANCE_TEMPERATURE",
	CIDSharpness:               "V4L2_CID_SHARPNESS",
	CIDBacklightCompensation:   "V4L2_CID_BACKLIGHT_COMPENSATION",
	CIDChromaAGC:               "V4L2_CID_CHROMA_AGC",
	CIDChromaGain:              "V4L2_CID_CHROMA_GAIN",
	CIDColorKiller:             "V4L2_CID_COLOR_KILLER",
	CIDColorFX:                 "V4L2_CID_COLORFX",
	CIDAutobrightness:          "V4L2_CID_AUTOBRIGHTNESS",
	CIDBandStopFilter:          "V4L2_CID_BAND_STOP_FILTER",
	CIDRotate:                  "V4L2_CID_ROTATE",
	CIDBgColor:                 "V4L2_CID_BG_COLOR",
	CIDIlluminators1:           "V4L2_CID_ILLUMINATORS_1",
	CIDIlluminators2:           "V4L2_CID_ILLUMINATORS_2",
	CIDAlphaComponent:          "V4L2_CID_ALPHA_COMPONENT",
	CIDColorFXCbCr:             "V4L2_CID_COLORFX_CBCR",
	CIDColorFXRGB:              "V4L2_CID_COLORFX_RGB",
	CIDExposureAuto:            "V4L2_CID_EXPOSURE_AUTO",
	CIDExposureAbsolute:        "V4L2_CID_EXPOSURE_ABSOLUTE",
	CIDExposureAutoPriority:    "V4L2_CID_EXPOSURE_AUTO_PRIORITY",
	CIDPanRelative:             "V4L2_CID_PAN_RELATIVE",
	CIDTiltRelative:            "V4L2_CID_TILT_RELATIVE",
	CIDPanReset:                "V4L2_CID_PAN_RESET",
	CIDTiltReset:               "V4L2_CID_TILT_RESET",
	CIDPanAbsolute:             "V4L2_CID_PAN_ABSOLUTE",
	CIDTiltAbsolute:            "V4L2_CID_TILT_ABSOLUTE",
	CIDFocusAbsolute:           "V4L2_CID_FOCUS_ABSOLUTE",
	CIDFocusRelative:           "V4L2_CID_FOCUS_RELATIVE",
	CIDFocusAuto:               "V4L2_CID_FOCUS_AUTO",
	CIDZoomAbsolute:            "V4L2_CID_ZOOM_ABSOLUTE",
	CIDZoomRelative:            "V4L2_CID_ZOOM_RELATIVE",
	CIDZoomContinuous:          "V4L2_CID_ZOOM_CONTINUOUS",
	CIDPrivacy:                 "V4L2_CID_PRIVACY",
	CIDIrisAbsolute:            "V4L2_CID_IRIS_ABSOLUTE",
	CIDIrisRelative:            "V4L2_CID_IRIS_RELATIVE",
	CIDPanSpeed:                "V4L2_CID_PAN_SPEED",
	CIDTiltSpeed:               "V4L2_CID_TILT_SPEED",
	CIDJPEGCompressionQuality:  "V4L2_CID_JPEG_COMPRESSION_QUALITY",
	CIDAnalogueGain:            "V4L2_CID_ANALOGUE_GAIN",
	CIDDigitalGain:             "V4L2_CID_DIGITAL_GAIN",
	CIDTestPattern:             "V4L2_CID_TEST_PATTERN",
}

// CIDName returns the videodev2.h symbol for a control id, or "" when the
// id has no well-known name.
func CIDName(id uint32) string { return cidNames[id] }
