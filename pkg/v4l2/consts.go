//go:build linux && (amd64 || arm64)

package v4l2

// CtrlType is the control payload type reported by VIDIOC_QUERYCTRL.
type CtrlType uint32

const (
	CtrlTypeInteger     CtrlType = 1
	CtrlTypeBoolean     CtrlType = 2
	CtrlTypeMenu        CtrlType = 3
	CtrlTypeButton      CtrlType = 4
	CtrlTypeInteger64   CtrlType = 5
	CtrlTypeCtrlClass   CtrlType = 6
	CtrlTypeString      CtrlType = 7
	CtrlTypeBitmask     CtrlType = 8
	CtrlTypeIntegerMenu CtrlType = 9
)

// CtrlFlag is the control state bitmask reported by VIDIOC_QUERYCTRL and
// carried on control-change events.
type CtrlFlag uint32

const (
	CtrlFlagReadOnly CtrlFlag = 0x0004
	CtrlFlagUpdate   CtrlFlag = 0x0008
	CtrlFlagInactive CtrlFlag = 0x0010

	// Enumeration modifiers, OR-ed into the id passed to VIDIOC_QUERYCTRL.
	CtrlFlagNextCtrl     CtrlFlag = 0x80000000
	CtrlFlagNextCompound CtrlFlag = 0x40000000
)

// Control id classes. A control's class is its id masked with CtrlClassMask.
const (
	CtrlClassMask        uint32 = 0x00ff0000
	CtrlClassUser        uint32 = 0x00980000
	CtrlClassCodec       uint32 = 0x00990000
	CtrlClassCamera      uint32 = 0x009a0000
	CtrlClassJPEG        uint32 = 0x009d0000
	CtrlClassImageSource uint32 = 0x009e0000
	CtrlClassImageProc   uint32 = 0x009f0000
)

// User class control ids.
const (
	CIDBase                     uint32 = CtrlClassUser | 0x900
	CIDBrightness                      = CIDBase + 0
	CIDContrast                        = CIDBase + 1
	CIDSaturation                      = CIDBase + 2
	CIDHue                             = CIDBase + 3
	CIDAutoWhiteBalance                = CIDBase + 12
	CIDDoWhiteBalance                  = CIDBase + 13
	CIDRedBalance                      = CIDBase + 14
	CIDBlueBalance                     = CIDBase + 15
	CIDGamma                           = CIDBase + 16
	CIDExposure                        = CIDBase + 17
	CIDAutogain                        = CIDBase + 18
	CIDGain                            = CIDBase + 19
	CIDHFlip                           = CIDBase + 20
	CIDVFlip                           = CIDBase + 21
	CIDPowerLineFrequency              = CIDBase + 24
	CIDHueAuto                         = CIDBase + 25
	CIDWhiteBalanceTemperature         = CIDBase + 26
	CIDSharpness                       = CIDBase + 27
	CIDBacklightCompensation           = CIDBase + 28
	CIDChromaAGC                       = CIDBase + 29
	CIDColorKiller                     = CIDBase + 30
	CIDColorFX                         = CIDBase + 31
	CIDAutobrightness                  = CIDBase + 32
	CIDBandStopFilter                  = CIDBase + 33
	CIDRotate                          = CIDBase + 34
	CIDBgColor                         = CIDBase + 35
	CIDChromaGain                      = CIDBase + 36
	CIDIlluminators1                   = CIDBase + 37
	CIDIlluminators2                   = CIDBase + 38
	CIDAlphaComponent                  = CIDBase + 41
	CIDColorFXCbCr                     = CIDBase + 42
	CIDColorFXRGB                      = CIDBase + 43
)

// CIDCodecBase is the start of the codec control class.
const CIDCodecBase uint32 = CtrlClassCodec | 0x900

// Camera class control ids.
const (
	CIDCameraClassBase        uint32 = CtrlClassCamera | 0x900
	CIDExposureAuto                  = CIDCameraClassBase + 1
	CIDExposureAbsolute              = CIDCameraClassBase + 2
	CIDExposureAutoPriority          = CIDCameraClassBase + 3
	CIDPanRelative                   = CIDCameraClassBase + 4
	CIDTiltRelative                  = CIDCameraClassBase + 5
	CIDPanReset                      = CIDCameraClassBase + 6
	CIDTiltReset                     = CIDCameraClassBase + 7
	CIDPanAbsolute                   = CIDCameraClassBase + 8
	CIDTiltAbsolute                  = CIDCameraClassBase + 9
	CIDFocusAbsolute                 = CIDCameraClassBase + 10
	CIDFocusRelative                 = CIDCameraClassBase + 11
	CIDFocusAuto                     = CIDCameraClassBase + 12
	CIDZoomAbsolute                  = CIDCameraClassBase + 13
	CIDZoomRelative                  = CIDCameraClassBase + 14
	CIDZoomContinuous                = CIDCameraClassBase + 15
	CIDPrivacy                       = CIDCameraClassBase + 16
	CIDIrisAbsolute                  = CIDCameraClassBase + 17
	CIDIrisRelative                  = CIDCameraClassBase + 18
	CIDAutoExposureBias              = CIDCameraClassBase + 19
	CIDAutoNPresetWhiteBalance       = CIDCameraClassBase + 20
	CIDWideDynamicRange              = CIDCameraClassBase + 21
	CIDImageStabilization            = CIDCameraClassBase + 22
	CIDISOSensitivity                = CIDCameraClassBase + 23
	CIDISOSensitivityAuto            = CIDCameraClassBase + 24
	CIDExposureMetering              = CIDCameraClassBase + 25
	CIDSceneMode                     = CIDCameraClassBase + 26
	CID3ALock                        = CIDCameraClassBase + 27
	CIDAutoFocusStart                = CIDCameraClassBase + 28
	CIDAutoFocusStop                 = CIDCameraClassBase + 29
	CIDAutoFocusStatus               = CIDCameraClassBase + 30
	CIDAutoFocusRange                = CIDCameraClassBase + 31
	CIDPanSpeed                      = CIDCameraClassBase + 32
	CIDTiltSpeed                     = CIDCameraClassBase + 33
	CIDCameraOrientation             = CIDCameraClassBase + 34
	CIDCameraSensorRotation          = CIDCameraClassBase + 35
	CIDHDRSensorMode                 = CIDCameraClassBase + 36
)

// JPEG class control ids.
const (
	CIDJPEGClassBase          uint32 = CtrlClassJPEG | 0x900
	CIDJPEGChromaSubsampling         = CIDJPEGClassBase + 1
	CIDJPEGRestartInterval           = CIDJPEGClassBase + 2
	CIDJPEGCompressionQuality        = CIDJPEGClassBase + 3
	CIDJPEGActiveMarker              = CIDJPEGClassBase + 4
)

// Image source class control ids.
const (
	CIDImageSourceClassBase uint32 = CtrlClassImageSource | 0x900
	CIDVBlank                      = CIDImageSourceClassBase + 1
	CIDHBlank                      = CIDImageSourceClassBase + 2
	CIDAnalogueGain                = CIDImageSourceClassBase + 3
	CIDTestPatternRed              = CIDImageSourceClassBase + 4
	CIDTestPatternGreenR           = CIDImageSourceClassBase + 5
	CIDTestPatternBlue             = CIDImageSourceClassBase + 6
	CIDTestPatternGreenB           = CIDImageSourceClassBase + 7
	CIDUnitCellSize                = CIDImageSourceClassBase + 8
	CIDNotifyGains                 = CIDImageSourceClassBase + 9
)

// Image processing class control ids.
const (
	CIDImageProcClassBase uint32 = CtrlClassImageProc | 0x900
	CIDLinkFreq                  = CIDImageProcClassBase + 1
	CIDPixelRate                 = CIDImageProcClassBase + 2
	CIDTestPattern               = CIDImageProcClassBase + 3
	CIDDeinterlacingMode         = CIDImageProcClassBase + 4
	CIDDigitalGain               = CIDImageProcClassBase + 5
)

// Device capability bits from struct v4l2_capability.
const (
	CapVideoCapture uint32 = 0x00000001
	CapStreaming    uint32 = 0x04000000
)

// Streaming parameter bits from struct v4l2_captureparm.
const (
	CapTimePerFrame uint32 = 0x1000
	ModeHighQuality uint32 = 0x0001
)

// BufTypeVideoCapture selects the single-planar capture queue in Format and
// StreamParm requests.
const BufTypeVideoCapture uint32 = 1

// Frame size and frame interval enumeration shapes.
const (
	FrameSizeTypeDiscrete     uint32 = 1
	FrameIntervalTypeDiscrete uint32 = 1
)

// Event types and subscription flags.
const (
	EventTypeCtrl uint32 = 3

	EventSubFlagSendInitial   uint32 = 1 << 0
	EventSubFlagAllowFeedback uint32 = 1 << 1
)

// Control-change bits in EventCtrl.Changes.
const (
	EventCtrlChValue      uint32 = 1 << 0
	EventCtrlChFlags      uint32 = 1 << 1
	EventCtrlChRange      uint32 = 1 << 2
	EventCtrlChDimensions uint32 = 1 << 3
)
