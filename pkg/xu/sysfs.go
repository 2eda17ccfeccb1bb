//go:build linux && (amd64 || arm64)

package xu

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	usb "github.com/kevmo314/go-usb"
)

// DeviceInfo identifies the USB device that owns a video node.
type DeviceInfo struct {
	// ID is the "vvvv:pppp" vendor:product pair in lowercase hex.
	ID string
	// SysfsPath is the USB device's directory under /sys/bus/usb/devices.
	SysfsPath string
	// Descriptors is the raw descriptor blob read from that directory.
	Descriptors []byte
}

// ResolveDevice walks sysfs from a video device node to its owning USB
// device and reads the device's identity and raw descriptors. Video nodes
// that are not backed by USB resolve to an error, which callers treat as
// "no extension units here" rather than a failure.
func ResolveDevice(videoPath string) (*DeviceInfo, error) {
	node := videoPath
	if target, err := os.Readlink(node); err == nil {
		node = target
	}
	name := filepath.Base(node)

	videoReal, err := filepath.EvalSymlinks(filepath.Join("/sys/class/video4linux", name))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", videoPath, err)
	}

	devices, err := usb.NewSysfsEnumerator().EnumerateDevices()
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", videoPath, err)
	}

	// The video node's sysfs path descends through its USB interface and
	// device directories, so every ancestor hub matches as a prefix too.
	// The longest matching device path is the camera itself.
	var owner *usb.SysfsDevice
	ownerLen := 0
	for _, d := range devices {
		devReal, err := filepath.EvalSymlinks(d.Path)
		if err != nil {
			continue
		}
		if !strings.HasPrefix(videoReal, devReal+"/") {
			continue
		}
		if len(devReal) > ownerLen {
			owner, ownerLen = d, len(devReal)
		}
	}
	if owner == nil {
		return nil, fmt.Errorf("resolve %s: no owning usb device in sysfs", videoPath)
	}

	descriptors, err := os.ReadFile(filepath.Join(owner.Path, "descriptors"))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", videoPath, err)
	}

	return &DeviceInfo{
		ID:          fmt.Sprintf("%04x:%04x", owner.VID, owner.PID),
		SysfsPath:   owner.Path,
		Descriptors: descriptors,
	}, nil
}
