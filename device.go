package cameractrls

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kevmo314/cameractrls/pkg/v4l2"
)

// v4lDirs are the directories a camera node can be addressed through, in
// preference order. Stable by-id and by-path aliases shadow the raw
// /dev/video* names.
var v4lDirs = []struct {
	dir    string
	prefix string
}{
	{"/dev/v4l/by-id/", ""},
	{"/dev/v4l/by-path/", ""},
	{"/dev/", "video"},
}

// Device is one selectable capture node.
type Device struct {
	Name     string
	Path     string
	RealPath string
	Driver   string
}

func (d Device) String() string {
	if d.RealPath != d.Path {
		return fmt.Sprintf("%q at %s -> %s", d.Name, d.Path, d.RealPath)
	}
	return fmt.Sprintf("%q at %s", d.Name, d.Path)
}

// ListDevices scans the well-known V4L2 directories for video capture
// devices. A camera reachable through several names is listed once, under
// the most stable one.
func ListDevices() []Device {
	var devices []Device
	seen := map[string]bool{}
	for _, d := range v4lDirs {
		entries, err := os.ReadDir(d.dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !strings.HasPrefix(e.Name(), d.prefix) {
				continue
			}
			path := filepath.Join(d.dir, e.Name())
			resolved := path
			if r, err := filepath.EvalSymlinks(path); err == nil {
				resolved = r
			}
			if seen[resolved] {
				continue
			}
			dev, err := v4l2.Open(path)
			if err != nil {
				continue
			}
			c, err := dev.QueryCap()
			dev.Close()
			if err != nil || c.DeviceCaps&v4l2.CapVideoCapture == 0 {
				continue
			}
			devices = append(devices, Device{
				Name:     fmt.Sprintf("%s (%s)", c.CardName(), resolved),
				Path:     path,
				RealPath: resolved,
				Driver:   c.DriverName(),
			})
			seen[resolved] = true
		}
	}
	slices.SortFunc(devices, func(a, b Device) int { return strings.Compare(a.Name, b.Name) })
	return devices
}

// presetID names a device's preset file after its stable by-id or by-path
// alias when one exists, so presets follow the camera across /dev/video*
// renumbering.
func presetID(device string) string {
	if strings.HasPrefix(device, "/dev/video") {
		if alias := findDeviceAlias(device); alias != "" {
			device = alias
		}
	}
	return filepath.Base(device)
}

func findDeviceAlias(device string) string {
	for _, d := range v4lDirs {
		entries, err := os.ReadDir(d.dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Type()&fs.ModeSymlink == 0 {
				continue
			}
			path := filepath.Join(d.dir, e.Name())
			if target, err := filepath.EvalSymlinks(path); err == nil && target == device {
				return path
			}
		}
	}
	return ""
}
