//go:build linux

package collector

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const drmRoot = "/sys/class/drm"

// sysfsRegistry lists DRM cards that expose gpu_busy_percent (amdgpu, i915 on newer kernels).
type sysfsRegistry struct {
	root string
}

// NewDeviceRegistry returns the sysfs DRM registry.
func NewDeviceRegistry() DeviceRegistry {
	return sysfsRegistry{root: drmRoot}
}

func (r sysfsRegistry) Accelerators() (DeviceIterator, error) {
	cards, err := filepath.Glob(filepath.Join(r.root, "card[0-9]*"))
	if err != nil {
		return nil, err
	}
	var devices []Device
	for _, card := range cards {
		// Skip connector entries such as card0-HDMI-A-1.
		if strings.Contains(filepath.Base(card), "-") {
			continue
		}
		devices = append(devices, sysfsCard{path: filepath.Join(card, "device")})
	}
	return newSliceIterator(devices), nil
}

type sysfsCard struct {
	path string
}

func (c sysfsCard) PerformanceStatistics() (PropertyBag, bool) {
	data, err := os.ReadFile(filepath.Join(c.path, "gpu_busy_percent"))
	if err != nil {
		return nil, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return nil, false
	}
	return PropertyBag{"gpu_busy_percent": v}, true
}

func (sysfsCard) Release() {}
