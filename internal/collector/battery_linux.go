//go:build linux

package collector

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const powerSupplyRoot = "/sys/class/power_supply"

type sysfsPowerSupply struct {
	root string
}

// NewPowerSourceEnumerator returns the sysfs power_supply enumerator.
func NewPowerSourceEnumerator() PowerSourceEnumerator {
	return sysfsPowerSupply{root: powerSupplyRoot}
}

// PowerSources reports each battery, with State derived from whether any
// mains supply is online.
func (s sysfsPowerSupply) PowerSources() ([]PowerSource, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var batteries []string
	onMains := false
	for _, e := range entries {
		dir := filepath.Join(s.root, e.Name())
		switch readAttr(dir, "type") {
		case "Battery":
			batteries = append(batteries, dir)
		case "Mains":
			if readAttr(dir, "online") == "1" {
				onMains = true
			}
		}
	}
	sort.Strings(batteries)

	state := BatteryPower
	if onMains {
		state = ACPower
	}

	sources := make([]PowerSource, 0, len(batteries))
	for _, dir := range batteries {
		ps := PowerSource{State: state}
		if v, err := strconv.Atoi(readAttr(dir, "capacity")); err == nil {
			ps.Capacity = &v
		}
		if status := readAttr(dir, "status"); status != "" {
			charging := status == "Charging"
			ps.IsCharging = &charging
		}
		sources = append(sources, ps)
	}
	return sources, nil
}

func readAttr(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
