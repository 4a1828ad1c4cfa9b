package sensor

// SMC keys in priority order.
var (
	SMCCPUKeys = []string{
		// Intel die, die 2, die 3, proximity
		"TC0D", "TC0E", "TC0F", "TC0P",
		// Apple Silicon performance cores
		"Tp09", "Tp01", "Tp05", "Tp0D", "Tp0H",
		// Apple Silicon efficiency cores
		"Tp0j", "Tp0r", "Tp0n", "Tp0b", "Tp0f",
	}

	SMCGPUKeys = []string{
		"Tg0D", "Tg0P", "TG0D",
		"Tg05", "Tg0f", "Tg0j",
	}
)

// HwmonSource keys, in priority order. The acpitz_* entries are Windows
// thermal zones.
var (
	HwmonCPUKeys = []string{
		"coretemp_package_id_0",
		"k10temp_tctl",
		"k10temp_tdie",
		"zenpower_tdie",
		"cpu_thermal",
		"coretemp_core_0",
		"acpitz_cpuz",
		"acpitz",
	}

	HwmonGPUKeys = []string{
		"amdgpu_edge",
		"amdgpu_junction",
		"nouveau",
		"radeon",
		"acpitz_gfxz",
	}
)
