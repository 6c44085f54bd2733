package services

import (
	"strings"

	"pcforge/internal/domain"
)

// A rule checks one compatibility constraint between selected components.
// Check and Message are expr programs evaluated against an environment where
// each selected component is exposed under its env name (cpu, motherboard,
// ram, gpu, storage, psu, chassis, cooler) with its specs plus name and price.
type rule struct {
	Name    string
	Needs   []domain.Category
	Check   string
	Message string
}

var envNames = map[domain.Category]string{
	domain.CategoryCPU:         "cpu",
	domain.CategoryMotherboard: "motherboard",
	domain.CategoryRAM:         "ram",
	domain.CategoryGPU:         "gpu",
	domain.CategoryStorage:     "storage",
	domain.CategoryPowerSupply: "psu",
	domain.CategoryCase:        "chassis",
	domain.CategoryCooling:     "cooler",
}

var defaultRules = []rule{
	{
		Name:    "cpu-socket",
		Needs:   []domain.Category{domain.CategoryCPU, domain.CategoryMotherboard},
		Check:   `cpu.socket == motherboard.socket`,
		Message: `"CPU socket " + cpu.socket + " does not fit motherboard socket " + motherboard.socket`,
	},
	{
		Name:    "memory-type",
		Needs:   []domain.Category{domain.CategoryRAM, domain.CategoryMotherboard},
		Check:   `ram.memoryType == motherboard.memoryType`,
		Message: `"Motherboard takes " + motherboard.memoryType + " memory, selected RAM is " + ram.memoryType`,
	},
	{
		Name:    "board-form-factor",
		Needs:   []domain.Category{domain.CategoryMotherboard, domain.CategoryCase},
		Check:   `formFactorRank(motherboard.formFactor) <= formFactorRank(chassis.formFactor)`,
		Message: `"A " + motherboard.formFactor + " motherboard does not fit a " + chassis.formFactor + " case"`,
	},
	{
		Name:    "gpu-length",
		Needs:   []domain.Category{domain.CategoryGPU, domain.CategoryCase},
		Check:   `chassis.maxGpuLength == 0 || gpu.length <= chassis.maxGpuLength`,
		Message: `"GPU is " + string(gpu.length) + " mm long, case fits " + string(chassis.maxGpuLength) + " mm"`,
	},
	{
		Name:    "psu-wattage",
		Needs:   []domain.Category{domain.CategoryCPU, domain.CategoryGPU, domain.CategoryPowerSupply},
		Check:   `psu.wattage >= cpu.tdp + gpu.tdp + 150`,
		Message: `"Power supply delivers " + string(psu.wattage) + " W, build needs at least " + string(cpu.tdp + gpu.tdp + 150) + " W"`,
	},
	{
		Name:    "psu-form-factor",
		Needs:   []domain.Category{domain.CategoryPowerSupply, domain.CategoryCase},
		Check:   `chassis.psuFormFactor == "" || psu.formFactor == "" || psu.formFactor == chassis.psuFormFactor || chassis.psuFormFactor == "ATX"`,
		Message: `"Case takes " + chassis.psuFormFactor + " power supplies, selected unit is " + psu.formFactor`,
	},
	{
		Name:    "cooler-socket",
		Needs:   []domain.Category{domain.CategoryCPU, domain.CategoryCooling},
		Check:   `cooler.supportedSockets == "" || listHas(cooler.supportedSockets, cpu.socket)`,
		Message: `"Cooler does not support socket " + cpu.socket`,
	},
	{
		Name:    "cooler-tdp",
		Needs:   []domain.Category{domain.CategoryCPU, domain.CategoryCooling},
		Check:   `cooler.tdpRating == 0 || cooler.tdpRating >= cpu.tdp`,
		Message: `"Cooler is rated for " + string(cooler.tdpRating) + " W, CPU draws " + string(cpu.tdp) + " W"`,
	},
}

var formFactorRanks = map[string]int{"Mini-ITX": 1, "Micro-ATX": 2, "ATX": 3}

func formFactorRank(ff string) int {
	if r, ok := formFactorRanks[ff]; ok {
		return r
	}
	return 0
}

// listHas reports whether a comma separated list contains item.
func listHas(list, item string) bool {
	for _, v := range strings.Split(list, ",") {
		if strings.EqualFold(strings.TrimSpace(v), item) {
			return true
		}
	}
	return false
}
