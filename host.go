package main

import (
	"log"

	"github.com/df07/go-interactive-pathtracer/pkg/renderer"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// frameBufferLimit is the share of available memory a single frame may take
// before a warning is logged
const frameBufferLimit = 0.25

// hostInfo is what the render loop needs to know about the machine. Zero
// values mean the probe failed.
type hostInfo struct {
	cpuModel      string
	mhz           float64
	physicalCores int
	logicalCores  int
	totalMemory   uint64
	availMemory   uint64
}

func probeHost() hostInfo {
	var h hostInfo

	if infos, err := cpu.Info(); err != nil {
		log.Printf("Could not read CPU info: %v", err)
	} else if len(infos) > 0 {
		h.cpuModel = infos[0].ModelName
		h.mhz = infos[0].Mhz
	}
	if n, err := cpu.Counts(false); err == nil {
		h.physicalCores = n
	}
	if n, err := cpu.Counts(true); err == nil {
		h.logicalCores = n
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Printf("Could not read memory info: %v", err)
	} else {
		h.totalMemory = vm.Total
		h.availMemory = vm.Available
	}
	return h
}

func (h hostInfo) log() {
	model := h.cpuModel
	if model == "" {
		model = "unknown CPU"
	}
	log.Printf("Host: %s @ %.2f GHz, %d cores / %d threads, %d MiB RAM (%d MiB available)",
		model, h.mhz/1000, h.physicalCores, h.logicalCores, h.totalMemory>>20, h.availMemory>>20)
}

// rowWorkers picks the number of row workers: an explicit request wins, then
// physical cores, then zero to let the pool use runtime.NumCPU
func (h hostInfo) rowWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	return h.physicalCores
}

// frameBufferBytes is the size of the RGB buffer for res
func frameBufferBytes(res renderer.Resolution) uint64 {
	return uint64(res.Pixels()) * 3
}

// checkFrameBuffer warns when a frame would take a large share of free memory.
// It reports whether the frame fits.
func (h hostInfo) checkFrameBuffer(res renderer.Resolution) bool {
	if h.availMemory == 0 {
		return true
	}
	need := frameBufferBytes(res)
	if float64(need) > frameBufferLimit*float64(h.availMemory) {
		log.Printf("Warning: a %s frame needs %d MiB, more than %.0f%% of the %d MiB available",
			res, need>>20, frameBufferLimit*100, h.availMemory>>20)
		return false
	}
	return true
}
