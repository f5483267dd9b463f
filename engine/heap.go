package engine

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/wippyai/js-runtime/errors"
)

// HeapStatistics is a snapshot of memory usage as seen from an isolate.
// The engine shares the Go heap, so size fields describe the process heap;
// context counts and external memory are per isolate.
type HeapStatistics struct {
	TotalHeapSize            uint64
	TotalHeapSizeExecutable  uint64
	TotalPhysicalSize        uint64
	TotalAvailableSize       uint64
	UsedHeapSize             uint64
	HeapSizeLimit            uint64
	MallocedMemory           uint64
	ExternalMemory           uint64
	PeakMallocedMemory       uint64
	NumberOfNativeContexts   uint64
	NumberOfDetachedContexts uint64
}

// GetHeapStatistics returns a heap snapshot. A nil isolate yields an
// all-zero snapshot.
func (iso *Isolate) GetHeapStatistics() HeapStatistics {
	if iso == nil {
		return HeapStatistics{}
	}

	s := iso.enter(errors.PhaseIsolate)
	defer s.exit()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	malloced := ms.Sys - ms.HeapSys
	if malloced > iso.peakMalloced {
		iso.peakMalloced = malloced
	}

	limit := iso.cfg.HeapSizeLimit
	if limit == 0 {
		if l := debug.SetMemoryLimit(-1); l > 0 && l < math.MaxInt64 {
			limit = uint64(l)
		} else {
			limit = ms.HeapSys
		}
	}
	var available uint64
	if limit > ms.HeapAlloc {
		available = limit - ms.HeapAlloc
	}

	var external uint64
	for ctx := range iso.contexts {
		external += ctx.externalBytes
	}

	return HeapStatistics{
		TotalHeapSize:            ms.HeapSys,
		TotalHeapSizeExecutable:  0, // scripts are interpreted
		TotalPhysicalSize:        ms.HeapInuse,
		TotalAvailableSize:       available,
		UsedHeapSize:             ms.HeapAlloc,
		HeapSizeLimit:            limit,
		MallocedMemory:           malloced,
		ExternalMemory:           external,
		PeakMallocedMemory:       iso.peakMalloced,
		NumberOfNativeContexts:   uint64(len(iso.contexts)),
		NumberOfDetachedContexts: uint64(len(iso.detached)),
	}
}
