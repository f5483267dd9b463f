package engine

import (
	"testing"
)

func TestGetHeapStatistics_Nil(t *testing.T) {
	var iso *Isolate
	if got := iso.GetHeapStatistics(); got != (HeapStatistics{}) {
		t.Errorf("nil isolate stats = %+v", got)
	}
}

func TestGetHeapStatistics(t *testing.T) {
	iso := NewIsolate()
	defer iso.Dispose()

	hs := iso.GetHeapStatistics()
	if hs.NumberOfNativeContexts != 0 || hs.NumberOfDetachedContexts != 0 {
		t.Errorf("fresh isolate has contexts: %+v", hs)
	}
	if hs.TotalHeapSize == 0 || hs.UsedHeapSize == 0 || hs.HeapSizeLimit == 0 {
		t.Errorf("size fields should be populated: %+v", hs)
	}
	if hs.PeakMallocedMemory < hs.MallocedMemory {
		t.Errorf("peak %d below current %d", hs.PeakMallocedMemory, hs.MallocedMemory)
	}
	if hs.TotalHeapSizeExecutable != 0 {
		t.Errorf("TotalHeapSizeExecutable = %d", hs.TotalHeapSizeExecutable)
	}

	a := NewContext(iso, nil)
	b := NewContext(iso, nil)
	defer b.Dispose()
	if got := iso.GetHeapStatistics().NumberOfNativeContexts; got != 2 {
		t.Errorf("native contexts = %d, want 2", got)
	}

	rtn := a.RunScript("({})", "keep.js")
	if rtn.Error != nil {
		t.Fatal(rtn.Error)
	}
	a.Dispose()

	hs = iso.GetHeapStatistics()
	if hs.NumberOfNativeContexts != 1 || hs.NumberOfDetachedContexts != 1 {
		t.Errorf("after dispose: native=%d detached=%d, want 1 and 1",
			hs.NumberOfNativeContexts, hs.NumberOfDetachedContexts)
	}

	rtn.Value.Dispose()
	if got := iso.GetHeapStatistics().NumberOfDetachedContexts; got != 0 {
		t.Errorf("detached contexts = %d after releasing the last value", got)
	}
}

func TestGetHeapStatistics_ConfiguredLimit(t *testing.T) {
	iso := NewIsolateWithConfig(&Config{HeapSizeLimit: 1 << 40})
	defer iso.Dispose()

	hs := iso.GetHeapStatistics()
	if hs.HeapSizeLimit != 1<<40 {
		t.Errorf("HeapSizeLimit = %d", hs.HeapSizeLimit)
	}
	// Used size and the limit come from the same snapshot.
	if hs.TotalAvailableSize != hs.HeapSizeLimit-hs.UsedHeapSize {
		t.Errorf("available = %d, limit = %d, used = %d", hs.TotalAvailableSize, hs.HeapSizeLimit, hs.UsedHeapSize)
	}
}
