package cmdutils

import (
	"fmt"
	"runtime"
	"time"

	"github.com/fatih/color"
)

// StartMemLogs prints heap usage every second until onEnd is called.
func StartMemLogs() (onEnd func()) {
	globalStart := time.Now()
	ticker := time.NewTicker(time.Second)
	done := make(chan struct{})

	log := func() {
		timeSinceStartMin := int(time.Since(globalStart).Minutes())
		fmt.Fprintf(color.Output, "[%sm][%vMB] utilization\n", color.YellowString("%v", timeSinceStartMin), color.YellowString("%v", getAllocatedMemMB()))
	}

	go func() {
		for {
			select {
			case <-ticker.C:
				log()
			case <-done:
				return
			}
		}
	}()

	log()

	return func() {
		ticker.Stop()
		close(done)
	}
}

func getAllocatedMemMB() int {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int(m.HeapAlloc / 1024 / 1024)
}
