package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sync"
	"time"
)

// startCPUProfile writes a CPU profile to path until the returned stop
// function runs. Stop may be called more than once; only the first call
// finalizes the file.
func startCPUProfile(path string) (stop func(), err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating CPU profile %q: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	started := time.Now()
	log.Printf("CPU profiling to %s", path)

	var once sync.Once
	stop = func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Printf("closing CPU profile %s: %v", path, err)
				return
			}
			log.Printf("CPU profile written to %s (%s)", path, time.Since(started).Round(time.Millisecond))
		})
	}
	return stop, nil
}
