// mandelbrot renders a view of the Mandelbrot set serially and with a fixed number of
// worker goroutines, checks that both images are identical and reports the speedup.
//
// Build with -tags threadtiming to append per-worker timings to a CSV log.

package main

import (
	"log"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("FATAL: %v", err)
		os.Exit(1)
	}
}
