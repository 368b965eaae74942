// Command scheme runs the interactive read-eval-print loop described in
// spec.md section 6, reading from standard input by default or from a
// file named with -input.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/adambiltcliffe/scheme/config"
	"github.com/adambiltcliffe/scheme/repl"
)

func main() {
	var (
		inputPath       = flag.String("input", "", "Path to a source file to run instead of stdin")
		gcVerbose       = flag.Bool("gc-verbose", false, "Log a summary after every collection")
		heapInitialSize = flag.Int("heap-initial-capacity", 64, "Number of arena cells to pre-allocate")
	)
	flag.Parse()

	in := os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("can't read input file: %s", err.Error())
		}
		defer f.Close()
		in = f
	}

	cfg := config.New()
	cfg.SetBool("gc.verbose", *gcVerbose)
	cfg.SetInt("heap.initial_capacity", *heapInitialSize)

	if err := repl.RunWithConfig(in, os.Stdout, cfg); err != nil {
		log.Fatal(err)
	}
}
