// Command fmpart partitions a netlist read from an input file and writes the
// two-part result to an output file: fmpart <input-path> <output-path>.
//
// Exit code 0 on success; non-zero on any I/O or malformed-input failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Davinais/FM-Heuristic/internal/fm"
	parsenetlist "github.com/Davinais/FM-Heuristic/internal/parser/netlist"
	"github.com/Davinais/FM-Heuristic/internal/report"
	"github.com/Davinais/FM-Heuristic/pkg/utils"
)

var (
	verbose = flag.Bool("v", false, "Verbose output (per-pass history, net/cell dumps)")
	strict  = flag.Bool("strict", false, "Reject non-consecutive duplicate cells in a net instead of deduplicating")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-v] [-strict] <input-path> <output-path>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath, outputPath := flag.Arg(0), flag.Arg(1)

	logLevel := utils.LevelInfo
	if *verbose {
		logLevel = utils.LevelDebug
	}
	logger := utils.NewDefaultLogger(logLevel, os.Stdout)
	utils.SetGlobalLogger(logger)

	in, err := os.Open(inputPath)
	if err != nil {
		logger.Error("Failed to open input file: %v", err)
		os.Exit(1)
	}
	defer in.Close()

	opts := parsenetlist.DefaultParserOptions()
	opts.StrictMode = *strict
	result, err := parsenetlist.NewParser(opts).Parse(context.Background(), in)
	if err != nil {
		logger.Error("Failed to parse netlist: %v", err)
		os.Exit(1)
	}

	driver := fm.NewDriver(result.Netlist, result.BFactor)
	driver.Logger = logger

	if *verbose {
		driver.DebugDumpNets()
		driver.DebugDumpCells()
	}

	driver.Run(context.Background())

	report.PrintPassHistory(logger, driver.Reports)
	report.PrintSummary(logger, driver.Summarize())

	out, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file: %v", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := parsenetlist.WriteResult(out, result.Netlist); err != nil {
		logger.Error("Failed to write output file: %v", err)
		os.Exit(1)
	}
}
