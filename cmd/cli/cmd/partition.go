package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Davinais/FM-Heuristic/internal/fm"
	"github.com/Davinais/FM-Heuristic/internal/report"
	"github.com/Davinais/FM-Heuristic/internal/service"
	"github.com/Davinais/FM-Heuristic/pkg/compression"
	"github.com/Davinais/FM-Heuristic/pkg/model"
	"github.com/Davinais/FM-Heuristic/pkg/writer"
)

var (
	partitionInput      string
	partitionOutput     string
	partitionJSONReport string
	partitionCompress   bool
)

// partitionCmd represents the partition command
var partitionCmd = &cobra.Command{
	Use:   "partition",
	Short: "Partition a netlist into two balanced parts",
	Long: `Run the Fiduccia-Mattheyses engine against a netlist and write the
resulting two-part assignment.

Input and output are keys resolved against the configured storage backend
(local disk by default; Tencent COS when the config sets storage.type to cos). The
run, its final cut size, and its per-pass history are recorded through the
configured database backend.`,
	RunE: runPartition,
}

func init() {
	rootCmd.AddCommand(partitionCmd)

	binName := BinName()
	partitionCmd.Example = `  # Partition a netlist stored locally
  ` + binName + ` partition -i my.net -o my.out

  # Also emit a JSON summary
  ` + binName + ` partition -i my.net -o my.out --json-report summary.json`

	partitionCmd.Flags().StringVarP(&partitionInput, "input", "i", "", "Input netlist key (required)")
	partitionCmd.Flags().StringVarP(&partitionOutput, "output", "o", "", "Output netlist key (required)")
	partitionCmd.Flags().StringVar(&partitionJSONReport, "json-report", "", "If set, also write the run summary as JSON to this local path")
	partitionCmd.Flags().BoolVar(&partitionCompress, "compress", false, "Also write a gzip-compressed copy of the output to <output>.gz")
	partitionCmd.MarkFlagRequired("input")
	partitionCmd.MarkFlagRequired("output")
}

func runPartition(cmd *cobra.Command, args []string) error {
	log := GetLogger()

	svc, err := service.New(GetConfig(), log)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	ctx := context.Background()
	if err := svc.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer svc.Stop()

	log.Info("=== FM Partition ===")
	log.Info("Input:  %s", partitionInput)
	log.Info("Output: %s", partitionOutput)
	log.Info("")

	compressAs := compression.TypeNone
	if partitionCompress {
		compressAs = compression.TypeGzip
	}

	run, err := svc.RunPartition(ctx, partitionInput, partitionOutput, compressAs)
	if err != nil {
		return fmt.Errorf("partition run failed: %w", err)
	}

	report.PrintSummary(log, toSummary(run))

	if partitionJSONReport != "" {
		if err := writer.NewPrettyJSONWriter[any]().WriteToFile(run, partitionJSONReport); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		log.Info("JSON report written to %s", partitionJSONReport)
	}

	if partitionCompress {
		log.Info("Compressed output written to %s.gz", partitionOutput)
	}

	log.Info("")
	log.Info("=== Partition Complete ===")
	log.Info("Run UUID: %s", run.RunUUID)

	return nil
}

func toSummary(run *model.PartitionRun) fm.Summary {
	return fm.Summary{
		CutSize:  run.CutSize,
		CellNum:  run.CellCount,
		NetNum:   run.NetCount,
		PartSize: [2]int{run.PartSizeA, run.PartSizeB},
		Passes:   run.PassCount,
	}
}
