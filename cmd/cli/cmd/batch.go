package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Davinais/FM-Heuristic/internal/service"
	"github.com/Davinais/FM-Heuristic/pkg/compression"
	"github.com/Davinais/FM-Heuristic/pkg/model"
	"github.com/Davinais/FM-Heuristic/pkg/parallel"
)

var (
	batchInputs   []string
	batchOutDir   string
	batchCompress bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Partition multiple netlists concurrently",
	Long: `Run independent partition jobs across multiple netlists in parallel.

Each input is a fully independent Driver run against its own netlist; the
engine itself is single-threaded, so batch parallelizes across files, never
within one partition run.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	binName := BinName()
	batchCmd.Example = `  # Partition three netlists, writing results into ./results
  ` + binName + ` batch -i a.net -i b.net -i c.net -o ./results

  # Also write a zstd-compressed copy of every output
  ` + binName + ` batch -i a.net -i b.net -o ./results --compress`

	batchCmd.Flags().StringArrayVarP(&batchInputs, "input", "i", nil, "Input netlist key (repeatable)")
	batchCmd.Flags().StringVarP(&batchOutDir, "output-dir", "o", "./results", "Output directory key prefix for results")
	batchCmd.Flags().BoolVar(&batchCompress, "compress", false, "Also write a zstd-compressed copy of each output to <output>.gz")
	batchCmd.MarkFlagRequired("input")
}

type batchJob struct {
	input  string
	output string
}

func runBatch(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	cfg := GetConfig()

	svc, err := service.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	ctx := context.Background()
	if err := svc.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer svc.Stop()

	jobs := make([]batchJob, len(batchInputs))
	for i, in := range batchInputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		jobs[i] = batchJob{input: in, output: filepath.Join(batchOutDir, base+".out")}
	}

	poolCfg := parallel.DefaultPoolConfig().WithWorkers(cfg.Partition.Workers)
	pool := parallel.NewWorkerPool[batchJob, *model.PartitionRun](poolCfg)

	log.Info("Running %d partition jobs across %d workers", len(jobs), poolCfg.MaxWorkers)

	compressAs := compression.TypeNone
	if batchCompress {
		compressAs = compression.TypeZstd
	}

	results := pool.ExecuteFunc(ctx, jobs, func(ctx context.Context, job batchJob) (*model.PartitionRun, error) {
		return svc.RunPartition(ctx, job.input, job.output, compressAs)
	})

	var failures int
	for _, r := range results {
		if r.Error != nil {
			failures++
			log.Error("%s: %v", r.Input.input, r.Error)
			continue
		}
		log.Info("%s -> %s: cut=%d passes=%d (%s)", r.Input.input, r.Input.output, r.Result.CutSize, r.Result.PassCount, r.Duration)
	}

	log.Info("")
	log.Info("=== Batch Complete ===")
	log.Info("%d/%d jobs succeeded", len(jobs)-failures, len(jobs))

	if failures > 0 {
		return fmt.Errorf("%d of %d partition jobs failed", failures, len(jobs))
	}
	return nil
}
