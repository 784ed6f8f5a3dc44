// Package report formats a partitioning run for human consumption. It is
// deliberately separate from internal/fm: the driver logs one line per pass
// (best move and accumulated gain), this package covers the final summary
// (cut size, cell count, net count, |A|, |B|).
package report

import (
	"github.com/Davinais/FM-Heuristic/internal/fm"
	"github.com/Davinais/FM-Heuristic/pkg/utils"
)

// PrintSummary writes the final human-readable summary for a completed
// Driver.Run to log, in an "=== Section ===" banner style.
func PrintSummary(log utils.Logger, s fm.Summary) {
	log.Info("=== Partition Summary ===")
	log.Info("Cut size:   %d", s.CutSize)
	log.Info("Cells:      %d", s.CellNum)
	log.Info("Nets:       %d", s.NetNum)
	log.Info("Passes run: %d", s.Passes)
	log.Info("|A| = %d, |B| = %d", s.PartSize[0], s.PartSize[1])
}

// PrintPassHistory writes one line per recorded pass, in order, at debug
// level. Useful with --verbose when the driver's live logging scrolled
// past.
func PrintPassHistory(log utils.Logger, reports []fm.Report) {
	log.Debug("=== Pass History ===")
	for i, r := range reports {
		log.Debug("pass %d: moves=%d bestMove=%d accGain=%d productive=%t",
			i+1, r.MoveNum, r.BestMoveNum, r.MaxAccGain, r.Productive())
	}
}
