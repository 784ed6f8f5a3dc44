package fm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Davinais/FM-Heuristic/internal/netlist"
	"github.com/Davinais/FM-Heuristic/pkg/utils"
)

var tracer = otel.Tracer("github.com/Davinais/FM-Heuristic/internal/fm")

// Driver owns the long-lived Netlist and the balance factor, and runs
// passes until one is unproductive. It is the only long-lived object
// across a run: every pass gets a fresh PassState.
type Driver struct {
	NL      *netlist.Netlist
	BFactor float64
	Logger  utils.Logger

	// CutSize is recomputed from scratch once, before the first pass, and
	// then updated incrementally after every pass.
	CutSize int

	// Passes is the number of passes run so far.
	Passes int

	// Reports records one Report per pass run, in order, for callers that
	// want the full history (e.g. the JSON report writer).
	Reports []Report
}

// NewDriver creates a Driver over nl with the given balance factor. bFactor
// must be in (0, 1); the caller (parser/config) is responsible for
// validating it before constructing the Driver.
func NewDriver(nl *netlist.Netlist, bFactor float64) *Driver {
	return &Driver{
		NL:      nl,
		BFactor: bFactor,
		Logger:  utils.GetGlobalLogger(),
	}
}

// Run computes the initial cut size and then runs passes until one is
// unproductive. It returns the final cut size (also available afterward
// as d.CutSize).
func (d *Driver) Run(ctx context.Context) int {
	ctx, span := tracer.Start(ctx, "fm.driver.run",
		trace.WithAttributes(
			attribute.Int("fm.cell_count", d.NL.CellCount()),
			attribute.Int("fm.net_count", d.NL.NetCount()),
			attribute.Float64("fm.b_factor", d.BFactor),
		))
	defer span.End()

	d.CutSize = d.NL.CutSize()

	for {
		report := d.runOnePass(ctx)
		d.Passes++
		d.Reports = append(d.Reports, report)

		d.Logger.Info("Best Move %d with Acc gain %d", report.BestMoveNum, report.MaxAccGain)
		d.Logger.Info("=============================================")

		// maxAccGain is always >= 0 (it starts at 0 and only increases),
		// so this can never push cutSize negative.
		d.CutSize -= report.MaxAccGain

		if !report.Productive() {
			break
		}
	}

	span.SetAttributes(
		attribute.Int("fm.final_cut_size", d.CutSize),
		attribute.Int("fm.passes", d.Passes),
	)

	return d.CutSize
}

func (d *Driver) runOnePass(ctx context.Context) Report {
	_, span := tracer.Start(ctx, "fm.pass", trace.WithAttributes(
		attribute.Int("fm.pass_index", d.Passes),
	))
	defer span.End()

	report := runPass(d.NL, d.BFactor)

	span.SetAttributes(
		attribute.Int("fm.move_num", report.MoveNum),
		attribute.Int("fm.best_move_num", report.BestMoveNum),
		attribute.Int("fm.acc_gain", report.MaxAccGain),
	)

	return report
}

// Summary holds the final human-readable counts for the summary line
// (cut size, cell count, net count, |A|, |B|).
type Summary struct {
	CutSize  int
	CellNum  int
	NetNum   int
	PartSize [2]int
	Passes   int
}

// Summarize builds a Summary from the driver's current state. Call it
// after Run.
func (d *Driver) Summarize() Summary {
	return Summary{
		CutSize:  d.CutSize,
		CellNum:  d.NL.CellCount(),
		NetNum:   d.NL.NetCount(),
		PartSize: d.NL.PartSize,
		Passes:   d.Passes,
	}
}

// DebugDumpNets logs, at debug level, every net and the cells attached to
// it. Gated behind verbose logging rather than always running, since it
// is O(pins) and purely diagnostic.
func (d *Driver) DebugDumpNets() {
	for _, n := range d.NL.Nets {
		names := make([]string, 0, len(n.Cells))
		for _, cid := range n.Cells {
			names = append(names, d.NL.Cell(cid).Name)
		}
		d.Logger.Debug("%s: %v", n.Name, names)
	}
}

// DebugDumpCells logs, at debug level, every cell and the nets it belongs
// to.
func (d *Driver) DebugDumpCells() {
	for _, c := range d.NL.Cells {
		names := make([]string, 0, len(c.Nets))
		for _, nid := range c.Nets {
			names = append(names, d.NL.Net(nid).Name)
		}
		d.Logger.Debug("%s: %v", c.Name, names)
	}
}
