// Package netlist defines the cell/net hypergraph model partitioned by the
// FM engine in internal/fm.
package netlist

import (
	"github.com/Davinais/FM-Heuristic/internal/buckets"
	"github.com/Davinais/FM-Heuristic/pkg/errors"
)

// CellID is a dense, zero-based index assigned in first-seen order during
// parsing. It never changes after construction.
type CellID int

// NetID is a dense, zero-based index assigned in net-appearance order.
type NetID int

// Cell is a unit-size vertex of the hypergraph.
type Cell struct {
	ID   CellID
	Name string
	Part int // 0 or 1
	Gain int // bounded in magnitude by len(Nets)
	Nets []NetID

	// Node is this cell's bucket-list node. It is allocated once, at
	// parse time, and lives as long as the cell; internal/buckets
	// relinks it on every move, never reallocates it.
	Node *buckets.Node
}

// Net is a hyperedge connecting two or more cells.
type Net struct {
	ID    NetID
	Name  string
	Cells []CellID

	// PartCount[p] is the number of distinct cells of this net currently
	// in part p. PartCount[0]+PartCount[1] == len(Cells) always.
	PartCount [2]int
}

// Cut reports whether this net currently spans both parts.
func (n *Net) Cut() bool {
	return n.PartCount[0] > 0 && n.PartCount[1] > 0
}

// Netlist owns every Cell and Net for the lifetime of the partitioner. It
// is built once by a parser and then mutated in place by successive FM
// passes; it never reallocates cells or nets.
type Netlist struct {
	Cells []*Cell
	Nets  []*Net

	nameToCell map[string]CellID
	nameToNet  map[string]NetID

	// PartSize[p] is the number of cells currently assigned to part p.
	PartSize [2]int
}

// New creates an empty Netlist ready for incremental construction by a
// parser.
func New() *Netlist {
	return &Netlist{
		Cells:      make([]*Cell, 0, 64),
		Nets:       make([]*Net, 0, 64),
		nameToCell: make(map[string]CellID),
		nameToNet:  make(map[string]NetID),
	}
}

// CellCount returns the number of cells in the netlist.
func (nl *Netlist) CellCount() int { return len(nl.Cells) }

// NetCount returns the number of nets in the netlist.
func (nl *Netlist) NetCount() int { return len(nl.Nets) }

// Cell returns the cell with the given id.
func (nl *Netlist) Cell(id CellID) *Cell { return nl.Cells[id] }

// Net returns the net with the given id.
func (nl *Netlist) Net(id NetID) *Net { return nl.Nets[id] }

// EnsureCell returns the id of the cell with the given name, creating it
// (assigning it to initialPart) if this is the first time the name has
// been seen. initialPart is only consulted on creation.
func (nl *Netlist) EnsureCell(name string, initialPart int) (id CellID, created bool) {
	if existing, ok := nl.nameToCell[name]; ok {
		return existing, false
	}

	id = CellID(len(nl.Cells))
	cell := &Cell{
		ID:   id,
		Name: name,
		Part: initialPart,
		Node: &buckets.Node{CellID: int(id)},
	}
	nl.Cells = append(nl.Cells, cell)
	nl.nameToCell[name] = id
	nl.PartSize[initialPart]++

	return id, true
}

// AddNet registers a new net with the given name and returns its id. The
// net starts with no cells; call AddPin to attach cells to it.
func (nl *Netlist) AddNet(name string) NetID {
	id := NetID(len(nl.Nets))
	nl.Nets = append(nl.Nets, &Net{ID: id, Name: name})
	nl.nameToNet[name] = id
	return id
}

// AddPin attaches cell to net exactly once: it appends the net to the
// cell's adjacency, the cell to the net's cell list, and bumps the net's
// partCount for the cell's current part. Callers (the parser) are
// responsible for not calling this twice for the same (net, cell) pair —
// see parser-level per-net deduplication.
func (nl *Netlist) AddPin(netID NetID, cellID CellID) {
	net := nl.Nets[netID]
	cell := nl.Cells[cellID]

	cell.Nets = append(cell.Nets, netID)
	net.Cells = append(net.Cells, cellID)
	net.PartCount[cell.Part]++
}

// CutSize recomputes the cut size from scratch by scanning every net. This
// is the ground truth used at pass boundaries; the engine otherwise tracks
// cutSize incrementally for speed.
func (nl *Netlist) CutSize() int {
	cut := 0
	for _, n := range nl.Nets {
		if n.Cut() {
			cut++
		}
	}
	return cut
}

// CheckInvariants re-derives every per-net and per-part counter from the
// current cell assignment and panics via pkg/errors.Invariant if anything
// disagrees. It is a programmer-error detector, not part of the normal
// control flow; only tests call it, the driver does not.
func (nl *Netlist) CheckInvariants() {
	wantPartSize := [2]int{}
	wantNetPart := make([][2]int, len(nl.Nets))

	for _, c := range nl.Cells {
		wantPartSize[c.Part]++
	}
	for _, n := range nl.Nets {
		seen := make(map[CellID]bool, len(n.Cells))
		for _, cid := range n.Cells {
			if seen[cid] {
				continue
			}
			seen[cid] = true
			wantNetPart[n.ID][nl.Cells[cid].Part]++
		}
	}

	for p := 0; p < 2; p++ {
		if nl.PartSize[p] != wantPartSize[p] {
			errors.Invariant("partSize[%d] tracked as %d, recomputed %d", p, nl.PartSize[p], wantPartSize[p])
		}
	}
	for _, n := range nl.Nets {
		for p := 0; p < 2; p++ {
			if n.PartCount[p] != wantNetPart[n.ID][p] {
				errors.Invariant("net %q partCount[%d] tracked as %d, recomputed %d", n.Name, p, n.PartCount[p], wantNetPart[n.ID][p])
			}
		}
		if n.PartCount[0]+n.PartCount[1] != len(uniqueCells(n.Cells)) {
			errors.Invariant("net %q partCount sum %d does not match distinct cell count", n.Name, n.PartCount[0]+n.PartCount[1])
		}
	}
}

func uniqueCells(cells []CellID) []CellID {
	seen := make(map[CellID]bool, len(cells))
	out := make([]CellID, 0, len(cells))
	for _, c := range cells {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
