// Package fm implements the Fiduccia-Mattheyses pass engine and driver
// loop: initial gain computation, the move/lock loop with incremental gain
// updates, best-prefix tracking, and rollback to the best prefix found
// during the pass.
package fm

import (
	"github.com/Davinais/FM-Heuristic/internal/buckets"
	"github.com/Davinais/FM-Heuristic/internal/netlist"
	"github.com/Davinais/FM-Heuristic/pkg/collections"
)

// PassState holds everything that is scoped to a single pass: the bucket
// lists, the lock bitset, the move stack, and the running/best cumulative
// gain. It is created fresh for every pass and discarded at the end of it;
// only the Netlist outlives a pass.
type PassState struct {
	nl      *netlist.Netlist
	buckets *buckets.Lists
	locked  *collections.Bitset

	moveStack *collections.Stack[netlist.CellID]

	accGain     int
	maxAccGain  int
	moveNum     int
	bestMoveNum int
}

// Report summarizes a completed pass for the caller (driver/reporter).
type Report struct {
	MoveNum     int
	BestMoveNum int
	MaxAccGain  int
}

// Productive reports whether this pass improved the cut: true iff the best
// accumulated gain seen during the pass was strictly positive.
func (r Report) Productive() bool { return r.MaxAccGain > 0 }

func newPassState(nl *netlist.Netlist) *PassState {
	return &PassState{
		nl:        nl,
		buckets:   buckets.NewLists(),
		locked:    collections.NewBitset(nl.CellCount()),
		moveStack: collections.NewStack[netlist.CellID](nl.CellCount()),
	}
}

// minSize computes floor(cellNum * bFactor), the minimum legal size for
// either part.
func minSize(cellNum int, bFactor float64) int {
	return int(float64(cellNum) * bFactor)
}

// runPass executes one full FM pass (initial gains, move loop, rollback)
// against nl and returns a Report describing it. It mutates nl in place:
// on return, nl reflects the best-prefix partition found, and nl.PartSize
// and every net's PartCount are consistent with it.
func runPass(nl *netlist.Netlist, bFactor float64) Report {
	ps := newPassState(nl)
	ps.computeInitialGains()

	min := minSize(nl.CellCount(), bFactor)
	for {
		node := ps.buckets.MaxCandidate(nl.PartSize, min)
		if node == nil {
			break
		}
		ps.applyMove(node)
	}

	ps.rollback()

	return Report{
		MoveNum:     ps.moveNum,
		BestMoveNum: ps.bestMoveNum,
		MaxAccGain:  ps.maxAccGain,
	}
}

// computeInitialGains sets, for every cell c in part f, gain = F(c) - T(c),
// where F(c) counts nets on which c is the sole cell in its own part and
// T(c) counts nets entirely on c's own side. All cells start unlocked and
// inserted into their bucket.
func (ps *PassState) computeInitialGains() {
	for _, c := range ps.nl.Cells {
		f := c.Part
		t := 1 - f

		gain := 0
		for _, nid := range c.Nets {
			n := ps.nl.Net(nid)
			if n.PartCount[f] == 1 {
				gain++
			}
			if n.PartCount[t] == 0 {
				gain--
			}
		}
		c.Gain = gain
		ps.buckets.Insert(c.Node, c.Part, c.Gain)
	}

	ps.accGain = 0
	ps.maxAccGain = 0
	ps.moveNum = 0
	ps.bestMoveNum = 0
}

// applyMove runs one iteration of the move loop: remove the candidate from
// its bucket, flip its part, lock it, record it on the move stack, update
// the running/best cumulative gain, then propagate the four gain-update
// rules to every unlocked neighbor on each incident net.
func (ps *PassState) applyMove(node *buckets.Node) {
	cell := ps.nl.Cell(netlist.CellID(node.CellID))
	f := cell.Part
	t := 1 - f

	ps.buckets.Remove(node)
	cell.Part = t
	ps.nl.PartSize[f]--
	ps.nl.PartSize[t]++
	ps.locked.Set(int(cell.ID))

	ps.moveNum++
	ps.moveStack.Push(cell.ID)

	ps.accGain += cell.Gain
	if ps.accGain > ps.maxAccGain {
		ps.maxAccGain = ps.accGain
		ps.bestMoveNum = ps.moveNum
	}

	for _, nid := range cell.Nets {
		n := ps.nl.Net(nid)
		n.PartCount[f]--
		n.PartCount[t]++

		fc := n.PartCount[f]
		tc := n.PartCount[t]

		for _, cid := range n.Cells {
			neighbor := ps.nl.Cell(cid)
			if ps.locked.Test(int(neighbor.ID)) {
				continue
			}

			ps.buckets.Remove(neighbor.Node)

			if tc == 1 {
				neighbor.Gain++
			} else if tc == 2 && neighbor.Part == t {
				neighbor.Gain--
			}

			if fc == 0 {
				neighbor.Gain--
			} else if fc == 1 && neighbor.Part == f {
				neighbor.Gain++
			}

			ps.buckets.Insert(neighbor.Node, neighbor.Part, neighbor.Gain)
		}
	}
}

// rollback undoes every move past bestMoveNum by popping the move stack,
// restoring each cell's part, partSize, and every incident net's partCount
// (without consulting lock state), then clears the stack and both bucket
// maps. The caller folds maxAccGain into its tracked cut size using the
// returned Report.
func (ps *PassState) rollback() {
	for ps.moveStack.Len() > ps.bestMoveNum {
		cid, _ := ps.moveStack.Pop()

		cell := ps.nl.Cell(cid)
		from := cell.Part // the part the move landed it in
		to := 1 - from    // the part to restore it to

		cell.Part = to
		ps.nl.PartSize[from]--
		ps.nl.PartSize[to]++

		for _, nid := range cell.Nets {
			n := ps.nl.Net(nid)
			n.PartCount[from]--
			n.PartCount[to]++
		}
	}

	ps.moveStack.Clear()
	ps.buckets.Clear()
}
