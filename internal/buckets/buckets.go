// Package buckets implements the per-part gain-bucket structure used by a
// single FM pass: for each part p, a map from gain value to the
// head of a doubly-linked list of unlocked cells currently at that gain.
//
// Insertion and removal are O(1) given the node; finding the overall
// highest-gain legal cell scans the map's gain keys, O(G) in the number of
// distinct gain values (the map is an unordered Go map). The package
// has no notion of a cell's fields beyond its id — the caller (internal/fm)
// is responsible for keeping a node's (part, gain) in sync with the cell it
// represents before calling Insert/Remove.
package buckets

// Node is an intrusive doubly-linked-list element. Exactly one Node exists
// per cell for the lifetime of the netlist; internal/netlist allocates it
// once and this package only ever relinks it.
type Node struct {
	CellID int
	prev   *Node
	next   *Node

	inBucket bool
	part     int
	gain     int
}

// InBucket reports whether the node is currently linked into a bucket.
func (n *Node) InBucket() bool { return n.inBucket }

// Set is the per-part gain→head map plus its doubly-linked lists. One Set
// exists per part (see List, below, for the (part 0, part 1) pair an FM
// pass actually uses).
type Set struct {
	heads map[int]*Node
}

func newSet() *Set {
	return &Set{heads: make(map[int]*Node)}
}

// Lists is the pair of per-part bucket sets a single FM pass operates on.
type Lists struct {
	parts [2]*Set
}

// NewLists creates an empty pair of bucket sets, one per part.
func NewLists() *Lists {
	return &Lists{parts: [2]*Set{newSet(), newSet()}}
}

// Insert places node into the bucket for (part, gain). If that bucket is
// empty, node becomes the head. Otherwise node is spliced in as the head's
// immediate successor (O(1)); the map entry keeps pointing at the existing
// head. Ties are therefore broken deterministically: the node that opened
// the bucket stays its head and is selected first, and the nodes after it
// run newest-first.
func (l *Lists) Insert(node *Node, part, gain int) {
	node.part = part
	node.gain = gain
	node.inBucket = true

	set := l.parts[part]
	head, exists := set.heads[gain]
	if !exists {
		node.prev = nil
		node.next = nil
		set.heads[gain] = node
		return
	}

	node.prev = head
	node.next = head.next
	if head.next != nil {
		head.next.prev = node
	}
	head.next = node
}

// Remove unlinks node from whichever bucket it currently occupies. If node
// was the head of its list: when the list becomes empty the map entry at
// that gain is erased; when a successor exists, the map entry is
// repointed to it and the successor's prev is cleared.
func (l *Lists) Remove(node *Node) {
	if !node.inBucket {
		return
	}

	set := l.parts[node.part]
	if node.prev == nil {
		if node.next == nil {
			delete(set.heads, node.gain)
		} else {
			set.heads[node.gain] = node.next
			node.next.prev = nil
		}
	} else {
		node.prev.next = node.next
		if node.next != nil {
			node.next.prev = node.prev
		}
	}

	node.prev = nil
	node.next = nil
	node.inBucket = false
}

// Clear empties both part buckets without touching the nodes' CellID
// (nodes outlive the clear; only their link state is meaningless until the
// next pass re-inserts them). Clear is called at the end of every pass,
// including an unproductive one, per the driver's lifecycle contract.
func (l *Lists) Clear() {
	l.parts[0].heads = make(map[int]*Node)
	l.parts[1].heads = make(map[int]*Node)
}

// maxGain returns the head node at the highest gain value in set, or nil
// if the set is empty.
func (s *Set) maxGain() (int, *Node, bool) {
	best := 0
	var bestNode *Node
	found := false
	for g, n := range s.heads {
		if !found || g > best {
			best, bestNode, found = g, n, true
		}
	}
	return best, bestNode, found
}

// MaxCandidate applies the balance-filtered selection rule: given the two
// parts' current sizes and the minimum legal size for a
// source part, it returns the highest-gain unlocked cell whose removal
// keeps balance, or nil if no legal move exists.
//
//	both non-empty, g0 >= g1: pick part 0 if partSize[0] > minSize, else part 1
//	both non-empty, g0 <  g1: pick part 1 if partSize[1] > minSize, else part 0
//	only part p non-empty:    pick part p if partSize[p] > minSize, else none
//	neither non-empty:        none
func (l *Lists) MaxCandidate(partSize [2]int, minSize int) *Node {
	g0, n0, ok0 := l.parts[0].maxGain()
	g1, n1, ok1 := l.parts[1].maxGain()

	switch {
	case ok0 && ok1:
		if g0 >= g1 {
			if partSize[0] > minSize {
				return n0
			}
			return n1
		}
		if partSize[1] > minSize {
			return n1
		}
		return n0
	case ok0:
		if partSize[0] > minSize {
			return n0
		}
		return nil
	case ok1:
		if partSize[1] > minSize {
			return n1
		}
		return nil
	default:
		return nil
	}
}
