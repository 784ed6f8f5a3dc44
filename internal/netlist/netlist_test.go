package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSimple(t *testing.T) *Netlist {
	t.Helper()
	nl := New()

	n0 := nl.AddNet("n0")
	a, _ := nl.EnsureCell("a", 0)
	b, _ := nl.EnsureCell("b", 1)
	nl.AddPin(n0, a)
	nl.AddPin(n0, b)

	n1 := nl.AddNet("n1")
	c, _ := nl.EnsureCell("c", 0)
	nl.AddPin(n1, a)
	nl.AddPin(n1, c)

	return nl
}

func TestEnsureCell_CreatesOnce(t *testing.T) {
	nl := New()

	id1, created1 := nl.EnsureCell("x", 0)
	require.True(t, created1)
	assert.Equal(t, CellID(0), id1)

	id2, created2 := nl.EnsureCell("x", 1)
	assert.False(t, created2)
	assert.Equal(t, id1, id2)

	// initialPart is only honored the first time; the cell stays in part 0.
	assert.Equal(t, 0, nl.Cell(id1).Part)
	assert.Equal(t, 1, nl.CellCount())
	assert.Equal(t, 1, nl.PartSize[0])
	assert.Equal(t, 0, nl.PartSize[1])
}

func TestAddNet_DenseIDs(t *testing.T) {
	nl := New()
	n0 := nl.AddNet("first")
	n1 := nl.AddNet("second")
	assert.Equal(t, NetID(0), n0)
	assert.Equal(t, NetID(1), n1)
	assert.Equal(t, 2, nl.NetCount())
}

func TestAddPin_UpdatesAdjacencyAndPartCount(t *testing.T) {
	nl := buildSimple(t)

	n0 := nl.Net(0)
	assert.Len(t, n0.Cells, 2)
	assert.Equal(t, 1, n0.PartCount[0]) // a
	assert.Equal(t, 1, n0.PartCount[1]) // b

	a := nl.Cell(0)
	assert.Equal(t, []NetID{0, 1}, a.Nets)
}

func TestNet_Cut(t *testing.T) {
	nl := buildSimple(t)

	assert.True(t, nl.Net(0).Cut()) // a(part0), b(part1)
	assert.False(t, nl.Net(1).Cut()) // a(part0), c(part0)
}

func TestCutSize(t *testing.T) {
	nl := buildSimple(t)
	assert.Equal(t, 1, nl.CutSize())
}

func TestCheckInvariants_PassesForConsistentState(t *testing.T) {
	nl := buildSimple(t)
	assert.NotPanics(t, func() { nl.CheckInvariants() })
}

func TestCheckInvariants_PanicsOnTamperedPartSize(t *testing.T) {
	nl := buildSimple(t)
	nl.PartSize[0] = 99

	assert.Panics(t, func() { nl.CheckInvariants() })
}

func TestCheckInvariants_PanicsOnTamperedPartCount(t *testing.T) {
	nl := buildSimple(t)
	nl.Net(0).PartCount[0] = 99

	assert.Panics(t, func() { nl.CheckInvariants() })
}

func TestUniqueCells(t *testing.T) {
	in := []CellID{0, 1, 0, 2, 1}
	out := uniqueCells(in)
	assert.Equal(t, []CellID{0, 1, 2}, out)
}
