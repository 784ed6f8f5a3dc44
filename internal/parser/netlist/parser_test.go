package netlist

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davinais/FM-Heuristic/pkg/errors"
)

func parse(t *testing.T, input string, opts *ParserOptions) (*Result, error) {
	t.Helper()
	return NewParser(opts).Parse(context.Background(), strings.NewReader(input))
}

func TestParse_BasicTwoNets(t *testing.T) {
	input := "0.45\nNET n0 a b ;\nNET n1 b c ;\n"
	res, err := parse(t, input, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.45, res.BFactor)
	assert.Equal(t, 3, res.Netlist.CellCount())
	assert.Equal(t, 2, res.Netlist.NetCount())
}

func TestParse_AlternatingInitialBipartition(t *testing.T) {
	input := "0.45\nNET n0 a ;\nNET n1 b ;\n"
	res, err := parse(t, input, nil)
	require.NoError(t, err)

	a := res.Netlist.Cells[0]
	b := res.Netlist.Cells[1]
	assert.Equal(t, 0, a.Part)
	assert.Equal(t, 1, b.Part)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := parse(t, "", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Code: errors.CodeMalformedNetlist})
}

func TestParse_InvalidBFactor_NotANumber(t *testing.T) {
	_, err := parse(t, "abc\nNET n0 a b ;\n", nil)
	require.Error(t, err)
}

func TestParse_InvalidBFactor_OutOfRange(t *testing.T) {
	_, err := parse(t, "1.0\nNET n0 a b ;\n", nil)
	require.Error(t, err)

	_, err = parse(t, "0\nNET n0 a b ;\n", nil)
	require.Error(t, err)
}

func TestParse_MissingKeyword(t *testing.T) {
	_, err := parse(t, "0.45\nFOO n0 a b ;\n", nil)
	require.Error(t, err)
}

func TestParse_UnterminatedNet(t *testing.T) {
	_, err := parse(t, "0.45\nNET n0 a b\n", nil)
	require.Error(t, err)
}

func TestParse_NetWithNoCells(t *testing.T) {
	_, err := parse(t, "0.45\nNET n0 ;\n", nil)
	require.Error(t, err)
}

func TestParse_DuplicateCellInNet_DedupsByDefault(t *testing.T) {
	res, err := parse(t, "0.45\nNET n0 a b a ;\n", nil)
	require.NoError(t, err)

	n0 := res.Netlist.Net(0)
	assert.Len(t, n0.Cells, 2)
}

func TestParse_DuplicateCellInNet_StrictModeRejects(t *testing.T) {
	opts := &ParserOptions{StrictMode: true}
	_, err := parse(t, "0.45\nNET n0 a b a ;\n", opts)
	require.Error(t, err)
}

func TestParse_WhitespaceAcrossLines(t *testing.T) {
	input := "0.45\nNET n0\n  a   b\n;\n"
	res, err := parse(t, input, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Netlist.CellCount())
}

func TestParse_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser(nil).Parse(ctx, strings.NewReader("0.45\nNET n0 a b ;\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultParserOptions(t *testing.T) {
	opts := DefaultParserOptions()
	assert.False(t, opts.StrictMode)
}
