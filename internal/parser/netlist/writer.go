package netlist

import (
	"bufio"
	"fmt"
	"io"

	internalnetlist "github.com/Davinais/FM-Heuristic/internal/netlist"
)

// WriteResult writes the canonical text output:
//
//	Cutsize = <n>
//	G1 <|A|>
//	<names of cells in part 0, space-separated> ;
//	G2 <|B|>
//	<names of cells in part 1, space-separated> ;
func WriteResult(w io.Writer, nl *internalnetlist.Netlist) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "Cutsize = %d\n", nl.CutSize()); err != nil {
		return err
	}

	for _, part := range [2]int{0, 1} {
		if _, err := fmt.Fprintf(bw, "G%d %d\n", part+1, nl.PartSize[part]); err != nil {
			return err
		}
		first := true
		for _, c := range nl.Cells {
			if c.Part != part {
				continue
			}
			if !first {
				if _, err := bw.WriteString(" "); err != nil {
					return err
				}
			}
			first = false
			if _, err := bw.WriteString(c.Name); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(" ;\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
