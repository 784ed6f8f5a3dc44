// Package netlist (parser) reads the text netlist format: a balance
// factor on its own, followed by zero or more whitespace-delimited NET
// records terminated by a literal ";" token.
package netlist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/Davinais/FM-Heuristic/internal/netlist"
	"github.com/Davinais/FM-Heuristic/pkg/errors"
)

// ParserOptions holds configuration options for the netlist parser.
type ParserOptions struct {
	// StrictMode rejects a net that re-mentions a cell non-consecutively
	// instead of silently deduplicating it. Off by default, matching the
	// contract's "implementation may accept them" allowance.
	StrictMode bool
}

// DefaultParserOptions returns default parser options.
func DefaultParserOptions() *ParserOptions {
	return &ParserOptions{StrictMode: false}
}

// Parser implements the netlist text-format reader.
type Parser struct {
	opts *ParserOptions
}

// NewParser creates a new netlist parser.
func NewParser(opts *ParserOptions) *Parser {
	if opts == nil {
		opts = DefaultParserOptions()
	}
	return &Parser{opts: opts}
}

// Result is what Parse hands back: the constructed netlist plus the
// balance factor that was read from the input's first token.
type Result struct {
	Netlist *netlist.Netlist
	BFactor float64
}

// tokenizer walks whitespace-separated tokens across the whole reader,
// tracking a 1-based line number for error reporting. The netlist format
// is not line-anchored (a NET record may wrap), so this scans words
// rather than lines, counting newlines as they're consumed.
type tokenizer struct {
	sc      *bufio.Scanner
	line    int
	pending []string
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanLines)
	return &tokenizer{sc: sc}
}

// next returns the next token, or "", false at EOF. It is line-oriented
// under the hood (one bufio.Scanner line at a time, re-split into fields)
// purely so line counts stay accurate for error messages.
func (t *tokenizer) next() (string, bool) {
	for {
		if len(t.pending) > 0 {
			tok := t.pending[0]
			t.pending = t.pending[1:]
			return tok, true
		}
		if !t.sc.Scan() {
			return "", false
		}
		t.line++
		t.pending = fieldsOf(t.sc.Text())
	}
}

func fieldsOf(line string) []string {
	var out []string
	start := -1
	for i, r := range line {
		if r == ' ' || r == '\t' || r == '\r' {
			if start >= 0 {
				out = append(out, line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, line[start:])
	}
	return out
}

// Parse reads the netlist format from r, building nl incrementally and
// returning the parsed balance factor alongside it.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*Result, error) {
	tok := newTokenizer(r)

	bFactorTok, ok := tok.next()
	if !ok {
		return nil, errors.Wrap(errors.CodeMalformedNetlist, "empty input, expected balance factor", io.EOF)
	}
	bFactor, err := strconv.ParseFloat(bFactorTok, 64)
	if err != nil {
		return nil, errors.Wrap(errors.CodeMalformedNetlist, fmt.Sprintf("line %d: balance factor %q is not a number", tok.line, bFactorTok), err)
	}
	if bFactor <= 0 || bFactor >= 1 {
		return nil, errors.New(errors.CodeMalformedNetlist, fmt.Sprintf("line %d: balance factor %v must be in (0, 1)", tok.line, bFactor))
	}

	nl := netlist.New()
	netIndex := 0

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		keyword, ok := tok.next()
		if !ok {
			break
		}
		if keyword != "NET" {
			return nil, errors.New(errors.CodeMalformedNetlist, fmt.Sprintf("line %d: expected NET, got %q", tok.line, keyword))
		}

		netName, ok := tok.next()
		if !ok {
			return nil, errors.New(errors.CodeMalformedNetlist, fmt.Sprintf("line %d: unterminated NET record (missing name)", tok.line))
		}

		netID := nl.AddNet(netName)
		initialPart := netIndex % 2
		netIndex++

		seen := make(map[string]bool)
		prevTok := ""
		cellCount := 0
		terminated := false

		for {
			cellTok, ok := tok.next()
			if !ok {
				break
			}
			if cellTok == ";" {
				terminated = true
				break
			}

			if seen[cellTok] {
				// A consecutive repeat is always collapsed; strict mode
				// only rejects a non-consecutive one.
				if p.opts.StrictMode && cellTok != prevTok {
					return nil, errors.New(errors.CodeMalformedNetlist, fmt.Sprintf("line %d: net %q repeats cell %q non-consecutively", tok.line, netName, cellTok))
				}
				prevTok = cellTok
				continue
			}
			seen[cellTok] = true
			prevTok = cellTok

			cellID, _ := nl.EnsureCell(cellTok, initialPart)
			nl.AddPin(netID, cellID)
			cellCount++
		}

		if !terminated {
			return nil, errors.New(errors.CodeMalformedNetlist, fmt.Sprintf("line %d: unterminated NET record %q (missing ';')", tok.line, netName))
		}
		if cellCount == 0 {
			return nil, errors.New(errors.CodeMalformedNetlist, fmt.Sprintf("line %d: net %q has no cells", tok.line, netName))
		}
	}

	return &Result{Netlist: nl, BFactor: bFactor}, nil
}
