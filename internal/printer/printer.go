// Package printer renders search.Engine results as the `.`/`o` row
// text spec.md §6 defines, kept on a stream separate from structured
// logging so scripts scraping pattern output are unaffected by
// logrus's formatting (see internal/logging).
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/conwaylife-dev/ofind/internal/search"
)

// Printer writes pattern output to one io.Writer (normally stdout).
type Printer struct {
	w io.Writer
}

// New wraps w for pattern rendering.
func New(w io.Writer) *Printer { return &Printer{w: w} }

func rowString(r search.Row, width int) string {
	var b strings.Builder
	for i := width - 1; i >= 0; i-- {
		if r&(1<<uint(i)) != 0 {
			b.WriteByte('o')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Pattern renders a successful Outcome: a blank line, then the
// ancestor chain deepest to root, then either the mirrored rows of a
// row-symmetric wrap or the five columns of resolved stator
// terminate()'s DP found for an asymmetric close.
//
// Odd row symmetry shares its boundary row with the last printed
// ancestor (ofind.c's putRow treats offset-0 odd completion as
// "already printed, don't repeat it"); even symmetry has no shared
// row and mirrors every printed row. This resolves spec.md §9's open
// question about rows[2*i+1] in favour of always tracking both
// branches explicitly rather than relying on index arithmetic.
func (p *Printer) Pattern(e *search.Engine, out search.Outcome) {
	fmt.Fprintln(p.w)
	width := e.Params().TotalWidth()
	chain := e.AncestorChain(out.State)
	for _, s := range chain {
		fmt.Fprintln(p.w, rowString(e.ArenaRow(s, 0), width))
	}

	if out.Term.RowSym.Found {
		start := len(chain) - 1
		if out.Term.RowSym.Sym == search.SymOdd {
			start--
		}
		for i := start; i >= 0; i-- {
			fmt.Fprintln(p.w, rowString(e.ArenaRow(chain[i], 0), width))
		}
		return
	}

	for _, row := range out.Stator.Rows {
		fmt.Fprintln(p.w, row)
	}
}

// NoPatterns renders the give-up path: "No patterns found" followed by
// the deepest partial pattern reached (spec.md §6, §7).
func (p *Printer) NoPatterns(e *search.Engine) {
	fmt.Fprintln(p.w, "No patterns found")
	width := e.Params().TotalWidth()
	for _, s := range e.AncestorChain(e.DeepestState()) {
		fmt.Fprintln(p.w, rowString(e.ArenaRow(s, 0), width))
	}
}

// StatusLine renders the periodic "Queue full" progress line spec.md
// §6 specifies for long runs, followed by the current deepest partial
// pattern.
func (p *Printer) StatusLine(e *search.Engine, depth, deepening, usedRows, capRows int) {
	fmt.Fprintf(p.w, "Queue full, depth = %d, deepening %d, %d/%d -> %d/%d\n",
		depth, deepening, usedRows, capRows, e.ArenaLen(), e.ArenaCapacity())
	width := e.Params().TotalWidth()
	for _, s := range e.AncestorChain(e.DeepestState()) {
		fmt.Fprintln(p.w, rowString(e.ArenaRow(s, 0), width))
	}
}
