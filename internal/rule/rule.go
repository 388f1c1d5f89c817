// Package rule parses and formats the textual Bxxx/Syyy notation for
// two-state outer-totalistic cellular automaton rules, and converts it
// to and from the 18-bit mask the search core consumes.
package rule

import (
	"fmt"
	"sort"
	"strings"
)

// Life is Conway's Game of Life, B3/S23, the default rule when none is
// given. 0o10014 is the historical ofind encoding: bit 9+n set means a
// dead cell with n neighbours is born, bit n set means a live cell with
// n neighbours survives.
const Life uint32 = 0o10014

// Rule is an 18-bit outer-totalistic rule mask: bits 0..8 are survival
// counts, bits 9..17 are birth counts.
type Rule uint32

// Survives reports whether a live cell with n live neighbours survives.
func (r Rule) Survives(n int) bool {
	return r&(1<<uint(n)) != 0
}

// Born reports whether a dead cell with n live neighbours is born.
func (r Rule) Born(n int) bool {
	return r&(1<<uint(9+n)) != 0
}

// String renders the rule in Bxxx/Syyy form, digits ascending.
func (r Rule) String() string {
	var b, s []string
	for n := 0; n <= 8; n++ {
		if r.Born(n) {
			b = append(b, fmt.Sprintf("%d", n))
		}
		if r.Survives(n) {
			s = append(s, fmt.Sprintf("%d", n))
		}
	}
	return fmt.Sprintf("B%s/S%s", strings.Join(b, ""), strings.Join(s, ""))
}

// Parse converts Bxxx/Syyy text into a Rule. An empty string yields
// Life. Digits after B or after S must be in 0..8. The B and S groups
// may appear in either order, separated by '/'. Matching is case
// insensitive.
func Parse(text string) (Rule, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Rule(Life), nil
	}

	var mask uint32
	shift := -1 // -1 until we see a B or S marker
	seenB, seenS := false, false

	for _, ch := range text {
		switch {
		case ch == 'b' || ch == 'B':
			shift = 9
			seenB = true
		case ch == 's' || ch == 'S':
			shift = 0
			seenS = true
		case ch == '/':
			// no-op separator; the following group re-establishes shift via its own letter
		case ch >= '0' && ch <= '8':
			if shift < 0 {
				return 0, fmt.Errorf("rule: digit %q before B or S marker in %q", ch, text)
			}
			mask |= 1 << uint(shift+int(ch-'0'))
		case ch == '9':
			return 0, fmt.Errorf("rule: neighbour count 9 out of range (0..8) in %q", text)
		default:
			return 0, fmt.Errorf("rule: unexpected character %q in %q", ch, text)
		}
	}
	if !seenB || !seenS {
		return 0, fmt.Errorf("rule: %q must contain both a B and an S group", text)
	}
	return Rule(mask), nil
}

// Digits returns the sorted birth and survival neighbour counts, mainly
// useful for logging and tests.
func (r Rule) Digits() (born, survives []int) {
	for n := 0; n <= 8; n++ {
		if r.Born(n) {
			born = append(born, n)
		}
		if r.Survives(n) {
			survives = append(survives, n)
		}
	}
	sort.Ints(born)
	sort.Ints(survives)
	return
}
