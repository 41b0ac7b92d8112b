package game

import (
	"math/bits"
	"strings"
)

// Arrows is a bitmask of the eight arrows a card can carry, one bit per
// compass direction, clockwise from the top.
type Arrows uint8

const (
	ArrowUp        Arrows = 0x80
	ArrowUpRight   Arrows = 0x40
	ArrowRight     Arrows = 0x20
	ArrowDownRight Arrows = 0x10
	ArrowDown      Arrows = 0x08
	ArrowDownLeft  Arrows = 0x04
	ArrowLeft      Arrows = 0x02
	ArrowUpLeft    Arrows = 0x01

	ArrowsNone Arrows = 0x00
	ArrowsAll  Arrows = 0xFF
)

// Has reports whether any of the given arrows are set.
func (a Arrows) Has(arrows Arrows) bool {
	return a&arrows != 0
}

// Opposite returns the arrows rotated by 180 degrees: the arrows that would
// point back at this card from the cells it points at.
func (a Arrows) Opposite() Arrows {
	return Arrows(bits.RotateLeft8(uint8(a), 4))
}

// Count returns the number of arrows set.
func (a Arrows) Count() int {
	return bits.OnesCount8(uint8(a))
}

func (a Arrows) String() string {
	if a == ArrowsNone {
		return "-"
	}
	names := []struct {
		arrow Arrows
		name  string
	}{
		{ArrowUp, "U"},
		{ArrowUpRight, "UR"},
		{ArrowRight, "R"},
		{ArrowDownRight, "DR"},
		{ArrowDown, "D"},
		{ArrowDownLeft, "DL"},
		{ArrowLeft, "L"},
		{ArrowUpLeft, "UL"},
	}
	parts := make([]string, 0, 8)
	for _, n := range names {
		if a.Has(n.arrow) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// arrowNeighbour pairs an adjacent cell with the arrow that points at it.
type arrowNeighbour struct {
	arrow Arrows
	cell  int
}

// neighbours[c] lists the in-bounds neighbours of cell c together with the
// arrow pointing at each, clockwise from the top.
var neighbours [BoardSize][]arrowNeighbour

func init() {
	dirs := []struct {
		arrow  Arrows
		dr, dc int
	}{
		{ArrowUp, -1, 0},
		{ArrowUpRight, -1, 1},
		{ArrowRight, 0, 1},
		{ArrowDownRight, 1, 1},
		{ArrowDown, 1, 0},
		{ArrowDownLeft, 1, -1},
		{ArrowLeft, 0, -1},
		{ArrowUpLeft, -1, -1},
	}
	for cell := 0; cell < BoardSize; cell++ {
		row, col := cell/BoardWidth, cell%BoardWidth
		for _, d := range dirs {
			r, c := row+d.dr, col+d.dc
			if r < 0 || r >= BoardSize/BoardWidth || c < 0 || c >= BoardWidth {
				continue
			}
			neighbours[cell] = append(neighbours[cell], arrowNeighbour{d.arrow, r*BoardWidth + c})
		}
	}
}

// arrowTargets returns the cells the given arrows point at from cell.
func arrowTargets(arrows Arrows, cell int) CellSet {
	var targets CellSet
	for _, n := range neighbours[cell] {
		if arrows.Has(n.arrow) {
			targets = targets.With(n.cell)
		}
	}
	return targets
}
