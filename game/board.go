package game

import "math/bits"

// BoardWidth and BoardSize fix the 4x4 board, cells indexed row-major 0x0
// through 0xF.
const (
	BoardWidth = 4
	BoardSize  = 16
)

// MaxBlockedCells caps how many cells a setup may block.
const MaxBlockedCells = 6

// CellSet is a bitmask over board cells. Members always iterate in ascending
// cell order, which is what keeps derived orderings deterministic.
type CellSet uint16

// NewCellSet builds a set from the given cells.
func NewCellSet(cells ...int) CellSet {
	var s CellSet
	for _, c := range cells {
		s = s.With(c)
	}
	return s
}

// With returns the set with cell added.
func (s CellSet) With(cell int) CellSet {
	return s | 1<<cell
}

// Has reports whether cell is a member.
func (s CellSet) Has(cell int) bool {
	return s&(1<<cell) != 0
}

// Count returns the number of members.
func (s CellSet) Count() int {
	return bits.OnesCount16(uint16(s))
}

// First returns the lowest member cell.
func (s CellSet) First() int {
	return bits.TrailingZeros16(uint16(s))
}

// Cells returns the members in ascending order.
func (s CellSet) Cells() []int {
	cells := make([]int, 0, s.Count())
	for c := 0; c < BoardSize; c++ {
		if s.Has(c) {
			cells = append(cells, c)
		}
	}
	return cells
}

// CellKind discriminates the three states a board cell can be in.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellBlocked
	CellOccupied
)

// Cell is a single board cell. Owner and Card are only meaningful when Kind
// is CellOccupied.
type Cell struct {
	Kind  CellKind
	Owner Player
	Card  Card
}

// Board is the 4x4 grid in row-major order. It is a plain value: assignment
// copies it.
type Board [BoardSize]Cell

// OwnedBy returns the cells holding cards owned by p.
func (b *Board) OwnedBy(p Player) CellSet {
	var s CellSet
	for c := 0; c < BoardSize; c++ {
		if b[c].Kind == CellOccupied && b[c].Owner == p {
			s = s.With(c)
		}
	}
	return s
}

// EmptyCells returns the cells a card could be placed on.
func (b *Board) EmptyCells() CellSet {
	var s CellSet
	for c := 0; c < BoardSize; c++ {
		if b[c].Kind == CellEmpty {
			s = s.With(c)
		}
	}
	return s
}
