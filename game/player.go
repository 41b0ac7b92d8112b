package game

// Player identifies one of the two sides. Blue always appears first in
// setups and scores; it does not imply who moves first.
type Player uint8

const (
	Blue Player = iota
	Red
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == Blue {
		return Red
	}
	return Blue
}

func (p Player) String() string {
	if p == Blue {
		return "blue"
	}
	return "red"
}
