package game

import (
	"fmt"
	"math/bits"
)

// CardType decides which of the defender's stats a card attacks.
type CardType uint8

const (
	Physical CardType = iota
	Magical
	Exploit
	Assault
)

func (t CardType) String() string {
	switch t {
	case Physical:
		return "P"
	case Magical:
		return "M"
	case Exploit:
		return "X"
	default:
		return "A"
	}
}

// MaxStat is the largest value a card stat may hold; stats are single hex
// digits like the printed card notation.
const MaxStat = 0xF

// Card is an immutable game card: three stats, a type, and attack arrows.
type Card struct {
	Attack          uint8
	PhysicalDefense uint8
	MagicalDefense  uint8
	Type            CardType
	Arrows          Arrows
}

// PhysicalCard builds a card that attacks physical defense.
func PhysicalCard(attack, physicalDefense, magicalDefense uint8, arrows Arrows) Card {
	return Card{attack, physicalDefense, magicalDefense, Physical, arrows}
}

// MagicalCard builds a card that attacks magical defense.
func MagicalCard(attack, physicalDefense, magicalDefense uint8, arrows Arrows) Card {
	return Card{attack, physicalDefense, magicalDefense, Magical, arrows}
}

// ExploitCard builds a card that attacks the defender's weaker defense.
func ExploitCard(attack, physicalDefense, magicalDefense uint8, arrows Arrows) Card {
	return Card{attack, physicalDefense, magicalDefense, Exploit, arrows}
}

// AssaultCard builds a card that attacks the defender's weakest stat with
// its own highest.
func AssaultCard(attack, physicalDefense, magicalDefense uint8, arrows Arrows) Card {
	return Card{attack, physicalDefense, magicalDefense, Assault, arrows}
}

// String renders the card in the printed notation: attack, type letter,
// both defenses, then the arrows.
func (c Card) String() string {
	return fmt.Sprintf("%X%v%X%X+%v", c.Attack, c.Type, c.PhysicalDefense, c.MagicalDefense, c.Arrows)
}

func (c Card) validate() error {
	if c.Attack > MaxStat || c.PhysicalDefense > MaxStat || c.MagicalDefense > MaxStat {
		return fmt.Errorf("card %v: stats must be within 0..%d", c, MaxStat)
	}
	return nil
}

// HandSize is the most cards a hand can hold.
const HandSize = 5

// Hand holds a player's unplayed cards. Cards keep their index for the whole
// match; playing one clears its presence bit, so it can leave exactly once.
type Hand struct {
	cards   [HandSize]Card
	present uint8
}

// NewHand builds a hand from up to HandSize cards.
func NewHand(cards ...Card) Hand {
	if len(cards) > HandSize {
		panic(fmt.Sprintf("hand of %d cards, at most %d allowed", len(cards), HandSize))
	}
	var h Hand
	for i, c := range cards {
		h.cards[i] = c
		h.present |= 1 << i
	}
	return h
}

// Card returns the card at index i and whether it is still unplayed.
func (h Hand) Card(i int) (Card, bool) {
	if i < 0 || i >= HandSize || h.present&(1<<i) == 0 {
		return Card{}, false
	}
	return h.cards[i], true
}

func (h *Hand) remove(i int) {
	h.present &^= 1 << i
}

// IsEmpty reports whether every card has been played.
func (h Hand) IsEmpty() bool {
	return h.present == 0
}

// Size returns how many cards are left.
func (h Hand) Size() int {
	return bits.OnesCount8(h.present)
}
