package game

import (
	"errors"
	"fmt"
	"sync"
)

// Digit identifies which of a card's stat digits a battler rolls with.
type Digit uint8

const (
	DigitAttack Digit = iota
	DigitPhysicalDefense
	DigitMagicalDefense
)

func (d Digit) String() string {
	switch d {
	case DigitAttack:
		return "attack"
	case DigitPhysicalDefense:
		return "physical defense"
	default:
		return "magical defense"
	}
}

// BattleWinner is the outcome of a battle. WinnerNone marks a tied roll,
// which costs the attacker the battle just like a defender win.
type BattleWinner uint8

const (
	WinnerNone BattleWinner = iota
	WinnerAttacker
	WinnerDefender
)

func (w BattleWinner) String() string {
	switch w {
	case WinnerAttacker:
		return "attacker"
	case WinnerDefender:
		return "defender"
	default:
		return "none"
	}
}

// Outcome is one branch of a pending battle's distribution.
type Outcome struct {
	Winner      BattleWinner
	Probability float64
}

// RollRequest describes the random numbers one battler needs: Count draws,
// each uniform over [Min, Max].
type RollRequest struct {
	Count int
	Min   int
	Max   int
}

type battleKind uint8

const (
	battleOriginal battleKind = iota
	battleOriginalApprox
	battleDice
	battleDeterministic
)

// BattleSystem decides battles. It answers two questions: how likely the
// attacker is to win given the two stat digits, and how drawn random numbers
// turn into concrete rolls. Build one with NewOriginal, NewOriginalApprox,
// NewDice or NewDeterministic; the zero value is rejected by NewGame.
type BattleSystem struct {
	kind  battleKind
	sides int
	table *[16][16]float64
}

// NewOriginal replicates the console game's battle mechanic. Each battler
// draws two bytes: the first expands the stat digit into a point inside its
// 16 value band, the second knocks that point back down.
func NewOriginal() BattleSystem {
	return BattleSystem{kind: battleOriginal, table: originalWinTable()}
}

// NewOriginalApprox is the original mechanic backed by its precomputed win
// table. It rolls and resolves exactly like NewOriginal and exists so
// configurations can name the tabled variant explicitly.
func NewOriginalApprox() BattleSystem {
	return BattleSystem{kind: battleOriginalApprox, table: originalWinTable()}
}

// NewDice has each battler roll stat many dice and sum them. Sides must be
// between 2 and 16 so the highest possible sum still fits a byte.
func NewDice(sides int) (BattleSystem, error) {
	if sides < 2 || sides > 16 {
		return BattleSystem{}, fmt.Errorf("dice battle system needs between 2 and 16 sides, got %d", sides)
	}
	return BattleSystem{kind: battleDice, sides: sides, table: diceWinTable(sides)}, nil
}

// NewDeterministic removes chance entirely: each battler's roll is its stat
// digit, so the higher digit always wins and ties go to the defender.
func NewDeterministic() BattleSystem {
	return BattleSystem{kind: battleDeterministic}
}

func (s BattleSystem) String() string {
	switch s.kind {
	case battleOriginalApprox:
		return "original-approx"
	case battleDice:
		return fmt.Sprintf("dice(%d)", s.sides)
	case battleDeterministic:
		return "deterministic"
	default:
		return "original"
	}
}

func (s BattleSystem) validate() error {
	if s.kind != battleDeterministic && s.table == nil {
		return errors.New("battle system must be built with one of its constructors")
	}
	return nil
}

// WinProbability returns the probability that the attacker, rolling with
// attackStat, beats a defender rolling with defendStat.
func (s BattleSystem) WinProbability(attackStat, defendStat uint8) float64 {
	if s.kind == battleDeterministic {
		if attackStat > defendStat {
			return 1
		}
		return 0
	}
	return s.table[attackStat][defendStat]
}

// RollRequest returns the numbers to draw for a battler rolling with stat.
func (s BattleSystem) RollRequest(stat uint8) RollRequest {
	switch s.kind {
	case battleDice:
		return RollRequest{Count: int(stat), Min: 1, Max: s.sides}
	case battleDeterministic:
		return RollRequest{}
	default:
		return RollRequest{Count: 2, Min: 0, Max: 255}
	}
}

// resolve turns one battler's drawn numbers into its roll.
func (s BattleSystem) resolve(stat uint8, numbers []int) (int, error) {
	req := s.RollRequest(stat)
	if len(numbers) != req.Count {
		return 0, fmt.Errorf("battler rolling with stat %X needs %d numbers, got %d", stat, req.Count, len(numbers))
	}
	for _, n := range numbers {
		if n < req.Min || n > req.Max {
			return 0, fmt.Errorf("battle number %d outside [%d, %d]", n, req.Min, req.Max)
		}
	}
	switch s.kind {
	case battleDice:
		roll := 0
		for _, n := range numbers {
			roll += n
		}
		return roll, nil
	case battleDeterministic:
		return int(stat), nil
	default:
		return resolveRoll(stat, uint8(numbers[0]), uint8(numbers[1])), nil
	}
}

// AttackStat selects the digit an attacking card rolls with. Assault cards
// attack with their strongest digit, every other type attacks with the
// attack digit.
func AttackStat(attacker Card) (uint8, Digit) {
	if attacker.Type == Assault {
		switch {
		case attacker.MagicalDefense > attacker.Attack && attacker.MagicalDefense > attacker.PhysicalDefense:
			return attacker.MagicalDefense, DigitMagicalDefense
		case attacker.PhysicalDefense > attacker.Attack:
			return attacker.PhysicalDefense, DigitPhysicalDefense
		default:
			return attacker.Attack, DigitAttack
		}
	}
	return attacker.Attack, DigitAttack
}

// DefendStat selects the digit the defending card rolls with. The attacker's
// type picks the target: physical and magical hit the matching defense,
// exploit hits the weaker defense and assault hits the weakest digit of all
// three.
func DefendStat(attacker, defender Card) (uint8, Digit) {
	switch attacker.Type {
	case Physical:
		return defender.PhysicalDefense, DigitPhysicalDefense
	case Magical:
		return defender.MagicalDefense, DigitMagicalDefense
	case Exploit:
		if defender.PhysicalDefense < defender.MagicalDefense {
			return defender.PhysicalDefense, DigitPhysicalDefense
		}
		return defender.MagicalDefense, DigitMagicalDefense
	default:
		switch {
		case defender.Attack < defender.PhysicalDefense && defender.Attack < defender.MagicalDefense:
			return defender.Attack, DigitAttack
		case defender.PhysicalDefense < defender.MagicalDefense:
			return defender.PhysicalDefense, DigitPhysicalDefense
		default:
			return defender.MagicalDefense, DigitMagicalDefense
		}
	}
}

func battleWinnerFromRolls(attack, defend int) BattleWinner {
	switch {
	case attack > defend:
		return WinnerAttacker
	case attack < defend:
		return WinnerDefender
	default:
		return WinnerNone
	}
}

// resolveRoll plays out the original mechanic for one battler: the stat
// digit spans the band [stat<<4, stat<<4|0xF], the first number picks a
// point in the band and the second number subtracts a share of it.
func resolveRoll(stat, num0, num1 uint8) int {
	lo := stat << 4
	hi := lo | 0xF
	stat1 := mapNumberToRange(num0, lo, hi)
	stat2 := mapNumberToRange(num1, 0, stat1)
	return int(stat1 - stat2)
}

// mapNumberToRange scales a byte onto [min, max]. The fixed point arithmetic
// replicates the console game's scaling, including its uneven rounding, so
// the derived win table matches the mechanic it models.
func mapNumberToRange(num, min, max uint8) uint8 {
	if min == 0 && max == 255 {
		return num
	}
	if min == 0 {
		return uint8(uint16(num) * uint16(max) >> 8)
	}
	return min + uint8(uint16(num)*uint16(max-min+1)>>8)
}

var (
	originalOnce      sync.Once
	originalTableData *[16][16]float64
)

// originalWinTable enumerates all 65536 number pairs per stat digit to get
// each digit's exact roll distribution, then folds the distributions into a
// 16x16 attacker win table. Computed once and shared.
func originalWinTable() *[16][16]float64 {
	originalOnce.Do(func() {
		var dists [16][]float64
		for v := 0; v < 16; v++ {
			lo := uint8(v << 4)
			hi := lo | 0xF
			var counts [256]int
			for n0 := 0; n0 < 256; n0++ {
				stat1 := mapNumberToRange(uint8(n0), lo, hi)
				for n1 := 0; n1 < 256; n1++ {
					counts[stat1-mapNumberToRange(uint8(n1), 0, stat1)]++
				}
			}
			dist := make([]float64, 256)
			for roll, count := range counts {
				dist[roll] = float64(count) / (256 * 256)
			}
			dists[v] = dist
		}
		originalTableData = deriveWinTable(&dists)
	})
	return originalTableData
}

// diceWinTable builds the roll distribution for each stat digit by
// convolving uniform dice, then folds them into the win table. A digit of
// zero rolls no dice and scores zero.
func diceWinTable(sides int) *[16][16]float64 {
	var dists [16][]float64
	dists[0] = []float64{1}
	for v := 1; v < 16; v++ {
		dist := make([]float64, v*sides+1)
		for sum, p := range dists[v-1] {
			if p == 0 {
				continue
			}
			for face := 1; face <= sides; face++ {
				dist[sum+face] += p / float64(sides)
			}
		}
		dists[v] = dist
	}
	return deriveWinTable(&dists)
}

// deriveWinTable turns per-digit roll distributions into the probability
// that the attacker's roll strictly exceeds the defender's.
func deriveWinTable(dists *[16][]float64) *[16][16]float64 {
	var table [16][16]float64
	for d := range dists {
		def := dists[d]
		// below[r] is the probability the defender rolls strictly under r.
		below := make([]float64, len(def)+1)
		for r, p := range def {
			below[r+1] = below[r] + p
		}
		for a := range dists {
			var win float64
			for r, p := range dists[a] {
				if p == 0 {
					continue
				}
				if r >= len(below) {
					win += p
					continue
				}
				win += p * below[r]
			}
			table[a][d] = win
		}
	}
	return &table
}
