package gamemaster

import (
	"sort"

	"golang.org/x/exp/rand"

	"tetra/game"
)

// RandomSetup deals a fresh match: up to MaxBlockedCells blocked cells, two
// hands of similar estimated strength, and a random first player.
func RandomSetup(system game.BattleSystem, rng *rand.Rand) game.Setup {
	blue, red := randomHands(rng)
	return game.Setup{
		System:   system,
		Blocked:  randomBlockedCells(rng),
		HandBlue: blue,
		HandRed:  red,
		First:    randomFirstPlayer(rng),
	}
}

func randomBlockedCells(rng *rand.Rand) game.CellSet {
	var blocked game.CellSet
	count := rng.Intn(game.MaxBlockedCells + 1)
	for i := 0; i < count; i++ {
		for {
			cell := rng.Intn(game.BoardSize)
			if !blocked.Has(cell) {
				blocked = blocked.With(cell)
				break
			}
		}
	}
	return blocked
}

// randomHands deals a large pool of candidate hands and returns the two
// whose estimated strengths lie closest together.
func randomHands(rng *rand.Rand) (blue, red []game.Card) {
	const pool = 1000
	type valued struct {
		value float64
		hand  []game.Card
	}
	hands := make([]valued, 0, pool)
	for i := 0; i < pool; i++ {
		hand := make([]game.Card, game.HandSize)
		value := 0.0
		for j := range hand {
			hand[j] = randomCard(rng)
			value += estimateCardValue(hand[j])
		}
		hands = append(hands, valued{value, hand})
	}
	sort.Slice(hands, func(i, j int) bool { return hands[i].value < hands[j].value })
	best := 1
	for i := 2; i < len(hands); i++ {
		if hands[i].value-hands[i-1].value < hands[best].value-hands[best-1].value {
			best = i
		}
	}
	return hands[best-1].hand, hands[best].hand
}

// estimateCardValue prices a card by stat total, type and arrow count. The
// estimate is rough on purpose; it only has to keep the two dealt hands in
// the same league.
func estimateCardValue(card game.Card) float64 {
	statValue := float64(card.Attack) + float64(card.PhysicalDefense) + float64(card.MagicalDefense)
	switch card.Type {
	case game.Exploit:
		statValue *= 1.75
	case game.Assault:
		statValue *= 3.25
	}
	var arrowsValue float64
	switch card.Arrows.Count() {
	case 0:
		arrowsValue = 0
	case 1, 8:
		arrowsValue = 2
	case 2, 7:
		arrowsValue = 3
	case 3, 6:
		arrowsValue = 4
	default:
		arrowsValue = 5
	}
	return statValue + arrowsValue
}

func randomCard(rng *rand.Rand) game.Card {
	var cardType game.CardType
	switch b := rng.Intn(256); {
	case b <= 101: // 40%
		cardType = game.Physical
	case b <= 203: // 40%
		cardType = game.Magical
	case b <= 241: // 15%
		cardType = game.Exploit
	default: // 5%
		cardType = game.Assault
	}
	return game.Card{
		Attack:          randomStat(rng),
		PhysicalDefense: randomStat(rng),
		MagicalDefense:  randomStat(rng),
		Type:            cardType,
		Arrows:          game.Arrows(rng.Intn(256)),
	}
}

// randomStat draws a stat digit weighted toward the middle of the range.
func randomStat(rng *rand.Rand) uint8 {
	pick := func(values ...uint8) uint8 { return values[rng.Intn(len(values))] }
	switch b := rng.Intn(256); {
	case b <= 12: // 5%
		return pick(0, 1)
	case b <= 89: // 30%
		return pick(2, 3, 4, 5)
	case b <= 204: // 45%
		return pick(6, 7, 8, 9, 10)
	case b <= 242: // 15%
		return pick(11, 12, 13)
	default: // 5%
		return pick(14, 15)
	}
}

func randomFirstPlayer(rng *rand.Rand) game.Player {
	if rng.Intn(2) == 0 {
		return game.Blue
	}
	return game.Red
}
