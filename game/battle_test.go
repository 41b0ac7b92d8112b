package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttackStat(t *testing.T) {
	t.Run("non assault types attack with the attack digit", func(t *testing.T) {
		for _, card := range []Card{
			PhysicalCard(3, 9, 9, ArrowsNone),
			MagicalCard(3, 9, 9, ArrowsNone),
			ExploitCard(3, 9, 9, ArrowsNone),
		} {
			stat, digit := AttackStat(card)
			require.Equal(t, uint8(3), stat, "Card %v should attack with its attack digit", card)
			require.Equal(t, DigitAttack, digit)
		}
	})

	t.Run("assault attacks with its highest digit", func(t *testing.T) {
		stat, digit := AttackStat(AssaultCard(2, 5, 9, ArrowsNone))
		require.Equal(t, uint8(9), stat)
		require.Equal(t, DigitMagicalDefense, digit)

		stat, digit = AttackStat(AssaultCard(2, 9, 5, ArrowsNone))
		require.Equal(t, uint8(9), stat)
		require.Equal(t, DigitPhysicalDefense, digit)

		stat, digit = AttackStat(AssaultCard(9, 2, 5, ArrowsNone))
		require.Equal(t, uint8(9), stat)
		require.Equal(t, DigitAttack, digit)
	})

	t.Run("assault resolves ties toward the attack digit", func(t *testing.T) {
		stat, digit := AttackStat(AssaultCard(5, 5, 5, ArrowsNone))
		require.Equal(t, uint8(5), stat)
		require.Equal(t, DigitAttack, digit)

		stat, digit = AttackStat(AssaultCard(3, 7, 7, ArrowsNone))
		require.Equal(t, uint8(7), stat, "Equal defenses above the attack should pick physical")
		require.Equal(t, DigitPhysicalDefense, digit)
	})
}

func TestDefendStat(t *testing.T) {
	defender := PhysicalCard(2, 3, 8, ArrowsNone)

	t.Run("physical hits physical defense", func(t *testing.T) {
		stat, digit := DefendStat(PhysicalCard(0, 0, 0, ArrowsNone), defender)
		require.Equal(t, uint8(3), stat)
		require.Equal(t, DigitPhysicalDefense, digit)
	})

	t.Run("magical hits magical defense", func(t *testing.T) {
		stat, digit := DefendStat(MagicalCard(0, 0, 0, ArrowsNone), defender)
		require.Equal(t, uint8(8), stat)
		require.Equal(t, DigitMagicalDefense, digit)
	})

	t.Run("exploit hits the weaker defense", func(t *testing.T) {
		attacker := ExploitCard(0, 0, 0, ArrowsNone)

		stat, digit := DefendStat(attacker, PhysicalCard(0, 3, 8, ArrowsNone))
		require.Equal(t, uint8(3), stat)
		require.Equal(t, DigitPhysicalDefense, digit)

		stat, digit = DefendStat(attacker, PhysicalCard(0, 8, 3, ArrowsNone))
		require.Equal(t, uint8(3), stat)
		require.Equal(t, DigitMagicalDefense, digit)

		stat, digit = DefendStat(attacker, PhysicalCard(0, 5, 5, ArrowsNone))
		require.Equal(t, uint8(5), stat, "Equal defenses should fall to magical")
		require.Equal(t, DigitMagicalDefense, digit)
	})

	t.Run("assault hits the weakest digit of all three", func(t *testing.T) {
		attacker := AssaultCard(0, 0, 0, ArrowsNone)

		stat, digit := DefendStat(attacker, PhysicalCard(2, 5, 9, ArrowsNone))
		require.Equal(t, uint8(2), stat)
		require.Equal(t, DigitAttack, digit)

		stat, digit = DefendStat(attacker, PhysicalCard(5, 2, 9, ArrowsNone))
		require.Equal(t, uint8(2), stat)
		require.Equal(t, DigitPhysicalDefense, digit)

		stat, digit = DefendStat(attacker, PhysicalCard(5, 9, 2, ArrowsNone))
		require.Equal(t, uint8(2), stat)
		require.Equal(t, DigitMagicalDefense, digit)

		stat, digit = DefendStat(attacker, PhysicalCard(3, 3, 3, ArrowsNone))
		require.Equal(t, uint8(3), stat, "Full tie should fall to magical")
		require.Equal(t, DigitMagicalDefense, digit)
	})
}

func TestNewDice(t *testing.T) {
	for _, sides := range []int{2, 6, 16} {
		_, err := NewDice(sides)
		require.NoError(t, err, "%d sides should be accepted", sides)
	}

	_, err := NewDice(1)
	require.EqualError(t, err, "dice battle system needs between 2 and 16 sides, got 1")
	_, err = NewDice(17)
	require.Error(t, err, "Sums over a byte should be rejected")
}

func TestBattleSystemValidate(t *testing.T) {
	require.Error(t, BattleSystem{}.validate(), "The zero value should be rejected")
	require.NoError(t, NewOriginal().validate())
	require.NoError(t, NewDeterministic().validate())
}

func TestBattleSystemString(t *testing.T) {
	require.Equal(t, "original", NewOriginal().String())
	require.Equal(t, "original-approx", NewOriginalApprox().String())
	dice, err := NewDice(6)
	require.NoError(t, err)
	require.Equal(t, "dice(6)", dice.String())
	require.Equal(t, "deterministic", NewDeterministic().String())
}

func TestWinProbabilityDeterministic(t *testing.T) {
	s := NewDeterministic()

	require.Equal(t, 1.0, s.WinProbability(5, 3), "Higher digit should win outright")
	require.Equal(t, 0.0, s.WinProbability(3, 5))
	require.Equal(t, 0.0, s.WinProbability(4, 4), "Ties should go to the defender")
}

func TestWinProbabilityDice(t *testing.T) {
	d2, err := NewDice(2)
	require.NoError(t, err)

	t.Run("exact coin probabilities", func(t *testing.T) {
		// 2 coins against 1: the attacker fails only by rolling 2 against a 2.
		require.Equal(t, 7.0/8, d2.WinProbability(2, 1))
		// 2 coins against 3: only a 4 against the minimum 3 wins.
		require.Equal(t, 1.0/32, d2.WinProbability(2, 3))
	})

	t.Run("one die each", func(t *testing.T) {
		d6, err := NewDice(6)
		require.NoError(t, err)
		require.InDelta(t, 5.0/12, d6.WinProbability(1, 1), 1e-12,
			"Two d6 should tie a sixth of the time, the rest splits evenly")
	})

	t.Run("digit zero rolls nothing", func(t *testing.T) {
		require.Equal(t, 0.0, d2.WinProbability(0, 0), "Zero against zero ties")
		require.Equal(t, 1.0, d2.WinProbability(1, 0), "Any roll beats no roll")
		require.Equal(t, 0.0, d2.WinProbability(0, 1))
	})

	t.Run("guaranteed ranges", func(t *testing.T) {
		require.Equal(t, 0.0, d2.WinProbability(1, 2),
			"One coin cannot beat the minimum of two coins")
	})
}

func TestWinProbabilityOriginal(t *testing.T) {
	s := NewOriginal()

	t.Run("equal digits favor the defender", func(t *testing.T) {
		for _, digit := range []uint8{0, 5, 0xF} {
			p := s.WinProbability(digit, digit)
			require.Greater(t, p, 0.0, "Digit %X against itself should stay uncertain", digit)
			require.Less(t, p, 0.5, "Ties cost the attacker, so equal digits should sit under a half")
		}
	})

	t.Run("stronger digits win more", func(t *testing.T) {
		require.Greater(t, s.WinProbability(0xF, 0), s.WinProbability(0, 0))
		require.Greater(t, s.WinProbability(0xF, 0), 0.5)
		require.Less(t, s.WinProbability(0, 0xF), 0.5)
		require.Greater(t, s.WinProbability(0, 0xF), 0.0,
			"Even the weakest digit should keep a sliver of a chance")
	})

	t.Run("complements never exceed one", func(t *testing.T) {
		for a := uint8(0); a <= MaxStat; a++ {
			for d := uint8(0); d <= MaxStat; d++ {
				p, q := s.WinProbability(a, d), s.WinProbability(d, a)
				require.GreaterOrEqual(t, p, 0.0)
				require.LessOrEqual(t, p, 1.0)
				require.LessOrEqual(t, p+q, 1.0+1e-9,
					"Attacker and defender wins for %X vs %X should leave room for ties", a, d)
			}
		}
	})

	t.Run("approx variant shares the table", func(t *testing.T) {
		approx := NewOriginalApprox()
		for _, pair := range [][2]uint8{{0, 0}, {7, 3}, {0xF, 0xF}} {
			require.Equal(t, s.WinProbability(pair[0], pair[1]),
				approx.WinProbability(pair[0], pair[1]))
		}
	})
}

func TestRollRequest(t *testing.T) {
	require.Equal(t, RollRequest{Count: 2, Min: 0, Max: 255}, NewOriginal().RollRequest(0xF))
	require.Equal(t, RollRequest{Count: 2, Min: 0, Max: 255}, NewOriginalApprox().RollRequest(0))

	d6, err := NewDice(6)
	require.NoError(t, err)
	require.Equal(t, RollRequest{Count: 3, Min: 1, Max: 6}, d6.RollRequest(3))
	require.Equal(t, RollRequest{Count: 0, Min: 1, Max: 6}, d6.RollRequest(0))

	require.Equal(t, RollRequest{}, NewDeterministic().RollRequest(9),
		"Deterministic battles should need no numbers")
}

func TestResolve(t *testing.T) {
	t.Run("dice sum their faces", func(t *testing.T) {
		d6, err := NewDice(6)
		require.NoError(t, err)

		roll, err := d6.resolve(3, []int{1, 2, 6})
		require.NoError(t, err)
		require.Equal(t, 9, roll)
	})

	t.Run("deterministic rolls the digit itself", func(t *testing.T) {
		roll, err := NewDeterministic().resolve(9, nil)
		require.NoError(t, err)
		require.Equal(t, 9, roll)
	})

	t.Run("original replays the console mechanic", func(t *testing.T) {
		s := NewOriginal()

		roll, err := s.resolve(0xF, []int{255, 0})
		require.NoError(t, err)
		require.Equal(t, 255, roll)

		roll, err = s.resolve(0, []int{0, 0})
		require.NoError(t, err)
		require.Equal(t, 0, roll)
	})

	t.Run("wrong number count is rejected", func(t *testing.T) {
		_, err := NewOriginal().resolve(0xF, []int{255})
		require.EqualError(t, err, "battler rolling with stat F needs 2 numbers, got 1")

		_, err = NewDeterministic().resolve(9, []int{1})
		require.Error(t, err)
	})

	t.Run("numbers outside the range are rejected", func(t *testing.T) {
		d6, err := NewDice(6)
		require.NoError(t, err)

		_, err = d6.resolve(2, []int{3, 7})
		require.EqualError(t, err, "battle number 7 outside [1, 6]")
		_, err = d6.resolve(2, []int{0, 3})
		require.Error(t, err)
	})
}

func TestResolveRoll(t *testing.T) {
	cases := []struct {
		stat, num0, num1 uint8
		want             int
	}{
		{0xF, 255, 0, 255},
		{0xF, 0, 0, 240},
		{0, 255, 255, 1},
		{0, 0, 0, 0},
		{8, 128, 64, 102},
	}
	for _, c := range cases {
		require.Equal(t, c.want, resolveRoll(c.stat, c.num0, c.num1),
			"resolveRoll(%X, %d, %d)", c.stat, c.num0, c.num1)
	}
}

func TestMapNumberToRange(t *testing.T) {
	t.Run("full range passes through", func(t *testing.T) {
		require.Equal(t, uint8(200), mapNumberToRange(200, 0, 255))
	})

	t.Run("zero based ranges scale by max alone", func(t *testing.T) {
		require.Equal(t, uint8(8), mapNumberToRange(128, 0, 16))
		require.Equal(t, uint8(99), mapNumberToRange(255, 0, 100),
			"The top of a zero based range is out of reach, as in the console game")
	})

	t.Run("banded ranges cover both ends", func(t *testing.T) {
		require.Equal(t, uint8(240), mapNumberToRange(0, 240, 255))
		require.Equal(t, uint8(255), mapNumberToRange(255, 240, 255))
	})
}

func TestBattleWinnerFromRolls(t *testing.T) {
	require.Equal(t, WinnerAttacker, battleWinnerFromRolls(5, 3))
	require.Equal(t, WinnerDefender, battleWinnerFromRolls(3, 5))
	require.Equal(t, WinnerNone, battleWinnerFromRolls(4, 4))
}
