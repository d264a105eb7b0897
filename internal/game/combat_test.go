package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCombatHigherRankWins the stronger card destroys the weaker
func TestCombatHigherRankWins(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	attacker := h.PlaceCreature(p, CreatureSpec{Name: "Knight", Cost: 3, Rank: 4}, ZoneFaceup)
	defender := h.PlaceCreature(p.Enemy(), CreatureSpec{Name: "Peasant", Cost: 1, Rank: 1}, ZoneFaceup)
	h.SetPhase(PhaseAttack)

	require.NoError(t, p.Attack(attacker, defender))
	assert.Equal(t, ZoneGraveyard, defender.Zone())
	assert.Equal(t, ZoneFaceup, attacker.Zone())
	assert.True(t, attacker.HasAttacked())
}

// TestCombatLowerRankLoses attacking into a stronger card destroys the attacker
func TestCombatLowerRankLoses(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	attacker := h.PlaceCreature(p, CreatureSpec{Name: "Peasant", Cost: 1, Rank: 1}, ZoneFaceup)
	defender := h.PlaceCreature(p.Enemy(), CreatureSpec{Name: "Knight", Cost: 3, Rank: 4}, ZoneFaceup)
	h.SetPhase(PhaseAttack)

	require.NoError(t, p.Attack(attacker, defender))
	assert.Equal(t, ZoneGraveyard, attacker.Zone())
	assert.Equal(t, ZoneFaceup, defender.Zone())
}

// TestCombatEqualRanksTrade a tie destroys both cards
func TestCombatEqualRanksTrade(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	attacker := h.PlaceCreature(p, CreatureSpec{Name: "Twin A", Cost: 2, Rank: 3}, ZoneFaceup)
	defender := h.PlaceCreature(p.Enemy(), CreatureSpec{Name: "Twin B", Cost: 2, Rank: 3}, ZoneFaceup)
	h.SetPhase(PhaseAttack)

	require.NoError(t, p.Attack(attacker, defender))
	assert.Equal(t, ZoneGraveyard, attacker.Zone())
	assert.Equal(t, ZoneGraveyard, defender.Zone())
}

// TestCombatAgainstFacedown facedown cards fight with their real rank
func TestCombatAgainstFacedown(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	attacker := h.PlaceCreature(p, CreatureSpec{Name: "Scout", Cost: 1, Rank: 2}, ZoneFaceup)
	hidden := h.PlaceCreature(p.Enemy(), CreatureSpec{Name: "Trap", Cost: 3, Rank: 5}, ZoneFacedown)
	h.SetPhase(PhaseAttack)

	require.NoError(t, p.Attack(attacker, hidden))
	assert.Equal(t, ZoneGraveyard, attacker.Zone())
	assert.Equal(t, ZoneFacedown, hidden.Zone())
}

// TestDynamicRankInCombat a RankFunc is re-evaluated at resolution time
func TestDynamicRankInCombat(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	shifter := h.Place(p, &Template{
		Name: "Shifter",
		Cost: 2,
		RankFunc: func(owner *Player) int {
			if owner.ManaCap()%2 == 0 {
				return 2
			}
			return 5
		},
	}, ZoneFaceup)
	defender := h.PlaceCreature(p.Enemy(), CreatureSpec{Name: "Wall", Cost: 2, Rank: 3}, ZoneFaceup)
	h.SetPhase(PhaseAttack)

	h.SetManaCap(p, 2)
	require.Equal(t, 2, shifter.Rank())

	h.SetManaCap(p, 3)
	require.NoError(t, p.Attack(shifter, defender))
	assert.Equal(t, ZoneGraveyard, defender.Zone(), "rank 5 at an odd cap beats rank 3")
	assert.Equal(t, ZoneFaceup, shifter.Zone())
}

// TestAttackFaceRaisesCap a direct attack adds the attacker's rank to the cap
func TestAttackFaceRaisesCap(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	attacker := h.PlaceCreature(p, CreatureSpec{Name: "Raider", Cost: 2, Rank: 3}, ZoneFaceup)
	h.SetPhase(PhaseAttack)

	capBefore := p.Enemy().ManaCap()
	require.NoError(t, p.AttackFace(attacker))
	assert.Equal(t, capBefore+3, p.Enemy().ManaCap())
	assert.False(t, h.Game().Finished())
}

// TestAttackFaceLethal pushing the enemy cap past the limit wins immediately
func TestAttackFaceLethal(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	g := h.Game()
	p := g.ActivePlayer()
	attacker := h.PlaceCreature(p, CreatureSpec{Name: "Finisher", Cost: 2, Rank: 3}, ZoneFaceup)
	h.SetManaCap(p.Enemy(), 13)
	h.SetPhase(PhaseAttack)

	err := p.AttackFace(attacker)
	var eog *EndOfGame
	require.ErrorAs(t, err, &eog)
	assert.Same(t, p, eog.Winner)
	assert.True(t, g.Finished())
}

// TestDeathTriggerOnlyFromFaceup death effects fire for faceup cards only
func TestDeathTriggerOnlyFromFaceup(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	g := h.Game()
	p := g.ActivePlayer()

	deaths := 0
	tpl := &Template{Name: "Martyr", Cost: 1, Rank: 1, Behavior: deathCounter{&deaths}}

	faceup := h.Place(p, tpl, ZoneFaceup)
	require.NoError(t, g.Destroy(faceup))
	assert.Equal(t, 1, deaths)

	facedown := h.Place(p, tpl, ZoneFacedown)
	require.NoError(t, g.Destroy(facedown))
	assert.Equal(t, 1, deaths, "a facedown death fires no trigger")
	assert.Equal(t, ZoneGraveyard, facedown.Zone())
}

type deathCounter struct{ n *int }

func (d deathCounter) OnDeath(g *Game, self *Card) error {
	*d.n = *d.n + 1
	return nil
}

// TestDestroyFromGraveyardIsNoop
func TestDestroyFromGraveyardIsNoop(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	g := h.Game()
	p := g.ActivePlayer()
	c := h.PlaceCreature(p, CreatureSpec{Name: "Gone", Cost: 1, Rank: 1}, ZoneGraveyard)

	require.NoError(t, g.Destroy(c))
	assert.Equal(t, 1, h.CountEverywhere(p, c))
}
