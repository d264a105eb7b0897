package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlayRequiresPlayPhase rejects laying a facedown outside the play phase
func TestPlayRequiresPlayPhase(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	c := h.PlaceCreature(p, CreatureSpec{Name: "Eager", Cost: 1, Rank: 1}, ZoneHand)

	var illegal *IllegalMoveError
	require.ErrorAs(t, p.Play(c), &illegal)
	assert.Equal(t, ZoneHand, c.Zone(), "a rejected action mutates nothing")

	h.SetPhase(PhasePlay)
	require.NoError(t, p.Play(c))
	assert.Equal(t, ZoneFacedown, c.Zone())
}

// TestRevealRequiresMana rejects an unaffordable reveal without spending
func TestRevealRequiresMana(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	c := h.PlaceCreature(p, CreatureSpec{Name: "Expensive", Cost: 3, Rank: 4}, ZoneFacedown)
	h.SetMana(p, 2)

	var illegal *IllegalMoveError
	require.ErrorAs(t, p.RevealFacedown(c), &illegal)
	assert.Equal(t, 2, p.Mana(), "a failed reveal spends nothing")
	assert.Equal(t, ZoneFacedown, c.Zone())

	h.SetMana(p, 3)
	require.NoError(t, p.RevealFacedown(c))
	assert.Equal(t, 0, p.Mana())
	assert.Equal(t, ZoneFaceup, c.Zone())
}

// TestRevealOnlyInRevealPhase
func TestRevealOnlyInRevealPhase(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	c := h.PlaceCreature(p, CreatureSpec{Name: "Patient", Cost: 1, Rank: 1}, ZoneFacedown)
	h.SetMana(p, 5)
	h.SetPhase(PhaseAttack)

	var illegal *IllegalMoveError
	assert.ErrorAs(t, p.RevealFacedown(c), &illegal)
}

// TestPlayFaceupRequiresFlag only templates marked for it skip the facedown step
func TestPlayFaceupRequiresFlag(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	h.SetMana(p, 5)

	plain := h.PlaceCreature(p, CreatureSpec{Name: "Plain", Cost: 1, Rank: 1}, ZoneHand)
	var illegal *IllegalMoveError
	require.ErrorAs(t, p.PlayFaceup(plain), &illegal)

	quick := h.Place(p, &Template{Name: "Quick", Cost: 1, Rank: 1, PlaysFaceUp: true}, ZoneHand)
	require.NoError(t, p.PlayFaceup(quick))
	assert.Equal(t, ZoneFaceup, quick.Zone())
	assert.Equal(t, 4, p.Mana())
}

// TestInactivePlayerCannotAct
func TestInactivePlayerCannotAct(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	passive := h.Game().ActivePlayer().Enemy()
	c := h.PlaceCreature(passive, CreatureSpec{Name: "Idle", Cost: 1, Rank: 1}, ZoneHand)
	h.SetMana(passive, 5)
	h.SetPhase(PhasePlay)

	var illegal *IllegalMoveError
	assert.ErrorAs(t, passive.Play(c), &illegal)
	assert.Equal(t, ZoneHand, c.Zone())
}

// TestAttackOncePerTurn the per-turn attack flag blocks a second swing
func TestAttackOncePerTurn(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	attacker := h.PlaceCreature(p, CreatureSpec{Name: "Swinger", Cost: 1, Rank: 1}, ZoneFaceup)
	h.SetPhase(PhaseAttack)

	require.NoError(t, p.AttackFace(attacker))
	var illegal *IllegalMoveError
	assert.ErrorAs(t, p.AttackFace(attacker), &illegal)
}

// TestAttackFlagResetsEachTurn entering the attack phase clears the flag
func TestAttackFlagResetsEachTurn(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	attacker := h.PlaceCreature(p, CreatureSpec{Name: "Swinger", Cost: 1, Rank: 1}, ZoneFaceup)
	h.SetPhase(PhaseAttack)
	require.NoError(t, p.AttackFace(attacker))
	require.True(t, attacker.HasAttacked())

	h.SetPhase(PhaseDraw)
	require.NoError(t, p.EndPhase())
	assert.False(t, attacker.HasAttacked())
}

// TestCannotAttackOwnCards
func TestCannotAttackOwnCards(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	attacker := h.PlaceCreature(p, CreatureSpec{Name: "Confused", Cost: 1, Rank: 3}, ZoneFaceup)
	friendly := h.PlaceCreature(p, CreatureSpec{Name: "Friendly", Cost: 1, Rank: 1}, ZoneFaceup)
	h.SetPhase(PhaseAttack)

	var illegal *IllegalMoveError
	require.ErrorAs(t, p.Attack(attacker, friendly), &illegal)
	assert.False(t, attacker.HasAttacked(), "a rejected attack does not consume the attack")
}

// TestCardAtIndexOutOfRange stale indices are rejected without mutation
func TestCardAtIndexOutOfRange(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()

	_, err := p.CardAt(ZoneFaceup, 0)
	var oob *IndexOutOfRangeError
	require.ErrorAs(t, err, &oob, "an empty zone is addressable; only the index is stale")
	assert.Equal(t, ZoneFaceup, oob.Zone)
	assert.Equal(t, 0, oob.Length)

	_, err = p.CardAt(ZoneHand, -1)
	assert.ErrorAs(t, err, &oob)

	_, err = p.CardAt(ZoneFace, 0)
	var illegal *IllegalMoveError
	assert.ErrorAs(t, err, &illegal, "the face pseudo-zone holds no cards")
}
