package game

import (
	"fmt"
	"math/rand"
	"testing"

	"go.uber.org/zap/zaptest"
)

// MatchHarness provides utilities for setting up and running match scenarios
type MatchHarness struct {
	t *testing.T
	g *Game
}

// NewMatchHarness creates a match between two plain test factions with a
// deterministic shuffle. The match is not started; decks are full and hands
// empty until Start or direct placement.
func NewMatchHarness(t *testing.T) *MatchHarness {
	return NewMatchHarnessWithRules(t, DefaultRuleset())
}

// NewMatchHarnessWithRules is NewMatchHarness with a custom ruleset.
func NewMatchHarnessWithRules(t *testing.T, rules Ruleset) *MatchHarness {
	logger := zaptest.NewLogger(t)
	g := NewGame(harnessFaction("Alpha"), harnessFaction("Beta"), rules,
		rand.New(rand.NewSource(1)), logger)
	return &MatchHarness{t: t, g: g}
}

func harnessFaction(name string) *Faction {
	deck := make([]*Template, 0, 10)
	for i := 0; i < 10; i++ {
		deck = append(deck, &Template{
			Name: fmt.Sprintf("%s Soldier %d", name, i),
			Cost: 1,
			Rank: 1,
		})
	}
	return &Faction{Name: name, Deck: deck}
}

// Game returns the match under test.
func (h *MatchHarness) Game() *Game { return h.g }

// Start deals the opening hands.
func (h *MatchHarness) Start() {
	if err := h.g.Start(); err != nil {
		h.t.Fatalf("failed to start match: %v", err)
	}
}

// Place instantiates a card from the template directly into a zone,
// bypassing cost, phase checks and spawn resolution.
func (h *MatchHarness) Place(p *Player, tpl *Template, z Zone) *Card {
	c := &Card{tpl: tpl, owner: p, zone: z}
	switch z {
	case ZoneHand:
		p.hand = append(p.hand, c)
	case ZoneFacedown:
		p.facedowns = append(p.facedowns, c)
	case ZoneFaceup:
		p.faceups = append(p.faceups, c)
	case ZoneGraveyard:
		p.graveyard = append(p.graveyard, c)
	case ZoneDeck:
		p.deck = append(p.deck, c)
	default:
		h.t.Fatalf("cannot place a card in zone %s", z)
	}
	return c
}

// CreatureSpec defines the properties of a directly placed test creature
type CreatureSpec struct {
	Name string
	Cost int
	Rank int
}

// PlaceCreature is Place with an inline vanilla template.
func (h *MatchHarness) PlaceCreature(p *Player, spec CreatureSpec, z Zone) *Card {
	return h.Place(p, &Template{Name: spec.Name, Cost: spec.Cost, Rank: spec.Rank}, z)
}

// SetPhase moves the phase cursor without running transitions.
func (h *MatchHarness) SetPhase(ph Phase) { h.g.phase = ph }

// SetTurn hands the turn to the given seat without running transitions.
func (h *MatchHarness) SetTurn(seat int) { h.g.turn = seat }

// SetMana overrides a player's mana pool.
func (h *MatchHarness) SetMana(p *Player, mana int) { p.mana = mana }

// SetManaCap overrides a player's mana cap without the win check.
func (h *MatchHarness) SetManaCap(p *Player, value int) { p.manaCap = value }

// CountEverywhere reports how many of the player's zones contain the card.
func (h *MatchHarness) CountEverywhere(p *Player, c *Card) int {
	count := 0
	for _, z := range []Zone{ZoneHand, ZoneFacedown, ZoneFaceup, ZoneGraveyard, ZoneDeck} {
		for _, existing := range p.zoneCards(z) {
			if existing == c {
				count++
			}
		}
	}
	return count
}
