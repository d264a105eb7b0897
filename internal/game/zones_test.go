package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestZoneExclusivity a card occupies exactly one zone through every transfer
func TestZoneExclusivity(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	c := h.PlaceCreature(p, CreatureSpec{Name: "Wanderer", Cost: 1, Rank: 1}, ZoneHand)

	for _, dst := range []Zone{ZoneFacedown, ZoneFaceup, ZoneGraveyard, ZoneHand} {
		require.NoError(t, c.MoveZone(dst))
		assert.Equal(t, dst, c.Zone())
		assert.Equal(t, 1, h.CountEverywhere(p, c), "after moving to %s", dst)
	}
}

// TestMoveZoneRejectsForeignCard
func TestMoveZoneRejectsForeignCard(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	p := h.Game().ActivePlayer()
	theirs := h.PlaceCreature(p.Enemy(), CreatureSpec{Name: "Theirs", Cost: 1, Rank: 1}, ZoneHand)

	var illegal *IllegalMoveError
	assert.ErrorAs(t, p.moveCard(theirs, ZoneFaceup), &illegal)
}

// TestDrawFromEmptyDeck drawing from an empty deck is a no-op, not an error
func TestDrawFromEmptyDeck(t *testing.T) {
	h := NewMatchHarness(t)
	p := h.Game().Player(0)
	p.deck = nil

	require.NoError(t, p.DrawCard())
	assert.Empty(t, p.Hand())
}

// TestStartDealsOpeningHands
func TestStartDealsOpeningHands(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	g := h.Game()
	for seat := 0; seat < 2; seat++ {
		p := g.Player(seat)
		assert.Len(t, p.Hand(), g.Rules().StartHandSize)
		assert.Equal(t, 10-g.Rules().StartHandSize, p.DeckSize())
	}
	assert.Same(t, g.Player(0), g.ActivePlayer())
	assert.Equal(t, PhaseReveal, g.Phase())
}

type eventRecorder struct{ events *[]Event }

func (r eventRecorder) AfterEvent(g *Game, self *Card, ev Event) error {
	*r.events = append(*r.events, ev)
	return nil
}

// TestObserverSeesBoardEvents a faceup observer is notified of engine events
func TestObserverSeesBoardEvents(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	g := h.Game()
	p := g.ActivePlayer()

	var seen []Event
	h.Place(p, &Template{Name: "Watcher", Cost: 1, Rank: 1, Behavior: eventRecorder{&seen}}, ZoneFaceup)
	victim := h.PlaceCreature(p.Enemy(), CreatureSpec{Name: "Victim", Cost: 1, Rank: 1}, ZoneFaceup)

	require.NoError(t, g.Destroy(victim))

	var destroys []Event
	for _, ev := range seen {
		if ev.Type == EventDestroy {
			destroys = append(destroys, ev)
		}
	}
	require.Len(t, destroys, 1)
	assert.Same(t, victim, destroys[0].Card)
	assert.Equal(t, ZoneFaceup, destroys[0].FromZone)
}

// TestObserverSkipsItsOwnEvents the event's subject never observes itself
func TestObserverSkipsItsOwnEvents(t *testing.T) {
	h := NewMatchHarness(t)
	h.Start()
	g := h.Game()
	p := g.ActivePlayer()

	var seen []Event
	self := h.Place(p, &Template{Name: "Navel Gazer", Cost: 1, Rank: 1, Behavior: eventRecorder{&seen}}, ZoneFaceup)

	require.NoError(t, g.Destroy(self))
	for _, ev := range seen {
		assert.NotSame(t, self, ev.Card, "a card must not observe its own destruction")
	}
}

// TestEventBusSubscription external subscribers receive published events
func TestEventBusSubscription(t *testing.T) {
	h := NewMatchHarness(t)
	g := h.Game()

	var types []EventType
	g.Events().Subscribe(func(ev Event) {
		types = append(types, ev.Type)
	})

	h.Start()
	p := g.ActivePlayer()
	require.NoError(t, p.DrawCard())

	assert.Contains(t, types, EventDrawCard)
	assert.Contains(t, types, EventZoneChange)
}
