package game

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Ruleset carries the variant parameters that differ between observed rule
// versions. It is configuration, not a universal law.
type Ruleset struct {
	// StartHandSize is the number of cards drawn at match start.
	StartHandSize int
	// MaxManaCap is the win-condition threshold: a player whose mana cap
	// exceeds it loses immediately.
	MaxManaCap int
	// ClearFacedowns sweeps the active player's unrevealed face-down cards
	// to the graveyard when they leave the reveal phase. Disable to retain
	// them across turns.
	ClearFacedowns bool
}

// DefaultRuleset returns the ruleset variant the server ships with.
func DefaultRuleset() Ruleset {
	return Ruleset{
		StartHandSize:  5,
		MaxManaCap:     15,
		ClearFacedowns: true,
	}
}

// Broadcaster receives full-state broadcast requests. The engine calls it
// after every state-affecting mutation; it never computes diffs.
type Broadcaster interface {
	Redraw(g *Game)
}

// Game is the authoritative state machine for one two-player match: both
// players, the turn/phase cursor, phase transitions, win detection, and the
// full-state broadcast requests that keep clients synchronized.
type Game struct {
	logger      *zap.Logger
	rules       Ruleset
	players     [2]*Player
	turn        int
	phase       Phase
	turnCount   int
	broadcaster Broadcaster
	bus         *EventBus
	rng         *rand.Rand
	winner      *Player
	finished    bool
}

// NewGame creates a match between two factions. The rng drives the opening
// shuffles; pass nil for a time-seeded source. The logger may be nil.
func NewGame(factionA, factionB *Faction, rules Ruleset, rng *rand.Rand, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Game{
		logger: logger,
		rules:  rules,
		phase:  PhaseReveal,
		bus:    NewEventBus(),
		rng:    rng,
	}
	g.players[0] = newPlayer(g, 0, "Player 1", factionA)
	g.players[1] = newPlayer(g, 1, "Player 2", factionB)
	return g
}

// SetBroadcaster installs the synchronization sink. Must be called before
// Start so the opening hands reach the clients.
func (g *Game) SetBroadcaster(b Broadcaster) {
	g.broadcaster = b
}

// Events returns the bus engine events are published on.
func (g *Game) Events() *EventBus { return g.bus }

// Start shuffles both decks and deals the opening hands.
func (g *Game) Start() error {
	for _, p := range g.players {
		g.rng.Shuffle(len(p.deck), func(i, j int) {
			p.deck[i], p.deck[j] = p.deck[j], p.deck[i]
		})
		for i := 0; i < g.rules.StartHandSize; i++ {
			if err := p.DrawCard(); err != nil {
				return err
			}
		}
	}
	g.logger.Info("match started",
		zap.String("faction_a", g.players[0].faction.Name),
		zap.String("faction_b", g.players[1].faction.Name),
	)
	g.redraw()
	return nil
}

// Player returns the player in the given seat (0 or 1).
func (g *Game) Player(seat int) *Player { return g.players[seat] }

// ActivePlayer returns the player whose turn it is.
func (g *Game) ActivePlayer() *Player { return g.players[g.turn] }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// TurnCount returns the number of completed turns.
func (g *Game) TurnCount() int { return g.turnCount }

// Finished reports whether the match has reached a terminal state.
func (g *Game) Finished() bool { return g.finished }

// Winner returns the winning player once the match is finished, else nil.
func (g *Game) Winner() *Player { return g.winner }

// Rules returns the ruleset variant in force.
func (g *Game) Rules() Ruleset { return g.rules }

func (g *Game) redraw() {
	if g.broadcaster != nil {
		g.broadcaster.Redraw(g)
	}
}

// publish delivers the event to bus subscribers, then walks every live
// face-up card in board order so passive triggers observe it. The event's
// own subject never observes itself.
func (g *Game) publish(ev Event) {
	g.bus.Publish(ev)
	for _, p := range g.players {
		board := make([]*Card, len(p.faceups))
		copy(board, p.faceups)
		for _, c := range board {
			if c == ev.Card || c.zone != ZoneFaceup {
				continue
			}
			obs, ok := c.tpl.Behavior.(EventObserver)
			if !ok {
				continue
			}
			if err := obs.AfterEvent(g, c, ev); err != nil {
				g.logger.Warn("passive trigger failed",
					zap.String("card", c.Name()),
					zap.String("event", string(ev.Type)),
					zap.Error(err),
				)
			}
		}
	}
}

// spawn runs a card's spawn resolution the instant it enters the face-up
// board. Abilities that require a target do not resolve here: a targeting
// session is recorded instead, unless no legal target exists, in which case
// the hook is simply never invoked.
func (g *Game) spawn(c *Card) error {
	g.publish(Event{Type: EventSpawn, Card: c, Player: c.owner, ToZone: ZoneFaceup})

	if c.tpl.RequiresTarget {
		t, ok := c.tpl.Behavior.(Targetable)
		if !ok {
			return nil
		}
		side := c.owner.Enemy()
		if c.tpl.TargetsOwn {
			side = c.owner
		}
		if !hasCandidates(c, side, c.tpl.TargetZones) {
			g.logger.Debug("spawn ability has no legal target",
				zap.String("card", c.Name()),
			)
			return nil
		}
		c.owner.activeAbility = &TargetingSession{
			card:   c,
			source: c.owner,
			side:   side,
			zones:  c.tpl.TargetZones,
			resolve: func(target *Card) error {
				return t.OnGetTarget(g, c, target)
			},
		}
		return nil
	}

	if s, ok := c.tpl.Behavior.(Spawnable); ok {
		return s.OnSpawn(g, c)
	}
	return nil
}

// Destroy moves a card to the graveyard. Death triggers fire inside the
// zone transfer, before the card reaches the graveyard.
func (g *Game) Destroy(c *Card) error {
	from := c.zone
	if from == ZoneGraveyard {
		return nil
	}
	if err := c.owner.moveCard(c, ZoneGraveyard); err != nil {
		return err
	}
	g.publish(Event{Type: EventDestroy, Card: c, Player: c.owner, FromZone: from, ToZone: ZoneGraveyard})
	return nil
}

// AddManaCap raises a player's mana cap and fires the win check: exceeding
// the limit is fatal for that player and ends the match before any further
// effect is applied.
func (g *Game) AddManaCap(p *Player, amount int) error {
	p.manaCap += amount
	g.publish(Event{Type: EventManaCapChange, Player: p, Amount: amount})
	if p.manaCap > g.rules.MaxManaCap {
		return g.declareWinner(p.Enemy())
	}
	return nil
}

// DeclareWinner lets a card effect end the match outright.
func (g *Game) DeclareWinner(winner *Player) error {
	return g.declareWinner(winner)
}

func (g *Game) declareWinner(winner *Player) error {
	if g.finished {
		return &EndOfGame{Winner: g.winner}
	}
	g.finished = true
	g.winner = winner
	g.logger.Info("match over",
		zap.String("winner", winner.Name()),
		zap.Int("turns", g.turnCount),
	)
	return &EndOfGame{Winner: winner}
}

// EndPhase advances the phase cursor. Only the active player may advance,
// and phases only move forward; leaving the play phase ends the turn.
func (g *Game) EndPhase(p *Player) error {
	if g.finished {
		return illegalMovef("the match is over")
	}
	if p != g.ActivePlayer() {
		return illegalMovef("it is not %s's turn", p.name)
	}

	if g.phase == PhaseReveal && g.rules.ClearFacedowns {
		unrevealed := make([]*Card, len(p.facedowns))
		copy(unrevealed, p.facedowns)
		for _, c := range unrevealed {
			if err := p.moveCard(c, ZoneGraveyard); err != nil {
				return err
			}
		}
	}

	switch g.phase {
	case PhaseReveal:
		g.phase = PhaseDraw
		if err := p.DrawCard(); err != nil {
			return err
		}
	case PhaseDraw:
		g.phase = PhaseAttack
		for _, c := range p.faceups {
			c.hasAttacked = false
		}
	case PhaseAttack:
		g.phase = PhasePlay
	case PhasePlay:
		return g.endTurn()
	}

	g.publish(Event{Type: EventPhaseChanged, Player: p, Amount: int(g.phase)})
	g.redraw()
	return nil
}

// endTurn runs end-of-turn bookkeeping: the mana cap increment with its win
// check, the mana refill, the turn flip, and the phase reset. A fatal cap
// check stops everything else.
func (g *Game) endTurn() error {
	p := g.ActivePlayer()
	if err := g.AddManaCap(p, 1); err != nil {
		g.redraw()
		return err
	}
	p.mana = p.manaCap
	g.turn = 1 - g.turn
	g.phase = PhaseReveal
	g.turnCount++
	g.logger.Debug("turn ended",
		zap.String("player", p.name),
		zap.Int("mana_cap", p.manaCap),
		zap.Int("turn", g.turnCount),
	)
	g.publish(Event{Type: EventTurnEnd, Player: p})
	g.redraw()
	return nil
}
