package game

// Template describes the immutable printed side of a card. Instances created
// from the same template share it; all per-match state lives on Card.
type Template struct {
	Name  string
	Image string
	Desc  string
	Cost  int

	// Rank is the printed rank. RankFunc, when set, derives the rank from
	// the owner's current state instead and is re-evaluated on every read.
	Rank     int
	RankFunc func(owner *Player) int

	// Spell cards leave play as part of their own effect rather than
	// sticking around on the board.
	Spell bool

	// PlaysFaceUp permits playing the card straight from hand to the
	// face-up board during the reveal phase.
	PlaysFaceUp bool

	// RequiresTarget marks abilities that cannot resolve synchronously: a
	// targeting session is opened on spawn and the effect waits for the
	// client to supply a target.
	RequiresTarget bool

	// TargetsOwn directs target selection at the controller's own board
	// instead of the enemy's.
	TargetsOwn bool

	// TargetZones restricts which zones legal targets may occupy. Empty
	// means both board zones (faceup and facedown).
	TargetZones []Zone

	// Behavior optionally implements the hook interfaces below. Capability
	// checks are static type assertions, never reflection.
	Behavior any
}

// Spawnable is implemented by card behaviors with an untargeted spawn effect.
// It fires exactly once, the instant the card enters the face-up board.
type Spawnable interface {
	OnSpawn(g *Game, self *Card) error
}

// Targetable is implemented by card behaviors whose spawn effect needs a
// target chosen later, possibly by another network round-trip.
type Targetable interface {
	OnGetTarget(g *Game, self, target *Card) error
}

// Dying is implemented by card behaviors with a death effect. It fires
// exactly once, when the card leaves the face-up board for the graveyard.
// Cards destroyed while face-down never trigger it.
type Dying interface {
	OnDeath(g *Game, self *Card) error
}

// EventObserver is implemented by card behaviors with a passive trigger.
// Observers on the face-up board are walked in board order after every
// engine event, skipping the event's own subject.
type EventObserver interface {
	AfterEvent(g *Game, self *Card, ev Event) error
}

// Card is a single instance of a template owned by a player for the duration
// of a match. A card belongs to exactly one zone at a time; the zone field
// and the containing collection must never disagree.
type Card struct {
	tpl         *Template
	wireID      int
	owner       *Player
	zone        Zone
	hasAttacked bool
}

func (c *Card) Name() string { return c.tpl.Name }

func (c *Card) Cost() int { return c.tpl.Cost }

// Rank returns the card's current rank, re-deriving it from the owner's
// state when the template declares a dynamic rank. The value is never
// cached.
func (c *Card) Rank() int {
	if c.tpl.RankFunc != nil {
		return c.tpl.RankFunc(c.owner)
	}
	return c.tpl.Rank
}

// WireID is the card's index into its faction's deck template ordering. Both
// ends of the protocol share the same table, so this small integer is the
// card's entire identity on the wire.
func (c *Card) WireID() int { return c.wireID }

func (c *Card) Owner() *Player { return c.owner }

func (c *Card) Zone() Zone { return c.zone }

func (c *Card) HasAttacked() bool { return c.hasAttacked }

func (c *Card) Template() *Template { return c.tpl }

// MoveZone transfers the card to the destination zone on its owner's board,
// running the zone-pair-specific side effects.
func (c *Card) MoveZone(dst Zone) error {
	return c.owner.moveCard(c, dst)
}
