package game

// Player owns one set of zones, the mana economy, and the action methods
// that mutate zones under legality checks. All actions are check-then-act:
// a violated precondition returns an error before any state changes.
type Player struct {
	game    *Game
	seat    int
	name    string
	faction *Faction

	hand      []*Card
	facedowns []*Card
	faceups   []*Card
	deck      []*Card
	graveyard []*Card

	manaCap int
	mana    int

	activeAbility *TargetingSession
}

func newPlayer(g *Game, seat int, name string, faction *Faction) *Player {
	p := &Player{
		game:    g,
		seat:    seat,
		name:    name,
		faction: faction,
		manaCap: 1,
		mana:    0,
	}
	p.deck = faction.buildDeck(p)
	return p
}

func (p *Player) Name() string { return p.name }

func (p *Player) Seat() int { return p.seat }

func (p *Player) Faction() *Faction { return p.faction }

func (p *Player) Hand() []*Card { return p.hand }

func (p *Player) Facedowns() []*Card { return p.facedowns }

func (p *Player) Faceups() []*Card { return p.faceups }

func (p *Player) Graveyard() []*Card { return p.graveyard }

func (p *Player) DeckSize() int { return len(p.deck) }

func (p *Player) Mana() int { return p.mana }

func (p *Player) ManaCap() int { return p.manaCap }

// ActiveAbility returns the pending targeting session, or nil.
func (p *Player) ActiveAbility() *TargetingSession { return p.activeAbility }

// IsActive reports whether it is this player's turn.
func (p *Player) IsActive() bool { return p.game.ActivePlayer() == p }

// Enemy returns the opposing player.
func (p *Player) Enemy() *Player {
	return p.game.players[1-p.seat]
}

func (p *Player) zoneCards(z Zone) []*Card {
	switch z {
	case ZoneHand:
		return p.hand
	case ZoneFacedown:
		return p.facedowns
	case ZoneFaceup:
		return p.faceups
	case ZoneGraveyard:
		return p.graveyard
	case ZoneDeck:
		return p.deck
	}
	return nil
}

// CardAt resolves a wire-level zone/index pair to a card reference. An
// empty zone is addressable; only the index is out of range there.
func (p *Player) CardAt(z Zone, index int) (*Card, error) {
	switch z {
	case ZoneHand, ZoneFacedown, ZoneFaceup, ZoneGraveyard, ZoneDeck:
	default:
		return nil, illegalMovef("zone %s holds no addressable cards", z)
	}
	cards := p.zoneCards(z)
	if index < 0 || index >= len(cards) {
		return nil, &IndexOutOfRangeError{Zone: z, Index: index, Length: len(cards)}
	}
	return cards[index], nil
}

func removeCard(cards []*Card, c *Card) []*Card {
	for i, existing := range cards {
		if existing == c {
			return append(cards[:i], cards[i+1:]...)
		}
	}
	return cards
}

// moveCard is the single zone-transfer operation: remove the card from its
// current container, append it to the destination, update the zone field,
// and run the zone-pair-specific side effects. Every transfer ends with a
// full-state broadcast; the system resynchronizes on every mutation rather
// than computing diffs.
func (p *Player) moveCard(c *Card, dst Zone) error {
	if c.owner != p {
		return illegalMovef("card %s is not owned by %s", c.Name(), p.name)
	}
	from := c.zone

	switch from {
	case ZoneDeck:
		p.deck = removeCard(p.deck, c)
	case ZoneHand:
		p.hand = removeCard(p.hand, c)
	case ZoneFacedown:
		p.facedowns = removeCard(p.facedowns, c)
	case ZoneFaceup:
		p.faceups = removeCard(p.faceups, c)
	case ZoneGraveyard:
		p.graveyard = removeCard(p.graveyard, c)
	}

	switch dst {
	case ZoneHand:
		p.hand = append(p.hand, c)
		c.zone = ZoneHand
	case ZoneFacedown:
		p.facedowns = append(p.facedowns, c)
		c.zone = ZoneFacedown
	case ZoneDeck:
		p.deck = append(p.deck, c)
		c.zone = ZoneDeck
	case ZoneGraveyard:
		// Death triggers fire before the card reaches the graveyard, and
		// only for cards that were face-up.
		if from == ZoneFaceup {
			if d, ok := c.tpl.Behavior.(Dying); ok {
				if err := d.OnDeath(p.game, c); err != nil {
					return err
				}
			}
		}
		p.graveyard = append(p.graveyard, c)
		c.zone = ZoneGraveyard
	case ZoneFaceup:
		p.faceups = append(p.faceups, c)
		c.zone = ZoneFaceup
		p.game.redraw()
		if err := p.game.spawn(c); err != nil {
			return err
		}
	default:
		return illegalMovef("cannot move card to zone %s", dst)
	}

	p.game.publish(Event{Type: EventZoneChange, Card: c, Player: p, FromZone: from, ToZone: c.zone})
	p.game.redraw()
	return nil
}

// DrawCard moves the top card of the deck to the hand. Drawing from an
// empty deck is a no-op.
func (p *Player) DrawCard() error {
	if len(p.deck) == 0 {
		return nil
	}
	c := p.deck[len(p.deck)-1]
	if err := p.moveCard(c, ZoneHand); err != nil {
		return err
	}
	p.game.publish(Event{Type: EventDrawCard, Card: c, Player: p})
	return nil
}

func (p *Player) requireActive() error {
	if p.game.finished {
		return illegalMovef("the match is over")
	}
	if !p.IsActive() {
		return illegalMovef("it is not %s's turn", p.name)
	}
	return nil
}

// Play puts a card from hand onto the board face-down. Legal only for the
// active player during the play phase.
func (p *Player) Play(c *Card) error {
	if err := p.requireActive(); err != nil {
		return err
	}
	if p.game.phase != PhasePlay {
		return illegalMovef("can only play facedowns during the play phase, not %s", p.game.phase)
	}
	if c.owner != p || c.zone != ZoneHand {
		return illegalMovef("card %s is not in %s's hand", c.Name(), p.name)
	}
	c.hasAttacked = false
	return p.moveCard(c, ZoneFacedown)
}

// RevealFacedown pays a face-down card's cost and turns it face-up,
// triggering its spawn effect. Legal only for the active player during the
// reveal phase.
func (p *Player) RevealFacedown(c *Card) error {
	if err := p.requireActive(); err != nil {
		return err
	}
	if p.game.phase != PhaseReveal {
		return illegalMovef("can only reveal facedowns during the reveal phase, not %s", p.game.phase)
	}
	if c.owner != p || c.zone != ZoneFacedown {
		return illegalMovef("card %s is not one of %s's facedowns", c.Name(), p.name)
	}
	if p.mana < c.Cost() {
		return illegalMovef("not enough mana: have %d, need %d", p.mana, c.Cost())
	}
	p.mana -= c.Cost()
	return p.moveCard(c, ZoneFaceup)
}

// PlayFaceup plays a card from hand straight onto the face-up board. Only
// cards marked PlaysFaceUp allow this, during the reveal phase, for cost.
func (p *Player) PlayFaceup(c *Card) error {
	if err := p.requireActive(); err != nil {
		return err
	}
	if p.game.phase != PhaseReveal {
		return illegalMovef("can only play faceups during the reveal phase, not %s", p.game.phase)
	}
	if c.owner != p || c.zone != ZoneHand {
		return illegalMovef("card %s is not in %s's hand", c.Name(), p.name)
	}
	if !c.tpl.PlaysFaceUp {
		return illegalMovef("card %s does not play face-up", c.Name())
	}
	if p.mana < c.Cost() {
		return illegalMovef("not enough mana: have %d, need %d", p.mana, c.Cost())
	}
	p.mana -= c.Cost()
	return p.moveCard(c, ZoneFaceup)
}

func (p *Player) checkAttack(attacker *Card) error {
	if err := p.requireActive(); err != nil {
		return err
	}
	if attacker.owner != p || attacker.zone != ZoneFaceup {
		return illegalMovef("attacker %s is not one of %s's faceups", attacker.Name(), p.name)
	}
	if attacker.hasAttacked {
		return illegalMovef("%s can only attack once per turn", attacker.Name())
	}
	return nil
}

// AttackFace attacks the enemy player directly, raising their mana cap by
// the attacker's rank. Pushing the cap past the limit ends the match in the
// attacker's favor.
func (p *Player) AttackFace(attacker *Card) error {
	if err := p.checkAttack(attacker); err != nil {
		return err
	}
	attacker.hasAttacked = true
	err := p.game.AddManaCap(p.Enemy(), attacker.Rank())
	p.game.redraw()
	return err
}

// Attack resolves an attack against an enemy board card via the combat
// resolver. Attacking your own cards is illegal, never silently ignored.
func (p *Player) Attack(attacker, target *Card) error {
	if err := p.checkAttack(attacker); err != nil {
		return err
	}
	if target.owner == p {
		return illegalMovef("cannot attack your own cards")
	}
	if target.zone != ZoneFaceup && target.zone != ZoneFacedown {
		return illegalMovef("cannot attack a card in zone %s", target.zone)
	}
	attacker.hasAttacked = true
	return p.game.Fight(target, attacker)
}

// EndPhase advances the game's phase. Legal only for the active player.
func (p *Player) EndPhase() error {
	return p.game.EndPhase(p)
}

// AcceptTarget resolves this player's pending targeting session with the
// card at zone/index on the session's side. A negative index is the
// explicit no-target answer: the session closes and the effect is
// forfeited. An out-of-range index leaves the session open.
func (p *Player) AcceptTarget(z Zone, index int) error {
	sess := p.activeAbility
	if sess == nil {
		return illegalMovef("%s has no ability awaiting a target", p.name)
	}
	if index < 0 {
		p.activeAbility = nil
		p.game.redraw()
		return nil
	}
	if !sess.allowsZone(z) {
		p.activeAbility = nil
		p.game.redraw()
		return &InvalidTargetError{Reason: "zone " + z.String() + " cannot be targeted by " + sess.card.Name()}
	}
	target, err := sess.side.CardAt(z, index)
	if err != nil {
		return err
	}
	p.activeAbility = nil
	if err := sess.resolve(target); err != nil {
		p.game.redraw()
		return err
	}
	p.game.redraw()
	return nil
}
