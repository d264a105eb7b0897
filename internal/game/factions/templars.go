package factions

import "github.com/overlordgame/overlord-server-go/internal/game"

// Equus has rank 2 while its owner's mana cap is even and rank 5 while it is
// odd. The rank is derived on every read, never stored.
func Equus() *game.Template {
	return &game.Template{
		Name:  "Equus",
		Image: "horse-head.png",
		Desc:  "Has rank 2 if your mana cap is even and rank 5 if your mana cap is odd.",
		Cost:  3,
		RankFunc: func(owner *game.Player) int {
			if owner.ManaCap()%2 == 0 {
				return 2
			}
			return 5
		},
	}
}

// Archangel is a plain body large enough to end most fights it picks.
func Archangel() *game.Template {
	return &game.Template{
		Name:  "Archangel",
		Image: "angel-wings.png",
		Cost:  13,
		Rank:  15,
	}
}

type holyHandGrenadeBehavior struct{}

func (holyHandGrenadeBehavior) OnGetTarget(g *game.Game, self, target *game.Card) error {
	if err := g.Destroy(target); err != nil {
		return err
	}
	return self.MoveZone(game.ZoneGraveyard)
}

// HolyHandGrenade destroys a target enemy board card, then puts itself in
// the graveyard. The target arrives over a later network round-trip.
func HolyHandGrenade() *game.Template {
	return &game.Template{
		Name:           "Holy Hand Grenade",
		Image:          "holy-hand-grenade.png",
		Desc:           "Destroy target card.",
		Cost:           4,
		Spell:          true,
		PlaysFaceUp:    true,
		RequiresTarget: true,
		Behavior:       holyHandGrenadeBehavior{},
	}
}

// WrathOfGod is the templar printing of the board sweep.
func WrathOfGod() *game.Template {
	tpl := Sweep()
	tpl.Name = "Wrath of God"
	tpl.PlaysFaceUp = true
	return tpl
}

type corvusBehavior struct{}

func (corvusBehavior) OnSpawn(g *game.Game, self *game.Card) error {
	return g.AddManaCap(self.Owner(), 1)
}

// Corvus grows its owner's mana cap by one when it spawns. The cap win
// check applies: a player at the threshold loses to their own raven.
func Corvus() *game.Template {
	return &game.Template{
		Name:     "Corvus",
		Image:    "raven.png",
		Desc:     "When this spawns, add 1 to your mana cap.",
		Cost:     1,
		Rank:     1,
		Behavior: corvusBehavior{},
	}
}

type miracleBehavior struct{}

func (miracleBehavior) OnSpawn(g *game.Game, self *game.Card) error {
	owner := self.Owner()
	for len(owner.Hand()) < 5 && owner.DeckSize() > 0 {
		if err := owner.DrawCard(); err != nil {
			return err
		}
	}
	return self.MoveZone(game.ZoneGraveyard)
}

// Miracle refills its owner's hand to five cards.
func Miracle() *game.Template {
	return &game.Template{
		Name:     "Miracle",
		Image:    "sundial.png",
		Desc:     "Draw until you have 5 cards in hand.",
		Cost:     6,
		Spell:    true,
		Behavior: miracleBehavior{},
	}
}

type crystalElementalBehavior struct{}

func (crystalElementalBehavior) AfterEvent(g *game.Game, self *game.Card, ev game.Event) error {
	if ev.Type != game.EventDestroy {
		return nil
	}
	if ev.Card == nil || ev.Card.Owner() == self.Owner() {
		return nil
	}
	if ev.FromZone != game.ZoneFacedown {
		return nil
	}
	return self.Owner().DrawCard()
}

// CrystalElemental draws its owner a card whenever an enemy face-down card
// is destroyed. It observes events passively from the board.
func CrystalElemental() *game.Template {
	return &game.Template{
		Name:     "Crystal Elemental",
		Image:    "crystal-cluster.png",
		Desc:     "Whenever you destroy an enemy face-down card, draw a card.",
		Cost:     7,
		Rank:     4,
		Behavior: crystalElementalBehavior{},
	}
}

// Templars builds the templar faction with its deck in wire order.
func Templars() *game.Faction {
	deck := []*game.Template{
		Equus(), Equus(),
		Corvus(),
		HolyHandGrenade(),
		WrathOfGod(),
		Archangel(),
		Miracle(),
		CrystalElemental(),
	}
	deck = append(deck, BaseDeck()...)
	return &game.Faction{
		Name:     "Templars",
		IconPath: "./templar_icons",
		CardBack: "templar-shield.png",
		Deck:     deck,
	}
}
