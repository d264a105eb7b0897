package factions

import "github.com/overlordgame/overlord-server-go/internal/game"

// FaerieMoth is the fae chaff creature.
func FaerieMoth() *game.Template {
	return &game.Template{
		Name:  "Faerie Moth",
		Image: "butterfly.png",
		Cost:  1,
		Rank:  1,
	}
}

type oberonsGuardBehavior struct{}

func (oberonsGuardBehavior) OnGetTarget(g *game.Game, self, target *game.Card) error {
	if target.Owner() != self.Owner() || target.Zone() != game.ZoneFacedown {
		return &game.InvalidTargetError{Reason: "Oberon's Guard can only return a face-down card you control"}
	}
	return target.MoveZone(game.ZoneHand)
}

// OberonsGuard may bounce one of its controller's own face-down cards back
// to hand when it spawns. Unlike most targeted abilities, the target is
// chosen from the controller's board, not the enemy's.
func OberonsGuard() *game.Template {
	return &game.Template{
		Name:           "Oberon's Guard",
		Image:          "elf-helmet.png",
		Desc:           "When this spawns, you may return target face-down card you control to its owner's hand.",
		Cost:           2,
		Rank:           2,
		RequiresTarget: true,
		TargetsOwn:     true,
		TargetZones:    []game.Zone{game.ZoneFacedown},
		Behavior:       oberonsGuardBehavior{},
	}
}

// Fae builds the fae faction with its deck in wire order.
func Fae() *game.Faction {
	deck := []*game.Template{
		FaerieMoth(), FaerieMoth(), FaerieMoth(), FaerieMoth(), FaerieMoth(),
		OberonsGuard(), OberonsGuard(), OberonsGuard(), OberonsGuard(),
	}
	deck = append(deck, BaseDeck()...)
	return &game.Faction{
		Name:     "Fae",
		IconPath: "./fae_icons",
		CardBack: "fae-wing.png",
		Deck:     deck,
	}
}
