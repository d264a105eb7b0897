// Package factions holds the deck template tables shared by server and
// clients. The ordering of each faction's deck is part of the wire protocol:
// cards are identified across the network by their index into it.
package factions

import (
	"fmt"

	"github.com/overlordgame/overlord-server-go/internal/game"
)

// vanilla builds a plain creature with equal cost and rank.
func vanilla(name, image string, n int) *game.Template {
	return &game.Template{
		Name:  name,
		Image: image,
		Cost:  n,
		Rank:  n,
	}
}

// One through Five are the vanilla cards every faction's deck is padded with.

func One() *game.Template { return vanilla("One", "dice-six-faces-one.png", 1) }

func Two() *game.Template { return vanilla("Two", "dice-six-faces-two.png", 2) }

func Three() *game.Template { return vanilla("Three", "dice-six-faces-three.png", 3) }

func Four() *game.Template { return vanilla("Four", "dice-six-faces-four.png", 4) }

func Five() *game.Template { return vanilla("Five", "dice-six-faces-five.png", 5) }

// BaseDeck returns the vanilla cards included in every faction deck, two of
// each rank.
func BaseDeck() []*game.Template {
	return []*game.Template{
		One(), One(),
		Two(), Two(),
		Three(), Three(),
		Four(), Four(),
		Five(), Five(),
	}
}

type sweepBehavior struct{}

func (sweepBehavior) OnSpawn(g *game.Game, self *game.Card) error {
	for seat := 0; seat < 2; seat++ {
		p := g.Player(seat)
		board := make([]*game.Card, len(p.Faceups()))
		copy(board, p.Faceups())
		for _, c := range board {
			if c.Zone() != game.ZoneFaceup {
				continue
			}
			if err := g.Destroy(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sweep destroys every face-up card on both boards, itself included.
func Sweep() *game.Template {
	return &game.Template{
		Name:     "Sweep",
		Image:    "wind-hole.png",
		Desc:     "Destroy all face-up cards.",
		Cost:     5,
		Spell:    true,
		Behavior: sweepBehavior{},
	}
}

// registry lists the selectable factions in wire order.
var registry = []func() *game.Faction{
	Templars,
	Fae,
}

// Count returns the number of selectable factions.
func Count() int { return len(registry) }

// ByIndex builds the faction with the given wire index.
func ByIndex(index int) (*game.Faction, error) {
	if index < 0 || index >= len(registry) {
		return nil, fmt.Errorf("unknown faction index %d", index)
	}
	return registry[index](), nil
}

// IndexOf returns the wire index for a faction name, or -1.
func IndexOf(name string) int {
	for i, build := range registry {
		if build().Name == name {
			return i
		}
	}
	return -1
}
