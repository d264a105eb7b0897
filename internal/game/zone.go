package game

import "fmt"

// Zone identifies one of a player's card containers, or the player's face.
// The integer values are part of the wire protocol: clients reference zones
// by these numbers when attacking and when answering target requests.
type Zone int

const (
	ZoneFace Zone = iota
	ZoneFaceup
	ZoneFacedown
	ZoneHand
	ZoneGraveyard
	ZoneDeck
)

var zoneNames = map[Zone]string{
	ZoneFace:      "FACE",
	ZoneFaceup:    "FACEUP",
	ZoneFacedown:  "FACEDOWN",
	ZoneHand:      "HAND",
	ZoneGraveyard: "GRAVEYARD",
	ZoneDeck:      "DECK",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// Phase represents the four phases of a turn. Phases advance monotonically
// within a turn; leaving the play phase ends the turn.
type Phase int

const (
	PhaseReveal Phase = iota
	PhaseDraw
	PhaseAttack
	PhasePlay
)

var phaseNames = map[Phase]string{
	PhaseReveal: "REVEAL",
	PhaseDraw:   "DRAW",
	PhaseAttack: "ATTACK",
	PhasePlay:   "PLAY",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}
