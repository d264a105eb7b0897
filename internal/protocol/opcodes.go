// Package protocol implements the wire format that keeps clients
// synchronized with the authoritative game state: colon-separated integer
// frames, fixed opcode enumerations for both directions, an arity-checked
// dispatcher, and the full-state snapshot encoder.
package protocol

import "fmt"

// ServerOp enumerates the opcodes the server accepts from clients. The
// integer values are the wire encoding.
type ServerOp int

const (
	OpAddPlayer ServerOp = iota
	OpSelectFaction
	OpRevealFacedown
	OpPlayFaceup
	OpAttack
	OpPlay
	OpAcceptTarget
	OpEndPhase
)

var serverOpNames = map[ServerOp]string{
	OpAddPlayer:      "addPlayer",
	OpSelectFaction:  "selectFaction",
	OpRevealFacedown: "revealFacedown",
	OpPlayFaceup:     "playFaceup",
	OpAttack:         "attack",
	OpPlay:           "play",
	OpAcceptTarget:   "acceptTarget",
	OpEndPhase:       "endPhase",
}

func (op ServerOp) String() string {
	if name, ok := serverOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("serverOp(%d)", int(op))
}

// ClientOp enumerates the opcodes the server sends to clients.
type ClientOp int

const (
	OpUpdateEnemyFaction ClientOp = iota
	OpUpdatePlayerHand
	OpUpdateEnemyHand
	OpUpdatePlayerFacedowns
	OpUpdateEnemyFacedowns
	OpUpdatePlayerFaceups
	OpUpdateEnemyFaceups
	OpUpdatePlayerManaCap
	OpUpdatePlayerMana
	OpUpdateEnemyManaCap
	OpUpdatePhase
	OpRequestTarget
	OpWinGame
	OpLoseGame
	OpSetActive
)

var clientOpNames = map[ClientOp]string{
	OpUpdateEnemyFaction:    "updateEnemyFaction",
	OpUpdatePlayerHand:      "updatePlayerHand",
	OpUpdateEnemyHand:       "updateEnemyHand",
	OpUpdatePlayerFacedowns: "updatePlayerFacedowns",
	OpUpdateEnemyFacedowns:  "updateEnemyFacedowns",
	OpUpdatePlayerFaceups:   "updatePlayerFaceups",
	OpUpdateEnemyFaceups:    "updateEnemyFaceups",
	OpUpdatePlayerManaCap:   "updatePlayerManaCap",
	OpUpdatePlayerMana:      "updatePlayerMana",
	OpUpdateEnemyManaCap:    "updateEnemyManaCap",
	OpUpdatePhase:           "updatePhase",
	OpRequestTarget:         "requestTarget",
	OpWinGame:               "winGame",
	OpLoseGame:              "loseGame",
	OpSetActive:             "setActive",
}

func (op ClientOp) String() string {
	if name, ok := clientOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("clientOp(%d)", int(op))
}
