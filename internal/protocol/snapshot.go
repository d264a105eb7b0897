package protocol

// PlayerView is the read-only snapshot of the game from one player's seat.
// It already enforces hidden information: the enemy's hand and face-down
// board appear only as counts, never as card identities.
type PlayerView struct {
	Hand      []int
	Facedowns []int
	Faceups   []int
	ManaCap   int
	Mana      int
	Phase     int
	Active    bool

	EnemyHandCount     int
	EnemyFacedownCount int
	EnemyFaceups       []int
	EnemyManaCap       int
}

// Snapshot encodes the full redraw frame sequence for one player. The
// server never sends deltas; after every state-affecting action each client
// receives this complete set.
func Snapshot(v PlayerView) [][]byte {
	active := 0
	if v.Active {
		active = 1
	}
	return [][]byte{
		Encode(OpUpdatePlayerHand, v.Hand...),
		Encode(OpUpdatePlayerFacedowns, v.Facedowns...),
		Encode(OpUpdatePlayerFaceups, v.Faceups...),
		Encode(OpUpdatePlayerManaCap, v.ManaCap),
		Encode(OpUpdatePlayerMana, v.Mana),
		Encode(OpUpdatePhase, v.Phase),
		Encode(OpSetActive, active),
		Encode(OpUpdateEnemyHand, v.EnemyHandCount),
		Encode(OpUpdateEnemyFacedowns, v.EnemyFacedownCount),
		Encode(OpUpdateEnemyFaceups, v.EnemyFaceups...),
		Encode(OpUpdateEnemyManaCap, v.EnemyManaCap),
	}
}
