package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFrameSequence(t *testing.T) {
	v := PlayerView{
		Hand:               []int{3, 0, 7},
		Facedowns:          []int{2},
		Faceups:            []int{5, 5},
		ManaCap:            4,
		Mana:               2,
		Phase:              1,
		Active:             true,
		EnemyHandCount:     6,
		EnemyFacedownCount: 1,
		EnemyFaceups:       []int{9},
		EnemyManaCap:       3,
	}

	frames := Snapshot(v)
	require.Len(t, frames, 11)

	want := []string{
		"1:3:0:7", // own hand by card id
		"3:2",     // own facedowns by card id
		"5:5:5",   // own faceups by card id
		"7:4",     // mana cap
		"8:2",     // mana
		"10:1",    // phase
		"14:1",    // active seat flag
		"2:6",     // enemy hand as a count only
		"4:1",     // enemy facedowns as a count only
		"6:9",     // enemy faceups by card id
		"9:3",     // enemy mana cap
	}
	for i, frame := range frames {
		assert.Equal(t, want[i], string(frame), "frame %d", i)
	}
}

// TestSnapshotHidesEnemyInformation enemy hand and facedown identities must
// never appear in any frame, only their counts
func TestSnapshotHidesEnemyInformation(t *testing.T) {
	v := PlayerView{
		EnemyHandCount:     4,
		EnemyFacedownCount: 2,
	}
	frames := Snapshot(v)

	assert.Equal(t, "2:4", string(frames[7]))
	assert.Equal(t, "4:2", string(frames[8]))
}

func TestSnapshotEmptyZones(t *testing.T) {
	frames := Snapshot(PlayerView{})
	require.Len(t, frames, 11)
	assert.Equal(t, "1", string(frames[0]), "an empty hand is the bare opcode")
	assert.Equal(t, "14:0", string(frames[6]))
}
