package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyFrame is returned when a frame carries no payload. Empty frames
// are ignored, not treated as protocol violations.
var ErrEmptyFrame = errors.New("empty frame")

// Encode builds an outbound frame: the opcode followed by its arguments,
// colon-separated, ASCII decimal.
func Encode(op ClientOp, args ...int) []byte {
	return encodeInts(int(op), args)
}

// EncodeServer builds a client-to-server frame. Used by clients and tests.
func EncodeServer(op ServerOp, args ...int) []byte {
	return encodeInts(int(op), args)
}

func encodeInts(op int, args []int) []byte {
	var b strings.Builder
	b.WriteString(strconv.Itoa(op))
	for _, arg := range args {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(arg))
	}
	return []byte(b.String())
}

// Decode splits a frame into its opcode and positional integer arguments.
// Every token must parse as an integer; a malformed token rejects the whole
// frame.
func Decode(payload []byte) (int, []int, error) {
	text := strings.TrimSpace(string(payload))
	if text == "" {
		return 0, nil, ErrEmptyFrame
	}
	tokens := strings.Split(text, ":")
	values := make([]int, 0, len(tokens))
	for _, token := range tokens {
		v, err := strconv.Atoi(token)
		if err != nil {
			return 0, nil, fmt.Errorf("malformed frame %q: %w", text, err)
		}
		values = append(values, v)
	}
	return values[0], values[1:], nil
}
