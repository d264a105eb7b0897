package protocol

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Handler binds an opcode to a statically typed function with a declared
// arity. Variadic handlers accept any number of arguments past the fixed
// ones; everything else must match exactly.
type Handler struct {
	Name     string
	Arity    int
	Variadic bool
	Fn       func(addr string, args []int) error
}

// Dispatcher maps inbound opcodes to their handlers. It replaces by-name
// method lookup with an explicit enumeration: unknown opcodes and arity
// mismatches are rejected before any handler runs.
type Dispatcher struct {
	logger   *zap.Logger
	handlers map[ServerOp]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		logger:   logger,
		handlers: make(map[ServerOp]Handler),
	}
}

// Register binds a handler to an opcode, replacing any previous binding.
func (d *Dispatcher) Register(op ServerOp, h Handler) {
	if h.Name == "" {
		h.Name = op.String()
	}
	d.handlers[op] = h
}

// Dispatch decodes one inbound frame and invokes the matching handler.
// Empty frames are dropped silently; malformed frames, unknown opcodes and
// arity mismatches are returned as errors without invoking anything.
func (d *Dispatcher) Dispatch(addr string, payload []byte) error {
	op, args, err := Decode(payload)
	if err != nil {
		if errors.Is(err, ErrEmptyFrame) {
			return nil
		}
		return err
	}

	h, ok := d.handlers[ServerOp(op)]
	if !ok {
		return fmt.Errorf("unknown opcode %d from %s", op, addr)
	}

	if h.Variadic {
		if len(args) < h.Arity {
			return fmt.Errorf("opcode %s wants at least %d args, got %d", h.Name, h.Arity, len(args))
		}
	} else if len(args) != h.Arity {
		return fmt.Errorf("opcode %s wants %d args, got %d", h.Name, h.Arity, len(args))
	}

	d.logger.Debug("dispatching opcode",
		zap.String("opcode", h.Name),
		zap.String("addr", addr),
		zap.Ints("args", args),
	)
	return h.Fn(addr, args)
}
