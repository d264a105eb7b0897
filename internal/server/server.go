// Package server hosts one authoritative match: it binds client addresses
// to seats, dispatches inbound opcodes to the engine, pushes full-state
// broadcasts after every mutation, and retransmits frames the transport
// failed to deliver.
package server

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/overlordgame/overlord-server-go/internal/game"
	"github.com/overlordgame/overlord-server-go/internal/game/factions"
	"github.com/overlordgame/overlord-server-go/internal/protocol"
	"github.com/overlordgame/overlord-server-go/internal/repository"
	"github.com/overlordgame/overlord-server-go/internal/transport"
)

// Config tunes the poll loop and the retransmission pass.
type Config struct {
	// PollInterval is the fixed sleep between loop iterations.
	PollInterval time.Duration
	// RetransmitEvery is the retransmission cadence, counted in loop
	// iterations rather than wall-clock time.
	RetransmitEvery int
	// MaxPendingFrames bounds the per-client retransmission queue; the
	// oldest frames are dropped first, which is safe because every
	// broadcast carries the full state anyway.
	MaxPendingFrames int
}

// MatchServer runs a single two-player match over a frame transport. All
// state is owned by the single poll-loop goroutine: each inbound frame is
// dispatched synchronously to completion, so the engine needs no locking.
type MatchServer struct {
	cfg        Config
	logger     *zap.Logger
	tp         transport.Transport
	dispatcher *protocol.Dispatcher
	rules      game.Ruleset
	store      *repository.MatchStore

	g         *game.Game
	matchID   uuid.UUID
	startedAt time.Time

	seats map[string]int
	addrs []string
	// factionPicks is keyed by address, not seat: the match starts the
	// instant the second player joins, so picks must be accepted before a
	// client holds a seat.
	factionPicks map[string]int

	pending  map[string][][]byte
	tick     int
	finished bool
}

// NewMatchServer wires the dispatcher to the engine actions. The store may
// be nil to disable match persistence.
func NewMatchServer(cfg Config, tp transport.Transport, rules game.Ruleset, store *repository.MatchStore, logger *zap.Logger) *MatchServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxPendingFrames <= 0 {
		cfg.MaxPendingFrames = 256
	}
	if cfg.RetransmitEvery <= 0 {
		cfg.RetransmitEvery = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Millisecond
	}
	s := &MatchServer{
		cfg:        cfg,
		logger:     logger,
		tp:         tp,
		dispatcher: protocol.NewDispatcher(logger),
		rules:      rules,
		store:      store,
		seats:        make(map[string]int),
		factionPicks: make(map[string]int),
		pending:      make(map[string][][]byte),
	}
	s.registerHandlers()
	return s
}

func (s *MatchServer) registerHandlers() {
	s.dispatcher.Register(protocol.OpAddPlayer, protocol.Handler{Arity: 0, Fn: s.handleAddPlayer})
	s.dispatcher.Register(protocol.OpSelectFaction, protocol.Handler{Arity: 1, Fn: s.handleSelectFaction})
	s.dispatcher.Register(protocol.OpRevealFacedown, protocol.Handler{Arity: 1, Fn: s.handleRevealFacedown})
	s.dispatcher.Register(protocol.OpPlayFaceup, protocol.Handler{Arity: 1, Fn: s.handlePlayFaceup})
	s.dispatcher.Register(protocol.OpAttack, protocol.Handler{Arity: 3, Fn: s.handleAttack})
	s.dispatcher.Register(protocol.OpPlay, protocol.Handler{Arity: 1, Fn: s.handlePlay})
	s.dispatcher.Register(protocol.OpAcceptTarget, protocol.Handler{Arity: 2, Fn: s.handleAcceptTarget})
	s.dispatcher.Register(protocol.OpEndPhase, protocol.Handler{Arity: 0, Fn: s.handleEndPhase})
}

// Run drives the poll loop until the match finishes or the context is
// cancelled: receive one frame, dispatch synchronously, count the tick,
// retransmit on cadence, sleep.
func (s *MatchServer) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if frame, ok := s.tp.Recv(); ok && !s.finished {
				if err := s.dispatcher.Dispatch(frame.Addr, frame.Payload); err != nil {
					s.logger.Warn("action rejected",
						zap.String("addr", frame.Addr),
						zap.Error(err),
					)
				}
			}

			s.tick++
			if s.tick%s.cfg.RetransmitEvery == 0 {
				s.flushPending()
			}

			if s.finished {
				s.flushPending()
				return nil
			}
		}
	}
}

// Game exposes the running match, or nil before both players have joined.
func (s *MatchServer) Game() *game.Game { return s.g }

func (s *MatchServer) handleAddPlayer(addr string, _ []int) error {
	if s.g != nil {
		if _, ok := s.seats[addr]; ok {
			// A rejoining client just needs its state again.
			s.Redraw(s.g)
			return nil
		}
		return fmt.Errorf("cannot add more players: match already started")
	}
	if _, ok := s.seats[addr]; ok {
		return nil
	}
	if len(s.addrs) >= 2 {
		return fmt.Errorf("cannot add more players")
	}

	seat := len(s.addrs)
	s.seats[addr] = seat
	s.addrs = append(s.addrs, addr)
	s.logger.Info("player joined",
		zap.String("addr", addr),
		zap.Int("seat", seat),
	)

	if len(s.addrs) == 2 {
		return s.startMatch()
	}
	return nil
}

func (s *MatchServer) handleSelectFaction(addr string, args []int) error {
	if s.g != nil {
		return illegal("cannot select a faction after the match has started")
	}
	index := args[0]
	if _, err := factions.ByIndex(index); err != nil {
		return err
	}
	s.factionPicks[addr] = index
	return nil
}

func (s *MatchServer) startMatch() error {
	pickA := s.factionPicks[s.addrs[0]]
	pickB := s.factionPicks[s.addrs[1]]
	factionA, err := factions.ByIndex(pickA)
	if err != nil {
		return err
	}
	factionB, err := factions.ByIndex(pickB)
	if err != nil {
		return err
	}

	s.matchID = uuid.New()
	s.startedAt = time.Now()
	s.g = game.NewGame(factionA, factionB, s.rules,
		rand.New(rand.NewSource(time.Now().UnixNano())), s.logger)
	s.g.SetBroadcaster(s)

	// Each client learns the opposing faction before the first snapshot so
	// it can resolve enemy card indices against the right deck table.
	s.send(s.addrs[0], protocol.Encode(protocol.OpUpdateEnemyFaction, pickB))
	s.send(s.addrs[1], protocol.Encode(protocol.OpUpdateEnemyFaction, pickA))

	s.logger.Info("starting match",
		zap.String("match_id", s.matchID.String()),
		zap.String("faction_a", factionA.Name),
		zap.String("faction_b", factionB.Name),
	)
	return s.g.Start()
}

func (s *MatchServer) playerFor(addr string) (*game.Player, error) {
	if s.g == nil {
		return nil, fmt.Errorf("match has not started")
	}
	seat, ok := s.seats[addr]
	if !ok {
		return nil, fmt.Errorf("address %s has no seat", addr)
	}
	return s.g.Player(seat), nil
}

// afterAction funnels every engine action result: a terminal EndOfGame
// finishes the match, a recoverable error propagates for logging, and a
// success checks whether the action left an ability awaiting a target.
func (s *MatchServer) afterAction(p *game.Player, err error) error {
	var eog *game.EndOfGame
	if errors.As(err, &eog) {
		s.finish(eog.Winner)
		return nil
	}
	if err != nil {
		return err
	}
	if sess := p.ActiveAbility(); sess != nil {
		zone, index := sess.Position()
		s.send(s.addrs[p.Seat()], protocol.Encode(protocol.OpRequestTarget, int(zone), index))
	}
	return nil
}

func (s *MatchServer) handleRevealFacedown(addr string, args []int) error {
	p, err := s.playerFor(addr)
	if err != nil {
		return err
	}
	c, err := p.CardAt(game.ZoneFacedown, args[0])
	if err != nil {
		return err
	}
	return s.afterAction(p, p.RevealFacedown(c))
}

func (s *MatchServer) handlePlayFaceup(addr string, args []int) error {
	p, err := s.playerFor(addr)
	if err != nil {
		return err
	}
	c, err := p.CardAt(game.ZoneHand, args[0])
	if err != nil {
		return err
	}
	return s.afterAction(p, p.PlayFaceup(c))
}

func (s *MatchServer) handleAttack(addr string, args []int) error {
	p, err := s.playerFor(addr)
	if err != nil {
		return err
	}
	attacker, err := p.CardAt(game.ZoneFaceup, args[0])
	if err != nil {
		return err
	}

	targetZone := game.Zone(args[2])
	if targetZone == game.ZoneFace {
		return s.afterAction(p, p.AttackFace(attacker))
	}
	if targetZone != game.ZoneFaceup && targetZone != game.ZoneFacedown {
		return illegal("cannot attack zone " + targetZone.String())
	}
	target, err := p.Enemy().CardAt(targetZone, args[1])
	if err != nil {
		return err
	}
	return s.afterAction(p, p.Attack(attacker, target))
}

func (s *MatchServer) handlePlay(addr string, args []int) error {
	p, err := s.playerFor(addr)
	if err != nil {
		return err
	}
	c, err := p.CardAt(game.ZoneHand, args[0])
	if err != nil {
		return err
	}
	return s.afterAction(p, p.Play(c))
}

func (s *MatchServer) handleAcceptTarget(addr string, args []int) error {
	p, err := s.playerFor(addr)
	if err != nil {
		return err
	}
	return s.afterAction(p, p.AcceptTarget(game.Zone(args[0]), args[1]))
}

func (s *MatchServer) handleEndPhase(addr string, _ []int) error {
	p, err := s.playerFor(addr)
	if err != nil {
		return err
	}
	return s.afterAction(p, p.EndPhase())
}

func illegal(reason string) error {
	return fmt.Errorf("illegal move: %s", reason)
}

func wireIDs(cards []*game.Card) []int {
	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.WireID()
	}
	return ids
}

func (s *MatchServer) viewFor(seat int) protocol.PlayerView {
	p := s.g.Player(seat)
	enemy := p.Enemy()
	return protocol.PlayerView{
		Hand:               wireIDs(p.Hand()),
		Facedowns:          wireIDs(p.Facedowns()),
		Faceups:            wireIDs(p.Faceups()),
		ManaCap:            p.ManaCap(),
		Mana:               p.Mana(),
		Phase:              int(s.g.Phase()),
		Active:             p.IsActive(),
		EnemyHandCount:     len(enemy.Hand()),
		EnemyFacedownCount: len(enemy.Facedowns()),
		EnemyFaceups:       wireIDs(enemy.Faceups()),
		EnemyManaCap:       enemy.ManaCap(),
	}
}

// Redraw implements game.Broadcaster: every state-affecting mutation pushes
// the complete snapshot to both clients.
func (s *MatchServer) Redraw(g *game.Game) {
	for seat, addr := range s.addrs {
		for _, frame := range protocol.Snapshot(s.viewFor(seat)) {
			s.send(addr, frame)
		}
	}
}

func (s *MatchServer) finish(winner *game.Player) {
	if s.finished {
		return
	}
	s.finished = true

	winnerAddr := s.addrs[winner.Seat()]
	loserAddr := s.addrs[winner.Enemy().Seat()]
	s.send(winnerAddr, protocol.Encode(protocol.OpWinGame))
	s.send(loserAddr, protocol.Encode(protocol.OpLoseGame))

	s.logger.Info("match finished",
		zap.String("match_id", s.matchID.String()),
		zap.String("winner", winnerAddr),
		zap.Int("turns", s.g.TurnCount()),
	)
	s.recordResult(winner, winnerAddr, loserAddr)
}

func (s *MatchServer) recordResult(winner *game.Player, winnerAddr, loserAddr string) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := repository.MatchResult{
		ID:            s.matchID,
		Winner:        winnerAddr,
		Loser:         loserAddr,
		WinnerFaction: winner.Faction().Name,
		LoserFaction:  winner.Enemy().Faction().Name,
		Turns:         s.g.TurnCount(),
		Duration:      time.Since(s.startedAt),
		FinishedAt:    time.Now(),
	}
	if err := s.store.RecordMatch(ctx, result); err != nil {
		// Persistence must never fail the match that produced it.
		s.logger.Error("failed to record match result", zap.Error(err))
	}
}

// send writes one frame, queueing it for the retransmission pass when the
// transport rejects it.
func (s *MatchServer) send(addr string, payload []byte) {
	if err := s.tp.Send(addr, payload); err != nil {
		s.logger.Debug("send failed, queued for retransmit",
			zap.String("addr", addr),
			zap.Error(err),
		)
		q := append(s.pending[addr], payload)
		if len(q) > s.cfg.MaxPendingFrames {
			q = q[len(q)-s.cfg.MaxPendingFrames:]
		}
		s.pending[addr] = q
	}
}

// flushPending resends whatever is outstanding, in order, keeping frames
// that fail again. There is no per-frame acknowledgment; the retry is
// deliberately coarse.
func (s *MatchServer) flushPending() {
	for addr, frames := range s.pending {
		var failed [][]byte
		for _, frame := range frames {
			if len(failed) > 0 {
				failed = append(failed, frame)
				continue
			}
			if err := s.tp.Send(addr, frame); err != nil {
				failed = append(failed, frame)
			}
		}
		if len(failed) == 0 {
			delete(s.pending, addr)
		} else {
			s.pending[addr] = failed
		}
	}
}

// PendingFrames reports the retransmission backlog for an address.
func (s *MatchServer) PendingFrames(addr string) int {
	return len(s.pending[addr])
}
