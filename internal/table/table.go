package table

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"holdem-table/internal/commentary"
	"holdem-table/internal/game"
)

// Observer receives the table's outbound frames. Send must not block; the ws
// layer satisfies this with a buffered channel that drops on overflow.
type Observer interface {
	ID() string
	Send(msg []byte)
}

type Config struct {
	TableID    string
	SmallBlind int64
	BigBlind   int64
	MinBuyIn   int64 // zero disables the bound
	MaxBuyIn   int64 // zero disables the bound
	Pacing     time.Duration
	Recorder   game.Recorder
	Commentary commentary.Service
	Logger     zerolog.Logger
	Rand       *rand.Rand
}

// Table owns one engine and serializes every mutation through a single
// goroutine. Public methods enqueue work and wait for it, so callers from any
// goroutine observe a consistent table.
type Table struct {
	engine    *game.Engine
	comm      commentary.Service
	pacing    time.Duration
	minBuyIn  int64
	maxBuyIn  int64
	log       zerolog.Logger
	cmdCh     chan func()
	done      chan struct{}
	observers map[string]Observer
}

func New(cfg Config) *Table {
	comm := cfg.Commentary
	if comm == nil {
		comm = commentary.Noop{}
	}
	t := &Table{
		engine:    game.NewEngine(cfg.Recorder, cfg.TableID, cfg.SmallBlind, cfg.BigBlind, cfg.Rand),
		comm:      comm,
		pacing:    cfg.Pacing,
		minBuyIn:  cfg.MinBuyIn,
		maxBuyIn:  cfg.MaxBuyIn,
		log:       cfg.Logger.With().Str("table_id", cfg.TableID).Logger(),
		cmdCh:     make(chan func(), 16),
		done:      make(chan struct{}),
		observers: map[string]Observer{},
	}
	go t.run()
	return t
}

func (t *Table) run() {
	for {
		select {
		case fn := <-t.cmdCh:
			fn()
		case <-t.done:
			return
		}
	}
}

// do runs fn on the table goroutine and waits for it.
func (t *Table) do(fn func()) {
	ran := make(chan struct{})
	select {
	case t.cmdCh <- func() { fn(); close(ran) }:
	case <-t.done:
		return
	}
	select {
	case <-ran:
	case <-t.done:
	}
}

func (t *Table) Close() {
	close(t.done)
}

func (t *Table) Sit(seat int, id, name string, buyIn int64) error {
	if t.minBuyIn > 0 && buyIn < t.minBuyIn {
		return game.ErrInvalidBuyIn
	}
	if t.maxBuyIn > 0 && buyIn > t.maxBuyIn {
		return game.ErrInvalidBuyIn
	}
	var err error
	t.do(func() {
		err = t.engine.Sit(seat, id, name, buyIn)
		if err == nil {
			t.broadcast()
		}
	})
	return err
}

func (t *Table) Stand(seat int, ownerID string) error {
	var err error
	t.do(func() {
		err = t.engine.Stand(seat, ownerID)
		if err == nil {
			t.broadcast()
		}
	})
	return err
}

func (t *Table) StartHand(ctx context.Context) error {
	var err error
	t.do(func() {
		err = t.engine.StartHand(ctx)
		if err == nil {
			t.log.Info().Str("hand_id", t.engine.State.HandID).Msg("hand_start")
			t.broadcast()
		}
	})
	return err
}

// Act applies one player action. ownerID must match the seat's identity; an
// empty ownerID is the trusted local caller. When the action closes a betting
// round the table runs the remaining streets itself, pacing each reveal, and
// no other command is admitted until the hand settles.
func (t *Table) Act(ctx context.Context, seat int, ownerID string, action game.ActionType, amount int64) error {
	var err error
	t.do(func() {
		s := t.engine.State
		if seat >= 0 && seat < game.NumSeats && ownerID != "" && s.Seats[seat].ID != ownerID {
			err = game.ErrNotSeatOwner
			return
		}
		var done bool
		done, err = t.engine.ApplyAction(ctx, game.Action{Seat: seat, Type: action, Amount: amount})
		if err != nil {
			return
		}
		t.log.Info().Str("action", string(action)).Int("seat", seat).Msg("action_applied")
		t.broadcast()
		if done {
			t.runOut(ctx)
		}
	})
	return err
}

// runOut advances street by street until the hand is over. The pacing sleep
// runs on the table goroutine, so no other command is admitted mid-runout.
func (t *Table) runOut(ctx context.Context) {
	for !t.engine.HandOver() {
		if t.pacing > 0 {
			time.Sleep(t.pacing)
		}
		if err := t.engine.AdvanceRound(ctx); err != nil {
			t.log.Error().Err(err).Msg("hand aborted")
			t.broadcast()
			return
		}
		t.broadcast()
		if !t.engine.HandOver() && !t.engine.RoundComplete() {
			// Someone can still act on this street.
			return
		}
	}
	t.finishHand(ctx)
}

// finishHand logs the settlement and requests commentary. The backend call
// runs off the table goroutine; a slow summarizer must not hold up the next
// command.
func (t *Table) finishHand(ctx context.Context) {
	s := t.engine.State
	t.log.Info().Str("hand_id", s.HandID).Int64("pot", potTotal(s)).Msg("hand_end")
	snap := s.SnapshotFor("", true)
	handID := s.HandID
	obs := make([]Observer, 0, len(t.observers))
	for _, o := range t.observers {
		obs = append(obs, o)
	}
	// The hand is already settled, so the acting request's cancellation
	// must not cut the summary short.
	ctx = context.WithoutCancel(ctx)
	go func() {
		text := t.comm.Summarize(ctx, snap)
		if text == "" {
			return
		}
		msg, err := json.Marshal(Commentary{
			Type:            "commentary",
			ProtocolVersion: game.ProtocolVersion,
			HandID:          handID,
			Text:            text,
		})
		if err != nil {
			return
		}
		for _, o := range obs {
			o.Send(msg)
		}
	}()
}

func potTotal(s *game.TableState) int64 {
	var total int64
	for _, w := range s.Winners {
		total += w.Amount
	}
	return total
}

// Commentary is the spectator commentary frame.
type Commentary struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	HandID          string `json:"hand_id,omitempty"`
	Text            string `json:"text"`
}

// Subscribe registers an observer and immediately sends it a snapshot.
func (t *Table) Subscribe(o Observer) {
	t.do(func() {
		t.observers[o.ID()] = o
		t.sendSnapshot(o)
	})
}

func (t *Table) Unsubscribe(id string) {
	t.do(func() {
		delete(t.observers, id)
	})
}

// Snapshot projects the table for one observer, redacting hole cards the
// observer may not see.
func (t *Table) Snapshot(observerID string) game.Snapshot {
	var snap game.Snapshot
	t.do(func() {
		snap = t.engine.State.SnapshotFor(observerID, false)
	})
	return snap
}

// RevealSnapshot shows every live hand. Only for trusted local callers.
func (t *Table) RevealSnapshot() game.Snapshot {
	var snap game.Snapshot
	t.do(func() {
		snap = t.engine.State.SnapshotFor("", true)
	})
	return snap
}

// Advise asks the commentary backend for a hint for one seat.
func (t *Table) Advise(ctx context.Context, seat int) string {
	var snap game.Snapshot
	var id string
	t.do(func() {
		if seat >= 0 && seat < game.NumSeats {
			id = t.engine.State.Seats[seat].ID
		}
		snap = t.engine.State.SnapshotFor(id, false)
	})
	return t.comm.Advise(ctx, snap, seat)
}

func (t *Table) broadcast() {
	for _, o := range t.observers {
		t.sendSnapshot(o)
	}
}

func (t *Table) sendSnapshot(o Observer) {
	msg, err := json.Marshal(t.engine.State.SnapshotFor(o.ID(), false))
	if err != nil {
		return
	}
	o.Send(msg)
}
