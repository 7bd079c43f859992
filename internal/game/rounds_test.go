package game

import (
	"errors"
	"testing"
)

// betEngine builds an engine mid-round without dealing, so action mechanics
// can be driven directly.
func betEngine(stacks ...int64) *Engine {
	e := NewEngine(nil, "t1", 10, 20, nil)
	s := e.State
	s.Phase = PhaseFlop
	s.MinRaise = s.BigBlind
	for i, stack := range stacks {
		s.Seats[i] = Player{ID: string(rune('a' + i)), Name: string(rune('A' + i)), Stack: stack, Status: SeatPlaying}
	}
	s.CurrentActor = 0
	return e
}

func TestCheckCheckCompletesRound(t *testing.T) {
	e := betEngine(1000, 1000)
	done, err := e.ApplyAction(nil, Action{Seat: 0, Type: ActionCheck})
	if err != nil || done {
		t.Fatalf("expected not done after first check, err=%v done=%v", err, done)
	}
	if e.State.CurrentActor != 1 {
		t.Fatalf("expected actor 1, got %d", e.State.CurrentActor)
	}
	done, err = e.ApplyAction(nil, Action{Seat: 1, Type: ActionCheck})
	if err != nil || !done {
		t.Fatalf("expected done after check/check, err=%v done=%v", err, done)
	}
}

func TestRaiseCallCompletesRound(t *testing.T) {
	e := betEngine(1000, 1000)
	done, err := e.ApplyAction(nil, Action{Seat: 0, Type: ActionRaise, Amount: 200})
	if err != nil || done {
		t.Fatalf("expected not done after raise, err=%v done=%v", err, done)
	}
	if e.State.CurrentBet != 200 || e.State.LastAggressor != 0 || e.State.MinRaise != 200 {
		t.Fatalf("raise bookkeeping wrong: %+v", e.State)
	}
	done, err = e.ApplyAction(nil, Action{Seat: 1, Type: ActionCall})
	if err != nil || !done {
		t.Fatalf("expected done after raise/call, err=%v done=%v", err, done)
	}
	if e.State.Seats[1].RoundBet != 200 || e.State.Seats[1].Stack != 800 {
		t.Fatalf("call did not match the bet: %+v", e.State.Seats[1])
	}
}

func TestCheckWhenCallOwedIsRejected(t *testing.T) {
	e := betEngine(1000, 1000)
	if _, err := e.ApplyAction(nil, Action{Seat: 0, Type: ActionRaise, Amount: 100}); err != nil {
		t.Fatalf("raise: %v", err)
	}
	before := e.State.Seats[1]
	_, err := e.ApplyAction(nil, Action{Seat: 1, Type: ActionCheck})
	if !errors.Is(err, ErrCheckNotAllowed) {
		t.Fatalf("expected ErrCheckNotAllowed, got %v", err)
	}
	after := e.State.Seats[1]
	if after.Stack != before.Stack || after.RoundBet != before.RoundBet || after.Status != before.Status || after.Acted != before.Acted {
		t.Fatalf("rejected action mutated the seat: %+v", after)
	}
	if e.State.CurrentActor != 1 {
		t.Fatalf("turn must not advance on rejection")
	}
}

func TestActionFromNonActiveSeatRejected(t *testing.T) {
	e := betEngine(1000, 1000, 1000)
	if _, err := e.ApplyAction(nil, Action{Seat: 2, Type: ActionFold}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestRaiseBelowMinimumRejected(t *testing.T) {
	e := betEngine(1000, 1000)
	// Opening bet below the big blind.
	if _, err := e.ApplyAction(nil, Action{Seat: 0, Type: ActionRaise, Amount: 5}); !errors.Is(err, ErrRaiseTooSmall) {
		t.Fatalf("expected ErrRaiseTooSmall for a short opening bet, got %v", err)
	}
	if _, err := e.ApplyAction(nil, Action{Seat: 0, Type: ActionRaise, Amount: 200}); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if e.State.MinRaise != 200 {
		t.Fatalf("raise should set the minimum re-raise, got %d", e.State.MinRaise)
	}
	p := e.State.Seats[1]
	if _, err := e.ApplyAction(nil, Action{Seat: 1, Type: ActionRaise, Amount: 50}); !errors.Is(err, ErrRaiseTooSmall) {
		t.Fatalf("expected ErrRaiseTooSmall for an undersized re-raise, got %v", err)
	}
	if e.State.Seats[1].Stack != p.Stack || e.State.CurrentBet != 200 {
		t.Fatalf("rejected raise mutated state")
	}
	if _, err := e.ApplyAction(nil, Action{Seat: 1, Type: ActionRaise, Amount: 200}); err != nil {
		t.Fatalf("full re-raise: %v", err)
	}
}

func TestShortAllInMayUndercutMinimumRaise(t *testing.T) {
	e := betEngine(1000, 130)
	if _, err := e.ApplyAction(nil, Action{Seat: 0, Type: ActionRaise, Amount: 100}); err != nil {
		t.Fatalf("raise: %v", err)
	}
	// 130 chips cannot cover a full re-raise to 200, but the shove stands.
	done, err := e.ApplyAction(nil, Action{Seat: 1, Type: ActionRaise, Amount: 100})
	if err != nil {
		t.Fatalf("all-in: %v", err)
	}
	p := e.State.Seats[1]
	if p.Status != SeatAllIn || p.Stack != 0 || p.RoundBet != 130 {
		t.Fatalf("expected all-in for 130, got %+v", p)
	}
	// A short all-in does not reopen the action for a seat that already
	// matched the standing bet.
	if !done {
		t.Fatalf("expected round complete after short all-in")
	}
}

func TestRaiseBeyondStackCapsAtAllIn(t *testing.T) {
	e := betEngine(1000, 150)
	if _, err := e.ApplyAction(nil, Action{Seat: 0, Type: ActionRaise, Amount: 200}); err != nil {
		t.Fatalf("raise: %v", err)
	}
	done, err := e.ApplyAction(nil, Action{Seat: 1, Type: ActionRaise, Amount: 500})
	if err != nil {
		t.Fatalf("all-in raise: %v", err)
	}
	p := e.State.Seats[1]
	if p.Stack != 0 || p.Status != SeatAllIn || p.RoundBet != 150 {
		t.Fatalf("expected capped all-in for 150, got %+v", p)
	}
	if p.Stack < 0 {
		t.Fatalf("stack went negative")
	}
	// Seat 0 already matched more than the all-in, so the round is over.
	if !done {
		t.Fatalf("expected round complete after short all-in")
	}
}

func TestFoldToSingleSurvivorEndsHand(t *testing.T) {
	e := betEngine(1000, 1000, 1000)
	s := e.State
	s.Pot = 30
	s.Seats[0].RoundBet = 60
	s.Seats[0].Stack = 940
	s.Seats[0].Acted = true
	s.CurrentBet = 60
	s.CurrentActor = 1

	if _, err := e.ApplyAction(nil, Action{Seat: 1, Type: ActionFold}); err != nil {
		t.Fatalf("fold: %v", err)
	}
	done, err := e.ApplyAction(nil, Action{Seat: 2, Type: ActionFold})
	if err != nil || !done {
		t.Fatalf("expected hand end after second fold, err=%v done=%v", err, done)
	}
	if s.Phase != PhaseShowdown || s.CurrentActor != -1 {
		t.Fatalf("expected showdown rest state, got phase=%s actor=%d", s.Phase, s.CurrentActor)
	}
	if s.Seats[0].Stack != 940+90 {
		t.Fatalf("survivor should collect the whole pot, stack=%d", s.Seats[0].Stack)
	}
	if len(s.Winners) != 1 || s.Winners[0].Amount != 90 {
		t.Fatalf("unexpected winners: %+v", s.Winners)
	}
	if s.Pot != 0 || s.TotalPot() != 0 {
		t.Fatalf("pot not fully swept: pot=%d total=%d", s.Pot, s.TotalPot())
	}
}
