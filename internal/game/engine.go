package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Recorder persists hand history and chip movements. A nil Recorder runs the
// engine fully in memory, which is how the offline mode drives it.
type Recorder interface {
	BeginHand(ctx context.Context, tableID string) (string, error)
	Action(ctx context.Context, handID, playerID, action string, amount int64) error
	Payout(ctx context.Context, handID, playerID, category string, amount int64) error
	EndHand(ctx context.Context, handID string) error
}

// Engine applies actions to a TableState and drives phase transitions. It is
// not safe for concurrent use; a single owner must serialize all calls.
type Engine struct {
	Rec   Recorder
	State *TableState
	Deck  *Deck
	rnd   *rand.Rand
}

func NewEngine(rec Recorder, tableID string, sb, bb int64, rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	st := &TableState{
		TableID:       tableID,
		Phase:         PhaseIdle,
		CurrentActor:  -1,
		DealerPos:     -1,
		LastAggressor: -1,
		SmallBlind:    sb,
		BigBlind:      bb,
	}
	for i := range st.Seats {
		st.Seats[i].Status = SeatEmpty
	}
	return &Engine{Rec: rec, State: st, rnd: rnd}
}

// Sit seats an identity at an empty seat. The player joins the next hand.
func (e *Engine) Sit(seat int, id, name string, buyIn int64) error {
	if seat < 0 || seat >= NumSeats {
		return ErrInvalidSeat
	}
	if buyIn <= 0 {
		return ErrInvalidBuyIn
	}
	s := e.State
	if s.Seats[seat].Status != SeatEmpty {
		return ErrSeatOccupied
	}
	for i := range s.Seats {
		if s.Seats[i].Status != SeatEmpty && s.Seats[i].ID == id {
			return ErrAlreadySeated
		}
	}
	s.Seats[seat] = Player{ID: id, Name: name, Stack: buyIn, Status: SeatSittingOut}
	s.addEvent(fmt.Sprintf("%s sits at seat %d with %d chips", name, seat, buyIn))
	return nil
}

// Stand vacates a seat. ownerID must match the seated identity; an empty
// ownerID is the offline single-actor override. A seat still contesting a
// live hand must fold before it can be vacated; once the hand settles any
// seat may leave.
func (e *Engine) Stand(seat int, ownerID string) error {
	if seat < 0 || seat >= NumSeats {
		return ErrInvalidSeat
	}
	s := e.State
	p := &s.Seats[seat]
	if p.Status == SeatEmpty {
		return ErrSeatEmpty
	}
	if ownerID != "" && p.ID != ownerID {
		return ErrNotSeatOwner
	}
	if !e.HandOver() && s.InHand(seat) {
		return ErrHandInProgress
	}
	name := p.Name
	s.Seats[seat] = Player{Status: SeatEmpty}
	s.addEvent(fmt.Sprintf("%s leaves seat %d", name, seat))
	return nil
}

// StartHand moves the table from rest into a new hand: rotates the button,
// posts blinds, deals hole cards and opens the pre-flop betting round.
func (e *Engine) StartHand(ctx context.Context) error {
	s := e.State
	if s.Phase != PhaseIdle && s.Phase != PhaseShowdown {
		return ErrHandInProgress
	}

	eligible := 0
	for i := range s.Seats {
		p := &s.Seats[i]
		p.RoundBet = 0
		p.Acted = false
		p.LastAction = ""
		p.Dealer, p.SmallBlind, p.BigBlind = false, false, false
		p.Hole = nil
		switch p.Status {
		case SeatEmpty, SeatBusted:
		default:
			if p.Stack <= 0 {
				p.Status = SeatBusted
			} else {
				p.Status = SeatPlaying
				eligible++
			}
		}
	}
	if eligible < 2 {
		s.Phase = PhaseIdle
		s.CurrentActor = -1
		return ErrNotEnoughPlayers
	}

	s.Community = nil
	s.Winners = nil
	s.Pot = 0
	s.CurrentBet = 0
	s.MinRaise = 0
	s.LastAggressor = -1

	if e.Rec != nil {
		id, err := e.Rec.BeginHand(ctx, s.TableID)
		if err != nil {
			return err
		}
		s.HandID = id
	} else {
		s.HandID = newHandID()
	}

	s.DealerPos = e.nextWithStatus(s.DealerPos+1, SeatPlaying)
	var sbSeat, bbSeat int
	if eligible == 2 {
		// Heads-up: the button posts the small blind.
		sbSeat = s.DealerPos
		bbSeat = e.nextWithStatus(sbSeat+1, SeatPlaying)
	} else {
		sbSeat = e.nextWithStatus(s.DealerPos+1, SeatPlaying)
		bbSeat = e.nextWithStatus(sbSeat+1, SeatPlaying)
	}
	s.Seats[s.DealerPos].Dealer = true
	s.Seats[sbSeat].SmallBlind = true
	s.Seats[bbSeat].BigBlind = true
	e.postBlind(ctx, sbSeat, s.SmallBlind)
	e.postBlind(ctx, bbSeat, s.BigBlind)

	e.Deck = NewShuffledDeck(e.rnd)
	for i := range s.Seats {
		if !s.InHand(i) {
			continue
		}
		c1, err := e.Deck.Deal()
		if err != nil {
			return e.abortHand(ctx, err)
		}
		c2, err := e.Deck.Deal()
		if err != nil {
			return e.abortHand(ctx, err)
		}
		s.Seats[i].Hole = []Card{c1, c2}
	}

	s.Phase = PhasePreFlop
	s.CurrentBet = s.BigBlind
	s.MinRaise = s.BigBlind
	s.LastAggressor = bbSeat
	s.CurrentActor = e.nextWithStatus(bbSeat+1, SeatPlaying)
	s.addEvent(fmt.Sprintf("hand %s: dealer seat %d, blinds %d/%d", s.HandID, s.DealerPos, s.SmallBlind, s.BigBlind))
	return nil
}

type Action struct {
	Seat   int
	Type   ActionType
	Amount int64
}

// ApplyAction validates and applies one player action. It returns true when
// the betting round is complete (including the hand ending outright because
// a single contender remains).
func (e *Engine) ApplyAction(ctx context.Context, a Action) (bool, error) {
	s := e.State
	if err := ValidateAction(s, a.Seat, a.Type, a.Amount); err != nil {
		return false, err
	}
	p := &s.Seats[a.Seat]
	p.Acted = true
	p.LastAction = a.Type
	paid := int64(0)

	switch a.Type {
	case ActionFold:
		p.Status = SeatFolded
		s.addEvent(fmt.Sprintf("%s folds", p.Name))
	case ActionCheck:
		s.addEvent(fmt.Sprintf("%s checks", p.Name))
	case ActionCall:
		need := s.CurrentBet - p.RoundBet
		if need > p.Stack {
			need = p.Stack
		}
		p.Stack -= need
		p.RoundBet += need
		paid = need
		if p.Stack == 0 {
			p.Status = SeatAllIn
			s.addEvent(fmt.Sprintf("%s calls %d and is all-in", p.Name, need))
		} else {
			s.addEvent(fmt.Sprintf("%s calls %d", p.Name, need))
		}
	case ActionRaise:
		target := s.CurrentBet + a.Amount
		need := target - p.RoundBet
		if need >= p.Stack {
			// Not enough chips to reach the target: all-in for the stack.
			paid = p.Stack
			p.RoundBet += p.Stack
			p.Stack = 0
			p.Status = SeatAllIn
			s.addEvent(fmt.Sprintf("%s is all-in for %d", p.Name, p.RoundBet))
		} else {
			paid = need
			p.Stack -= need
			p.RoundBet = target
			s.CurrentBet = target
			s.MinRaise = a.Amount
			s.LastAggressor = a.Seat
			s.addEvent(fmt.Sprintf("%s raises to %d", p.Name, target))
		}
	}
	e.recordAction(ctx, p.ID, string(a.Type), paid)

	if n, last := e.contenders(); n == 1 {
		e.settleLastStanding(ctx, last)
		return true, nil
	}
	if e.RoundComplete() {
		return true, nil
	}
	next := e.nextWithStatus(a.Seat+1, SeatPlaying)
	if next == -1 {
		return true, nil
	}
	s.CurrentActor = next
	return false, nil
}

// RoundComplete holds when every contender is all-in or has acted and
// matched the current bet. A round with nobody left to act is vacuously
// complete.
func (e *Engine) RoundComplete() bool {
	s := e.State
	for i := range s.Seats {
		if !s.InHand(i) {
			continue
		}
		p := &s.Seats[i]
		if p.Status == SeatAllIn {
			continue
		}
		if !p.Acted || p.RoundBet != s.CurrentBet {
			return false
		}
	}
	return true
}

// HandOver reports whether the table is between hands.
func (e *Engine) HandOver() bool {
	return e.State.Phase == PhaseIdle || e.State.Phase == PhaseShowdown
}

// AdvanceRound sweeps the completed betting round into the pot and moves to
// the next phase, dealing board cards or running the showdown.
func (e *Engine) AdvanceRound(ctx context.Context) error {
	s := e.State
	switch s.Phase {
	case PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver:
	default:
		return ErrNoHandInProgress
	}
	e.sweepBets()
	s.CurrentBet = 0
	s.MinRaise = s.BigBlind
	s.LastAggressor = -1

	switch s.Phase {
	case PhasePreFlop:
		if err := e.dealCommunity(ctx, 3); err != nil {
			return err
		}
		s.Phase = PhaseFlop
	case PhaseFlop:
		if err := e.dealCommunity(ctx, 1); err != nil {
			return err
		}
		s.Phase = PhaseTurn
	case PhaseTurn:
		if err := e.dealCommunity(ctx, 1); err != nil {
			return err
		}
		s.Phase = PhaseRiver
	case PhaseRiver:
		e.showdown(ctx)
		return nil
	}
	s.addEvent(fmt.Sprintf("%s: %s", s.Phase, boardText(s.Community)))
	s.CurrentActor = e.nextWithStatus(s.DealerPos+1, SeatPlaying)
	return nil
}

func (e *Engine) dealCommunity(ctx context.Context, n int) error {
	s := e.State
	for i := 0; i < n; i++ {
		c, err := e.Deck.Deal()
		if err != nil {
			return e.abortHand(ctx, err)
		}
		s.Community = append(s.Community, c)
	}
	return nil
}

func (e *Engine) showdown(ctx context.Context) {
	s := e.State
	pot := s.Pot
	best := -1
	var winners []int
	results := map[int]Result{}
	for i := range s.Seats {
		if !s.InHand(i) {
			continue
		}
		res := Evaluate(s.Seats[i].Hole, s.Community)
		results[i] = res
		if res.Score > best {
			best = res.Score
			winners = []int{i}
		} else if res.Score == best {
			winners = append(winners, i)
		}
	}
	if len(winners) > 0 {
		// Floor split; the odd-chip remainder is not distributed.
		share := pot / int64(len(winners))
		for _, i := range winners {
			p := &s.Seats[i]
			p.Stack += share
			category := results[i].Category.String()
			s.Winners = append(s.Winners, Winner{ID: p.ID, Name: p.Name, Category: category, Amount: share})
			e.recordPayout(ctx, p.ID, category, share)
			s.addEvent(fmt.Sprintf("%s wins %d with %s", p.Name, share, category))
		}
	}
	s.Pot = 0
	s.Phase = PhaseShowdown
	s.CurrentActor = -1
	e.endHand(ctx)
}

func (e *Engine) settleLastStanding(ctx context.Context, seat int) {
	s := e.State
	amount := s.TotalPot()
	e.sweepBets()
	s.Pot = 0
	p := &s.Seats[seat]
	p.Stack += amount
	s.Winners = append(s.Winners, Winner{ID: p.ID, Name: p.Name, Category: "Uncontested", Amount: amount})
	e.recordPayout(ctx, p.ID, "Uncontested", amount)
	s.addEvent(fmt.Sprintf("%s wins %d uncontested", p.Name, amount))
	s.Phase = PhaseShowdown
	s.CurrentActor = -1
	e.endHand(ctx)
}

// abortHand unwinds an invariant violation (an exhausted deck) without
// corrupting chip totals: round bets go back to their owners and the settled
// pot is split evenly among the remaining contenders.
func (e *Engine) abortHand(ctx context.Context, cause error) error {
	s := e.State
	var live []int
	for i := range s.Seats {
		p := &s.Seats[i]
		p.Stack += p.RoundBet
		p.RoundBet = 0
		if s.InHand(i) {
			live = append(live, i)
		}
	}
	if len(live) > 0 {
		share := s.Pot / int64(len(live))
		for _, i := range live {
			s.Seats[i].Stack += share
		}
	}
	s.Pot = 0
	s.Community = nil
	s.CurrentBet = 0
	s.MinRaise = 0
	s.LastAggressor = -1
	s.Phase = PhaseIdle
	s.CurrentActor = -1
	s.addEvent("hand aborted: " + cause.Error())
	e.endHand(ctx)
	return cause
}

func (e *Engine) sweepBets() {
	s := e.State
	for i := range s.Seats {
		p := &s.Seats[i]
		s.Pot += p.RoundBet
		p.RoundBet = 0
		p.Acted = false
		p.LastAction = ""
	}
}

func (e *Engine) postBlind(ctx context.Context, seat int, amount int64) {
	s := e.State
	p := &s.Seats[seat]
	pay := amount
	if pay > p.Stack {
		pay = p.Stack
	}
	p.Stack -= pay
	p.RoundBet += pay
	if p.Stack == 0 {
		p.Status = SeatAllIn
	}
	e.recordAction(ctx, p.ID, "blind", pay)
	s.addEvent(fmt.Sprintf("%s posts blind %d", p.Name, pay))
}

// contenders counts seats still in the hand and returns the index of the
// last one seen.
func (e *Engine) contenders() (int, int) {
	n, last := 0, -1
	for i := range e.State.Seats {
		if e.State.InHand(i) {
			n++
			last = i
		}
	}
	return n, last
}

// nextWithStatus scans clockwise from `from`, wrapping, for the first seat
// with the given status. Returns -1 when no seat qualifies.
func (e *Engine) nextWithStatus(from int, status SeatStatus) int {
	for i := 0; i < NumSeats; i++ {
		seat := ((from + i) % NumSeats + NumSeats) % NumSeats
		if e.State.Seats[seat].Status == status {
			return seat
		}
	}
	return -1
}

func (e *Engine) recordAction(ctx context.Context, playerID, action string, amount int64) {
	if e.Rec == nil {
		return
	}
	_ = e.Rec.Action(ctx, e.State.HandID, playerID, action, amount)
}

func (e *Engine) recordPayout(ctx context.Context, playerID, category string, amount int64) {
	if e.Rec == nil {
		return
	}
	_ = e.Rec.Payout(ctx, e.State.HandID, playerID, category, amount)
}

func (e *Engine) endHand(ctx context.Context) {
	if e.Rec == nil {
		return
	}
	_ = e.Rec.EndHand(ctx, e.State.HandID)
}

func newHandID() string {
	return "hand_" + ulid.Make().String()
}

func boardText(cards []Card) string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return strings.Join(out, " ")
}
