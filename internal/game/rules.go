package game

import "errors"

var (
	ErrInvalidAction    = errors.New("invalid_action")
	ErrNotYourTurn      = errors.New("not_your_turn")
	ErrCheckNotAllowed  = errors.New("check_not_allowed")
	ErrRaiseTooSmall    = errors.New("raise_too_small")
	ErrSeatOccupied     = errors.New("seat_occupied")
	ErrSeatEmpty        = errors.New("seat_empty")
	ErrNotSeatOwner     = errors.New("not_seat_owner")
	ErrAlreadySeated    = errors.New("already_seated")
	ErrInvalidSeat      = errors.New("invalid_seat")
	ErrInvalidBuyIn     = errors.New("invalid_buy_in")
	ErrHandInProgress   = errors.New("hand_in_progress")
	ErrNoHandInProgress = errors.New("no_hand_in_progress")
	ErrNotEnoughPlayers = errors.New("not_enough_players")
)

// ValidateAction rejects protocol violations before any state is touched.
func ValidateAction(s *TableState, seat int, action ActionType, amount int64) error {
	if s.Phase != PhasePreFlop && s.Phase != PhaseFlop && s.Phase != PhaseTurn && s.Phase != PhaseRiver {
		return ErrNoHandInProgress
	}
	if seat < 0 || seat >= NumSeats {
		return ErrInvalidSeat
	}
	if seat != s.CurrentActor {
		return ErrNotYourTurn
	}
	if s.Seats[seat].Status != SeatPlaying {
		return ErrInvalidAction
	}
	switch action {
	case ActionFold:
		return nil
	case ActionCheck:
		if s.Seats[seat].RoundBet != s.CurrentBet {
			return ErrCheckNotAllowed
		}
		return nil
	case ActionCall:
		if s.CurrentBet <= s.Seats[seat].RoundBet {
			return ErrInvalidAction
		}
		return nil
	case ActionRaise:
		if amount <= 0 {
			return ErrInvalidAction
		}
		p := &s.Seats[seat]
		if s.CurrentBet+amount-p.RoundBet >= p.Stack {
			// Short stack: the raise becomes an all-in for whatever is left.
			return nil
		}
		if amount < s.MinRaise {
			return ErrRaiseTooSmall
		}
		return nil
	default:
		return ErrInvalidAction
	}
}
