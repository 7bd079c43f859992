package game

type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
)

type SeatStatus string

const (
	SeatEmpty      SeatStatus = "empty"
	SeatSittingOut SeatStatus = "sitting_out"
	SeatPlaying    SeatStatus = "playing"
	SeatFolded     SeatStatus = "folded"
	SeatAllIn      SeatStatus = "all_in"
	SeatBusted     SeatStatus = "busted"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePreFlop  Phase = "preflop"
	PhaseFlop     Phase = "flop"
	PhaseTurn     Phase = "turn"
	PhaseRiver    Phase = "river"
	PhaseShowdown Phase = "showdown"
)

const (
	NumSeats = 9

	ProtocolVersion = "1.0"

	maxEvents = 100
)

type Player struct {
	ID         string
	Name       string
	Stack      int64
	RoundBet   int64
	Status     SeatStatus
	Hole       []Card
	Dealer     bool
	SmallBlind bool
	BigBlind   bool
	Acted      bool
	LastAction ActionType
}

// Winner is appended once per winning seat at settlement.
type Winner struct {
	ID       string
	Name     string
	Category string
	Amount   int64
}

// TableState is the authoritative record for one table. It is owned by a
// single serializing actor; nothing mutates it concurrently.
type TableState struct {
	TableID       string
	HandID        string
	Seats         [NumSeats]Player
	Community     []Card
	Phase         Phase
	CurrentActor  int // seat index, -1 when nobody is to act
	DealerPos     int // -1 before the first hand
	CurrentBet    int64
	MinRaise      int64
	LastAggressor int
	Pot           int64 // settled chips only, excludes current-round bets
	SmallBlind    int64
	BigBlind      int64
	Winners       []Winner
	Events        []string
}

// InHand reports whether the seat is still contesting the current hand.
func (s *TableState) InHand(i int) bool {
	st := s.Seats[i].Status
	return st == SeatPlaying || st == SeatAllIn
}

// TotalPot is the pot a user sees: settled chips plus every current-round bet.
func (s *TableState) TotalPot() int64 {
	total := s.Pot
	for i := range s.Seats {
		total += s.Seats[i].RoundBet
	}
	return total
}

func (s *TableState) addEvent(text string) {
	s.Events = append(s.Events, text)
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
}

type SeatView struct {
	Seat       int      `json:"seat"`
	Name       string   `json:"name,omitempty"`
	Status     string   `json:"status"`
	Stack      int64    `json:"stack"`
	RoundBet   int64    `json:"round_bet"`
	Dealer     bool     `json:"dealer,omitempty"`
	SmallBlind bool     `json:"small_blind,omitempty"`
	BigBlind   bool     `json:"big_blind,omitempty"`
	LastAction string   `json:"last_action,omitempty"`
	HoleCards  []string `json:"hole_cards,omitempty"`
}

type WinnerView struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

type Snapshot struct {
	Type             string       `json:"type"`
	ProtocolVersion  string       `json:"protocol_version"`
	TableID          string       `json:"table_id"`
	HandID           string       `json:"hand_id,omitempty"`
	Phase            string       `json:"phase"`
	CommunityCards   []string     `json:"community_cards"`
	Pot              int64        `json:"pot"`
	CurrentBet       int64        `json:"current_bet"`
	MinRaise         int64        `json:"min_raise"`
	CurrentActorSeat int          `json:"current_actor_seat"`
	DealerSeat       int          `json:"dealer_seat"`
	Seats            []SeatView   `json:"seats"`
	Winners          []WinnerView `json:"winners,omitempty"`
	Events           []string     `json:"events,omitempty"`
}

// SnapshotFor projects the table for one observer. Hole cards are included
// for the observer's own seat, for every live seat at showdown, and for
// everything when revealAll is set (the default presentation policy).
func (s *TableState) SnapshotFor(observerID string, revealAll bool) Snapshot {
	community := make([]string, 0, len(s.Community))
	for _, c := range s.Community {
		community = append(community, c.String())
	}
	seats := make([]SeatView, 0, NumSeats)
	for i := range s.Seats {
		p := &s.Seats[i]
		view := SeatView{
			Seat:       i,
			Name:       p.Name,
			Status:     string(p.Status),
			Stack:      p.Stack,
			RoundBet:   p.RoundBet,
			Dealer:     p.Dealer,
			SmallBlind: p.SmallBlind,
			BigBlind:   p.BigBlind,
			LastAction: string(p.LastAction),
		}
		if s.revealHole(i, observerID, revealAll) {
			for _, c := range p.Hole {
				view.HoleCards = append(view.HoleCards, c.String())
			}
		}
		seats = append(seats, view)
	}
	winners := make([]WinnerView, 0, len(s.Winners))
	for _, w := range s.Winners {
		winners = append(winners, WinnerView{Name: w.Name, Category: w.Category, Amount: w.Amount})
	}
	return Snapshot{
		Type:             "state_update",
		ProtocolVersion:  ProtocolVersion,
		TableID:          s.TableID,
		HandID:           s.HandID,
		Phase:            string(s.Phase),
		CommunityCards:   community,
		Pot:              s.TotalPot(),
		CurrentBet:       s.CurrentBet,
		MinRaise:         s.MinRaise,
		CurrentActorSeat: s.CurrentActor,
		DealerSeat:       s.DealerPos,
		Seats:            seats,
		Winners:          winners,
		Events:           s.Events,
	}
}

func (s *TableState) revealHole(seat int, observerID string, revealAll bool) bool {
	p := &s.Seats[seat]
	if len(p.Hole) == 0 {
		return false
	}
	if revealAll {
		return true
	}
	if observerID != "" && p.ID == observerID {
		return true
	}
	return s.Phase == PhaseShowdown && s.InHand(seat)
}
