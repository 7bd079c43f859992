package game

import "testing"

func redactionState() *TableState {
	s := &TableState{TableID: "t1", Phase: PhaseFlop, CurrentActor: 1}
	s.Seats[0] = Player{ID: "p1", Name: "Alice", Stack: 980, Status: SeatPlaying, Hole: []Card{{Ace, Spades}, {King, Spades}}}
	s.Seats[1] = Player{ID: "p2", Name: "Bob", Stack: 980, Status: SeatPlaying, Hole: []Card{{Two, Hearts}, {Seven, Clubs}}}
	return s
}

func TestSnapshotRedactsOtherHoleCards(t *testing.T) {
	s := redactionState()
	snap := s.SnapshotFor("p1", false)
	if len(snap.Seats[0].HoleCards) != 2 {
		t.Fatalf("observer should see own hole cards")
	}
	if len(snap.Seats[1].HoleCards) != 0 {
		t.Fatalf("opponent hole cards leaked: %v", snap.Seats[1].HoleCards)
	}
}

func TestSnapshotRevealAll(t *testing.T) {
	s := redactionState()
	snap := s.SnapshotFor("", true)
	if len(snap.Seats[0].HoleCards) != 2 || len(snap.Seats[1].HoleCards) != 2 {
		t.Fatalf("reveal-all snapshot must include every live hand")
	}
}

func TestSnapshotShowsLiveHandsAtShowdown(t *testing.T) {
	s := redactionState()
	s.Phase = PhaseShowdown
	s.Seats[1].Status = SeatFolded
	snap := s.SnapshotFor("", false)
	if len(snap.Seats[0].HoleCards) != 2 {
		t.Fatalf("live hand must be shown at showdown")
	}
	if len(snap.Seats[1].HoleCards) != 0 {
		t.Fatalf("folded hand must stay hidden")
	}
}

func TestSnapshotPotIncludesRoundBets(t *testing.T) {
	s := redactionState()
	s.Pot = 100
	s.Seats[0].RoundBet = 25
	s.Seats[1].RoundBet = 40
	snap := s.SnapshotFor("", false)
	if snap.Pot != 165 {
		t.Fatalf("snapshot pot should include live bets, got %d", snap.Pot)
	}
}

func TestEventLogIsBounded(t *testing.T) {
	s := &TableState{}
	for i := 0; i < maxEvents+25; i++ {
		s.addEvent("e")
	}
	if len(s.Events) != maxEvents {
		t.Fatalf("event log grew to %d", len(s.Events))
	}
}
