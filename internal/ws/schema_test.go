package ws

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"holdem-table/internal/game"
)

func compileProtocolSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	compiler := jsonschema.NewCompiler()
	data, err := os.ReadFile("../../api/schema/ws_v1.schema.json")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if err := compiler.AddResource("ws_v1.schema.json", strings.NewReader(string(data))); err != nil {
		t.Fatalf("add resource: %v", err)
	}
	schema, err := compiler.Compile("ws_v1.schema.json")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return schema
}

func TestWSProtocolSchema(t *testing.T) {
	schema := compileProtocolSchema(t)

	samples := []string{
		`{"type":"join_result","protocol_version":"1.0","request_id":"req_1","ok":true,"player_id":"p1"}`,
		`{"type":"action_result","protocol_version":"1.0","request_id":"req_2","ok":false,"error":"not_your_turn"}`,
		`{"type":"advice_result","protocol_version":"1.0","request_id":"req_3","text":"check"}`,
		`{"type":"commentary","protocol_version":"1.0","hand_id":"hand_1","text":"A quiet flop."}`,
	}

	for i, s := range samples {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			t.Fatalf("unmarshal sample %d: %v", i, err)
		}
		if err := schema.Validate(v); err != nil {
			t.Fatalf("schema validate sample %d: %v", i, err)
		}
	}
}

func TestStateUpdateMatchesSchema(t *testing.T) {
	schema := compileProtocolSchema(t)

	s := &game.TableState{TableID: "t1", HandID: "hand_1", Phase: game.PhaseFlop, CurrentActor: 1, DealerPos: 0, CurrentBet: 40, MinRaise: 20, SmallBlind: 10, BigBlind: 20}
	s.Community = []game.Card{{Rank: game.Ace, Suit: game.Hearts}, {Rank: game.Ten, Suit: game.Spades}, {Rank: game.Two, Suit: game.Clubs}}
	s.Seats[0] = game.Player{ID: "p1", Name: "Alice", Stack: 980, RoundBet: 20, Status: game.SeatPlaying, Dealer: true,
		Hole: []game.Card{{Rank: game.King, Suit: game.Diamonds}, {Rank: game.Queen, Suit: game.Diamonds}}, LastAction: game.ActionRaise}
	s.Seats[1] = game.Player{ID: "p2", Name: "Bob", Stack: 960, RoundBet: 40, Status: game.SeatPlaying}

	raw, err := json.Marshal(s.SnapshotFor("p1", false))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := schema.Validate(v); err != nil {
		t.Fatalf("snapshot does not satisfy the protocol schema: %v\n%s", err, raw)
	}
}

func TestMapError(t *testing.T) {
	if got := mapError(nil); got != "" {
		t.Fatalf("nil error should map to empty string, got %q", got)
	}
	if got := mapError(game.ErrNotYourTurn); got != "not_your_turn" {
		t.Fatalf("unexpected code %q", got)
	}
	if got := mapError(os.ErrClosed); got != "unknown_error" {
		t.Fatalf("unexpected code %q", got)
	}
}
