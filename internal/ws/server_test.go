package ws

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"holdem-table/internal/table"
)

func dialTestServer(t *testing.T) (*websocket.Conn, *table.Table) {
	t.Helper()
	tbl := table.New(table.Config{
		TableID:    "t1",
		SmallBlind: 10,
		BigBlind:   20,
		Logger:     zerolog.Nop(),
		Rand:       rand.New(rand.NewSource(1)),
	})
	t.Cleanup(tbl.Close)

	httpSrv := httptest.NewServer(http.HandlerFunc(NewServer(tbl, zerolog.Nop()).HandleWS))
	t.Cleanup(httpSrv.Close)

	url := "ws" + strings.TrimPrefix(httpSrv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, tbl
}

func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	_ = conn.SetReadDeadline(deadline)
	for time.Now().Before(deadline) {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatalf("bad frame %s: %v", raw, err)
		}
		var typ string
		_ = json.Unmarshal(m["type"], &typ)
		if typ == msgType {
			return m
		}
	}
	t.Fatalf("no %s frame before deadline", msgType)
	return nil
}

func writeJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	if err := conn.WriteJSON(v); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestJoinAndSitOverWebsocket(t *testing.T) {
	conn, tbl := dialTestServer(t)

	writeJSON(t, conn, JoinMessage{Type: "join", RequestID: "r1", PlayerID: "p1", Name: "Alice"})
	res := readUntil(t, conn, "join_result")
	var ok bool
	_ = json.Unmarshal(res["ok"], &ok)
	if !ok {
		t.Fatalf("join rejected: %s", res["error"])
	}
	// Joining subscribes the connection, so a snapshot follows.
	readUntil(t, conn, "state_update")

	writeJSON(t, conn, SitMessage{Type: "sit", RequestID: "r2", Seat: 3, BuyIn: 1000})
	res = readUntil(t, conn, "action_result")
	_ = json.Unmarshal(res["ok"], &ok)
	if !ok {
		t.Fatalf("sit rejected: %s", res["error"])
	}

	snap := tbl.Snapshot("p1")
	if snap.Seats[3].Name != "Alice" || snap.Seats[3].Stack != 1000 {
		t.Fatalf("seat not taken: %+v", snap.Seats[3])
	}
}

func TestSitWithoutJoinFails(t *testing.T) {
	conn, _ := dialTestServer(t)

	writeJSON(t, conn, SitMessage{Type: "sit", RequestID: "r1", Seat: 0, BuyIn: 1000})
	res := readUntil(t, conn, "action_result")
	var ok bool
	_ = json.Unmarshal(res["ok"], &ok)
	if ok {
		t.Fatalf("sit must fail before join")
	}
}
