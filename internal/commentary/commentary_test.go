package commentary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"holdem-table/internal/game"
)

func testSnapshot() game.Snapshot {
	return game.Snapshot{
		Type:    "state_update",
		TableID: "t1",
		Phase:   "showdown",
		Winners: []game.WinnerView{{Name: "Alice", Category: "Flush", Amount: 120}},
	}
}

func TestSummarizeUsesBackendText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Write([]byte(`{"text":"What a hand by Alice!"}`))
	}))
	defer srv.Close()

	s := NewHTTPService(srv.URL, time.Second, zerolog.Nop())
	got := s.Summarize(context.Background(), testSnapshot())
	if got != "What a hand by Alice!" {
		t.Fatalf("unexpected commentary: %q", got)
	}
}

func TestSummarizeFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewHTTPService(srv.URL, time.Second, zerolog.Nop())
	got := s.Summarize(context.Background(), testSnapshot())
	if got != "Alice wins 120 chips with Flush." {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestSummarizeFallsBackOnGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	s := NewHTTPService(srv.URL, time.Second, zerolog.Nop())
	got := s.Summarize(context.Background(), testSnapshot())
	if got == "" {
		t.Fatalf("expected fallback text")
	}
}

func TestSummarizeFallsBackWhenUnreachable(t *testing.T) {
	s := NewHTTPService("http://127.0.0.1:1/none", 100*time.Millisecond, zerolog.Nop())
	snap := testSnapshot()
	snap.Winners = append(snap.Winners, game.WinnerView{Name: "Bob", Category: "Flush", Amount: 120})
	got := s.Summarize(context.Background(), snap)
	if got != "Split pot between Alice and Bob." {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestAdviseFallsBack(t *testing.T) {
	s := NewHTTPService("http://127.0.0.1:1/none", 100*time.Millisecond, zerolog.Nop())
	got := s.Advise(context.Background(), testSnapshot(), 2)
	if got != fallbackAdvice {
		t.Fatalf("unexpected fallback: %q", got)
	}
}
