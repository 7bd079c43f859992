package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"holdem-table/internal/game"
)

// Service produces spectator commentary for a table snapshot. Implementations
// must always return usable text; an unreachable backend degrades to a static
// line instead of an error.
type Service interface {
	Summarize(ctx context.Context, snap game.Snapshot) string
	Advise(ctx context.Context, snap game.Snapshot, seat int) string
}

// Noop returns empty commentary. Used when no backend is configured.
type Noop struct{}

func (Noop) Summarize(context.Context, game.Snapshot) string   { return "" }
func (Noop) Advise(context.Context, game.Snapshot, int) string { return "" }

// HTTPService asks an external commentary backend for text and falls back to
// a canned line when the backend is slow, down or answers garbage.
type HTTPService struct {
	endpoint string
	client   *http.Client
	log      zerolog.Logger
}

func NewHTTPService(endpoint string, timeout time.Duration, log zerolog.Logger) *HTTPService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

type request struct {
	Kind     string        `json:"kind"`
	Seat     int           `json:"seat,omitempty"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type response struct {
	Text string `json:"text"`
}

func (s *HTTPService) Summarize(ctx context.Context, snap game.Snapshot) string {
	return s.ask(ctx, request{Kind: "summary", Snapshot: snap}, fallbackSummary(snap))
}

func (s *HTTPService) Advise(ctx context.Context, snap game.Snapshot, seat int) string {
	return s.ask(ctx, request{Kind: "advice", Seat: seat, Snapshot: snap}, fallbackAdvice)
}

func (s *HTTPService) ask(ctx context.Context, req request, fallback string) string {
	raw, err := json.Marshal(req)
	if err != nil {
		return fallback
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fallback
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.log.Warn().Err(err).Str("kind", req.Kind).Msg("commentary backend unreachable")
		return fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Warn().Int("status", resp.StatusCode).Str("kind", req.Kind).Msg("commentary backend error")
		return fallback
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fallback
	}
	var out response
	if err := json.Unmarshal(body, &out); err != nil || strings.TrimSpace(out.Text) == "" {
		s.log.Warn().Str("kind", req.Kind).Msg("commentary backend returned no text")
		return fallback
	}
	return out.Text
}

const fallbackAdvice = "Play tight and watch the pot odds."

func fallbackSummary(snap game.Snapshot) string {
	if len(snap.Winners) == 1 {
		w := snap.Winners[0]
		if w.Category == "Uncontested" {
			return fmt.Sprintf("%s takes down %d chips uncontested.", w.Name, w.Amount)
		}
		return fmt.Sprintf("%s wins %d chips with %s.", w.Name, w.Amount, w.Category)
	}
	if len(snap.Winners) > 1 {
		names := make([]string, 0, len(snap.Winners))
		for _, w := range snap.Winners {
			names = append(names, w.Name)
		}
		return fmt.Sprintf("Split pot between %s.", strings.Join(names, " and "))
	}
	return "The action continues."
}
