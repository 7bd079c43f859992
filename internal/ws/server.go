package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"holdem-table/internal/game"
	"holdem-table/internal/table"
)

const sendBuffer = 16

// Client is one websocket connection. It doubles as the table observer for
// whatever identity the connection has claimed.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	connID   string
	playerID string
	name     string
	joined   bool
}

func (c *Client) ID() string {
	if c.playerID != "" {
		return c.playerID
	}
	return c.connID
}

// Send never blocks the table goroutine. A client that cannot drain its
// buffer loses frames; the next snapshot makes it whole.
func (c *Client) Send(msg []byte) {
	defer func() {
		_ = recover()
	}()
	select {
	case c.send <- msg:
	default:
	}
}

type Server struct {
	table    *table.Table
	upgrader websocket.Upgrader
	log      zerolog.Logger
	mu       sync.Mutex
	clients  map[*Client]bool
}

func NewServer(t *table.Table, log zerolog.Logger) *Server {
	return &Server{
		table:    t,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		log:      log,
		clients:  map[*Client]bool{},
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		connID: "conn_" + ulid.Make().String(),
	}
	s.mu.Lock()
	s.clients[client] = true
	s.mu.Unlock()

	go s.writeLoop(client)
	s.readLoop(client)
}

func (s *Server) readLoop(c *Client) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type      string `json:"type"`
			RequestID string `json:"request_id"`
		}
		if err := json.Unmarshal(msg, &base); err != nil {
			continue
		}
		switch base.Type {
		case "join":
			var join JoinMessage
			if err := json.Unmarshal(msg, &join); err != nil {
				continue
			}
			s.handleJoin(c, join)
		case "spectate":
			if c.joined {
				continue
			}
			c.joined = true
			s.table.Subscribe(c)
		case "sit":
			var sit SitMessage
			if err := json.Unmarshal(msg, &sit); err != nil {
				continue
			}
			if c.playerID == "" {
				s.sendActionError(c, base.RequestID, "not_joined")
				continue
			}
			err := s.table.Sit(sit.Seat, c.playerID, c.name, sit.BuyIn)
			s.sendActionResult(c, base.RequestID, err)
		case "stand":
			var stand StandMessage
			if err := json.Unmarshal(msg, &stand); err != nil {
				continue
			}
			if c.playerID == "" {
				s.sendActionError(c, base.RequestID, "not_joined")
				continue
			}
			err := s.table.Stand(stand.Seat, c.playerID)
			s.sendActionResult(c, base.RequestID, err)
		case "start_hand":
			err := s.table.StartHand(context.Background())
			s.sendActionResult(c, base.RequestID, err)
		case "act":
			var act ActMessage
			if err := json.Unmarshal(msg, &act); err != nil {
				continue
			}
			if c.playerID == "" {
				s.sendActionError(c, base.RequestID, "not_joined")
				continue
			}
			err := s.table.Act(context.Background(), act.Seat, c.playerID, game.ActionType(act.Action), act.Amount)
			s.sendActionResult(c, base.RequestID, err)
		case "advise":
			var adv AdviseMessage
			if err := json.Unmarshal(msg, &adv); err != nil {
				continue
			}
			text := s.table.Advise(context.Background(), adv.Seat)
			reply, _ := json.Marshal(AdviceResult{Type: "advice_result", ProtocolVersion: game.ProtocolVersion, RequestID: base.RequestID, Text: text})
			c.Send(reply)
		}
	}
}

func (s *Server) writeLoop(c *Client) {
	for msg := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
	}
}

func (s *Server) handleJoin(c *Client, join JoinMessage) {
	if c.joined {
		s.sendJoinResult(c, join.RequestID, false, "already_joined")
		return
	}
	if join.PlayerID == "" || join.Name == "" {
		s.sendJoinResult(c, join.RequestID, false, "invalid_action")
		return
	}
	c.playerID = join.PlayerID
	c.name = join.Name
	c.joined = true
	s.log.Info().Str("player_id", c.playerID).Msg("player_joined")
	s.sendJoinResult(c, join.RequestID, true, "")
	s.table.Subscribe(c)
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	if c.joined {
		s.table.Unsubscribe(c.ID())
	}
	safeClose(c.send)
}

func safeClose(ch chan []byte) {
	defer func() {
		_ = recover()
	}()
	close(ch)
}

func (s *Server) sendJoinResult(c *Client, requestID string, ok bool, errCode string) {
	msg, _ := json.Marshal(JoinResult{
		Type:            "join_result",
		ProtocolVersion: game.ProtocolVersion,
		RequestID:       requestID,
		Ok:              ok,
		Error:           errCode,
		PlayerID:        c.playerID,
	})
	c.Send(msg)
}

func (s *Server) sendActionResult(c *Client, requestID string, err error) {
	msg, _ := json.Marshal(ActionResult{
		Type:            "action_result",
		ProtocolVersion: game.ProtocolVersion,
		RequestID:       requestID,
		Ok:              err == nil,
		Error:           mapError(err),
	})
	c.Send(msg)
}

func (s *Server) sendActionError(c *Client, requestID, code string) {
	msg, _ := json.Marshal(ActionResult{
		Type:            "action_result",
		ProtocolVersion: game.ProtocolVersion,
		RequestID:       requestID,
		Ok:              false,
		Error:           code,
	})
	c.Send(msg)
}

var knownErrors = []error{
	game.ErrInvalidAction,
	game.ErrNotYourTurn,
	game.ErrCheckNotAllowed,
	game.ErrRaiseTooSmall,
	game.ErrSeatOccupied,
	game.ErrSeatEmpty,
	game.ErrNotSeatOwner,
	game.ErrAlreadySeated,
	game.ErrInvalidSeat,
	game.ErrInvalidBuyIn,
	game.ErrHandInProgress,
	game.ErrNoHandInProgress,
	game.ErrNotEnoughPlayers,
	game.ErrDeckExhausted,
}

// mapError turns engine errors into stable wire codes.
func mapError(err error) string {
	if err == nil {
		return ""
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "unknown_error"
}
