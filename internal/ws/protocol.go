package ws

// Inbound messages. Every client frame carries a type and an optional
// request_id that is echoed back on the matching result.

type JoinMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
}

type SpectateMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
}

type SitMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	Seat      int    `json:"seat"`
	BuyIn     int64  `json:"buy_in"`
}

type StandMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	Seat      int    `json:"seat"`
}

type StartHandMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
}

type ActMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	Seat      int    `json:"seat"`
	Action    string `json:"action"`
	Amount    int64  `json:"amount,omitempty"`
}

type AdviseMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
	Seat      int    `json:"seat"`
}

// Outbound messages. State updates are produced by the table itself; the
// types below cover the per-request replies.

type JoinResult struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RequestID       string `json:"request_id,omitempty"`
	Ok              bool   `json:"ok"`
	Error           string `json:"error,omitempty"`
	PlayerID        string `json:"player_id,omitempty"`
}

type ActionResult struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RequestID       string `json:"request_id,omitempty"`
	Ok              bool   `json:"ok"`
	Error           string `json:"error,omitempty"`
}

type AdviceResult struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RequestID       string `json:"request_id,omitempty"`
	Text            string `json:"text"`
}
