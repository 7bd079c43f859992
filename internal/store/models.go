package store

import "time"

type Table struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SmallBlind int64     `json:"small_blind"`
	BigBlind   int64     `json:"big_blind"`
	CreatedAt  time.Time `json:"created_at"`
}

type Hand struct {
	ID        string     `json:"id"`
	TableID   string     `json:"table_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

type Action struct {
	ID         string    `json:"id"`
	HandID     string    `json:"hand_id"`
	PlayerID   string    `json:"player_id"`
	ActionType string    `json:"action_type"`
	Amount     int64     `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}

type Payout struct {
	ID        string    `json:"id"`
	HandID    string    `json:"hand_id"`
	PlayerID  string    `json:"player_id"`
	Category  string    `json:"category"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type LedgerEntry struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	RefType   string    `json:"ref_type"`
	RefID     string    `json:"ref_id"`
	CreatedAt time.Time `json:"created_at"`
}
