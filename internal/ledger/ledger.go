package ledger

import (
	"context"

	"holdem-table/internal/store"
)

// Ledger records hand history and per-player chip flow. It satisfies the
// engine's Recorder interface; a nil *Ledger must not be passed there, use a
// nil interface instead.
type Ledger struct {
	Store *store.Store
}

func New(s *store.Store) *Ledger {
	return &Ledger{Store: s}
}

func (l *Ledger) BeginHand(ctx context.Context, tableID string) (string, error) {
	return l.Store.CreateHand(ctx, tableID)
}

func (l *Ledger) Action(ctx context.Context, handID, playerID, action string, amount int64) error {
	if err := l.Store.RecordAction(ctx, handID, playerID, action, amount); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	return l.Store.InsertLedgerEntry(ctx, playerID, "bet_debit", -amount, "hand", handID)
}

func (l *Ledger) Payout(ctx context.Context, handID, playerID, category string, amount int64) error {
	if err := l.Store.RecordPayout(ctx, handID, playerID, category, amount); err != nil {
		return err
	}
	return l.Store.InsertLedgerEntry(ctx, playerID, "pot_credit", amount, "hand", handID)
}

func (l *Ledger) EndHand(ctx context.Context, handID string) error {
	return l.Store.EndHand(ctx, handID)
}
