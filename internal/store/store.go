package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var ErrNotFound = errors.New("not found")

// Store wraps DB access.
type Store struct {
	DB *sql.DB
}

func New(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.DB.PingContext(ctx)
}

// EnsureSchema creates the hand-history tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tables (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			small_blind BIGINT NOT NULL,
			big_blind BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS hands (
			id TEXT PRIMARY KEY,
			table_id TEXT NOT NULL REFERENCES tables(id),
			started_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			ended_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS actions (
			id TEXT PRIMARY KEY,
			hand_id TEXT NOT NULL REFERENCES hands(id),
			player_id TEXT NOT NULL,
			action_type TEXT NOT NULL,
			amount BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS payouts (
			id TEXT PRIMARY KEY,
			hand_id TEXT NOT NULL REFERENCES hands(id),
			player_id TEXT NOT NULL,
			category TEXT NOT NULL,
			amount BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
			id TEXT PRIMARY KEY,
			player_id TEXT NOT NULL,
			type TEXT NOT NULL,
			amount BIGINT NOT NULL,
			ref_type TEXT NOT NULL,
			ref_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, q := range stmts {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) EnsureTable(ctx context.Context, id, name string, sb, bb int64) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO tables (id, name, small_blind, big_blind)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET small_blind = EXCLUDED.small_blind, big_blind = EXCLUDED.big_blind
	`, id, name, sb, bb)
	return err
}

func (s *Store) CreateHand(ctx context.Context, tableID string) (string, error) {
	id := NewID()
	_, err := s.DB.ExecContext(ctx, `INSERT INTO hands (id, table_id) VALUES ($1,$2)`, id, tableID)
	return id, err
}

func (s *Store) EndHand(ctx context.Context, handID string) error {
	_, err := s.DB.ExecContext(ctx, `UPDATE hands SET ended_at = now() WHERE id = $1`, handID)
	return err
}

func (s *Store) RecordAction(ctx context.Context, handID, playerID, actionType string, amount int64) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO actions (id, hand_id, player_id, action_type, amount) VALUES ($1,$2,$3,$4,$5)`,
		NewID(), handID, playerID, actionType, amount)
	return err
}

func (s *Store) RecordPayout(ctx context.Context, handID, playerID, category string, amount int64) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO payouts (id, hand_id, player_id, category, amount) VALUES ($1,$2,$3,$4,$5)`,
		NewID(), handID, playerID, category, amount)
	return err
}

func (s *Store) InsertLedgerEntry(ctx context.Context, playerID, entryType string, amount int64, refType, refID string) error {
	_, err := s.DB.ExecContext(ctx, `INSERT INTO ledger_entries (id, player_id, type, amount, ref_type, ref_id) VALUES ($1,$2,$3,$4,$5,$6)`,
		NewID(), playerID, entryType, amount, refType, refID)
	return err
}

func (s *Store) GetHand(ctx context.Context, id string) (*Hand, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT id, table_id, started_at, ended_at FROM hands WHERE id = $1`, id)
	var h Hand
	if err := row.Scan(&h.ID, &h.TableID, &h.StartedAt, &h.EndedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (s *Store) ListHands(ctx context.Context, tableID string, limit, offset int) ([]Hand, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `SELECT id, table_id, started_at, ended_at FROM hands WHERE table_id = $1 ORDER BY started_at DESC LIMIT $2 OFFSET $3`,
		tableID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Hand{}
	for rows.Next() {
		var h Hand
		if err := rows.Scan(&h.ID, &h.TableID, &h.StartedAt, &h.EndedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) ListHandActions(ctx context.Context, handID string) ([]Action, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, hand_id, player_id, action_type, amount, created_at FROM actions WHERE hand_id = $1 ORDER BY created_at ASC`, handID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Action{}
	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.ID, &a.HandID, &a.PlayerID, &a.ActionType, &a.Amount, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) ListHandPayouts(ctx context.Context, handID string) ([]Payout, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, hand_id, player_id, category, amount, created_at FROM payouts WHERE hand_id = $1 ORDER BY created_at ASC`, handID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Payout{}
	for rows.Next() {
		var p Payout
		if err := rows.Scan(&p.ID, &p.HandID, &p.PlayerID, &p.Category, &p.Amount, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) PlayerNet(ctx context.Context, playerID string) (int64, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE player_id = $1`, playerID)
	var net int64
	if err := row.Scan(&net); err != nil {
		return 0, err
	}
	return net, nil
}
