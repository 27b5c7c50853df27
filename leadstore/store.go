// Package leadstore persists the local lead queue in an on-device SQLite file.
//
// Copyright 2025 Toly Pochkin
// SPDX-License-Identifier: Apache-2.0
package leadstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
	"github.com/resiliencere/leadsync/chaos"
)

// Store is a chaos.LeadQueue backed by the _local_leads table.
type Store struct {
	DB     *sql.DB
	logger *slog.Logger
	owned  bool
}

var _ chaos.LeadQueue = (*Store)(nil)

// Open opens (or creates) the SQLite file at path and prepares the queue table.
// Use ":memory:" for a throwaway store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection keeps ":memory:" databases alive and writes serialized
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store, err := New(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	store.owned = true

	store.logger.Info("Lead queue database ready", "file", path)
	return store, nil
}

// New prepares the queue table on an existing database handle.
func New(db *sql.DB, logger *slog.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := initializeDatabase(db); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return &Store{DB: db, logger: logger}, nil
}

func initializeDatabase(db *sql.DB) error {
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// seq keeps insertion order; id is not unique because the queue keeps duplicates
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS _local_leads (
		seq          INTEGER PRIMARY KEY AUTOINCREMENT,
		id           TEXT NOT NULL,
		name         TEXT NOT NULL,
		phone        TEXT NOT NULL,
		email        TEXT NOT NULL DEFAULT '',
		message      TEXT NOT NULL DEFAULT '',
		submitted_at INTEGER NOT NULL,
		synced       INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("failed to create lead queue table: %w", err)
	}
	return nil
}

func (s *Store) Enqueue(ctx context.Context, lead chaos.Lead) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO _local_leads (id, name, phone, email, message, submitted_at, synced)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lead.ID, lead.Name, lead.Phone, lead.Email, lead.Message, lead.SubmittedAt, lead.Synced)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	s.logger.Debug("Lead stored locally", "id", lead.ID)
	return nil
}

func (s *Store) List(ctx context.Context) ([]chaos.Lead, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, phone, email, message, submitted_at, synced
		FROM _local_leads ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := make([]chaos.Lead, 0)
	for rows.Next() {
		var lead chaos.Lead
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Phone, &lead.Email, &lead.Message, &lead.SubmittedAt, &lead.Synced); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, nil
}

func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM _local_leads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return n, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM _local_leads`); err != nil {
		return fmt.Errorf("failed to clear leads: %w", err)
	}
	return nil
}

// Close closes the database when the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.DB.Close()
}
