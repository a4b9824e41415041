// Package gateway holds the per-table operations against the hosted store.
// Each function is a thin wrapper over one table; the only multi-table
// operations (auction creation and the deletion cascade) run in a single
// transaction.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	TableAuction      = "subasta"
	TableVehicle      = "vehiculo"
	TableLink         = "gestiona"
	TableBid          = "puja"
	TableParticipant  = "participa"
	TableAdjudication = "adjudicacion"
	TableUser         = "usuario"
	TableAuctioneer   = "subastador"
	TableBidder       = "postor"
)

var ErrNotFound = errors.New("not found")

// StepError reports which step of a multi-step write failed.
type StepError struct {
	Table string
	Err   error
}

func (e *StepError) Error() string { return e.Table + ": " + e.Err.Error() }
func (e *StepError) Unwrap() error { return e.Err }

type Gateway struct {
	db *sql.DB
}

func New(db *sql.DB) *Gateway {
	return &Gateway{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// withTx runs fn inside a transaction and commits when fn succeeds.
func (g *Gateway) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
