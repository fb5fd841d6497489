// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logdb indexes contract events in sqlite for querying.
package logdb

import (
	"context"
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/xenv"
)

const insertEventQuery = "INSERT INTO event(blockNumber, blockTime, contract, name, account, counterparty, amount) VALUES(?,?,?,?,?,?,?)"

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// an in-memory db lives as long as its only connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmtCache:     newStmtCache(db),
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the sqlite library version.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Insert writes the events of one block in a single transaction.
func (db *LogDB) Insert(ctx context.Context, blockNumber uint32, blockTime uint64, events []*xenv.Event) error {
	if len(events) == 0 {
		return nil
	}
	stmt, err := db.stmtCache.Prepare(insertEventQuery)
	if err != nil {
		return err
	}
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	txStmt := tx.StmtContext(ctx, stmt)
	for _, ev := range events {
		amount := ev.Amount
		if amount == nil {
			amount = new(big.Int)
		}
		if _, err := txStmt.ExecContext(ctx,
			blockNumber,
			blockTime,
			ev.Address.Bytes(),
			ev.Name,
			ev.Account.Bytes(),
			ev.Counterparty.Bytes(),
			amount.String(),
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, "insert event")
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	metricInsertedEvents().Add(int64(len(events)))
	return nil
}

// NewestBlockNumber returns the number of the newest block with events, or zero.
func (db *LogDB) NewestBlockNumber() (uint32, error) {
	var n sql.NullInt64
	if err := db.db.QueryRow("SELECT MAX(blockNumber) FROM event").Scan(&n); err != nil {
		return 0, err
	}
	return uint32(n.Int64), nil
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *Filter) ([]*Event, error) {
	const query = "SELECT seq, blockNumber, blockTime, contract, name, account, counterparty, amount FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := query + " WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND blockNumber >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND blockNumber <= ? "
		}
	}
	if filter.Contract != nil {
		args = append(args, filter.Contract.Bytes())
		stmt += " AND contract = ? "
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ? "
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes(), filter.Account.Bytes())
		stmt += " AND (account = ? OR counterparty = ?) "
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq          uint64
			blockNumber  uint32
			blockTime    uint64
			contract     []byte
			name         string
			account      []byte
			counterparty []byte
			amount       string
		)
		if err := rows.Scan(
			&seq,
			&blockNumber,
			&blockTime,
			&contract,
			&name,
			&account,
			&counterparty,
			&amount,
		); err != nil {
			return nil, err
		}
		value, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return nil, errors.Errorf("corrupted amount %q at seq %d", amount, seq)
		}
		events = append(events, &Event{
			Seq:          seq,
			BlockNumber:  blockNumber,
			BlockTime:    blockTime,
			Contract:     lid.BytesToAddress(contract),
			Name:         name,
			Account:      lid.BytesToAddress(account),
			Counterparty: lid.BytesToAddress(counterparty),
			Amount:       value,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
