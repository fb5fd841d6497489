// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for contract events
const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	blockNumber INTEGER NOT NULL,
	blockTime INTEGER NOT NULL,
	contract BLOB(20) NOT NULL,
	name TEXT NOT NULL,
	account BLOB(20),
	counterparty BLOB(20),
	amount TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS event_i0 ON event(blockNumber);
CREATE INDEX IF NOT EXISTS event_i1 ON event(account);
CREATE INDEX IF NOT EXISTS event_i2 ON event(counterparty);
CREATE INDEX IF NOT EXISTS event_i3 ON event(contract, name);`
