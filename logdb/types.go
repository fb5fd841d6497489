// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"math/big"

	"github.com/lidprotocol/lid/lid"
)

// Event is a contract event as stored in db.
type Event struct {
	Seq          uint64
	BlockNumber  uint32
	BlockTime    uint64
	Contract     lid.Address
	Name         string
	Account      lid.Address
	Counterparty lid.Address
	Amount       *big.Int
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive block number range. A To below From leaves the range open.
type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects events. Account matches either side of an event.
type Filter struct {
	Contract *lid.Address
	Name     string
	Account  *lid.Address
	Range    *Range
	Order    Order
	Options  *Options
}
