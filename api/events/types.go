// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/logdb"
)

type Range struct {
	From uint32 `json:"from"`
	To   uint32 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventFilter struct {
	Contract *lid.Address `json:"contract"`
	Name     string       `json:"name"`
	Account  *lid.Address `json:"account"`
	Range    *Range       `json:"range"`
	Options  *Options     `json:"options"`
	Order    logdb.Order  `json:"order"`
}

// Event for marshal an indexed contract event.
type Event struct {
	Seq          uint64                `json:"seq"`
	BlockNumber  uint32                `json:"blockNumber"`
	BlockTime    uint64                `json:"blockTime"`
	Contract     lid.Address           `json:"contract"`
	Name         string                `json:"name"`
	Account      lid.Address           `json:"account"`
	Counterparty lid.Address           `json:"counterparty"`
	Amount       *math.HexOrDecimal256 `json:"amount"`
}

func convertEvent(ev *logdb.Event) *Event {
	return &Event{
		Seq:          ev.Seq,
		BlockNumber:  ev.BlockNumber,
		BlockTime:    ev.BlockTime,
		Contract:     ev.Contract,
		Name:         ev.Name,
		Account:      ev.Account,
		Counterparty: ev.Counterparty,
		Amount:       (*math.HexOrDecimal256)(ev.Amount),
	}
}

func convertFilter(filter *EventFilter, limit uint64) (*logdb.Filter, error) {
	f := &logdb.Filter{
		Contract: filter.Contract,
		Name:     filter.Name,
		Account:  filter.Account,
		Order:    filter.Order,
		Options:  &logdb.Options{Limit: limit},
	}
	switch filter.Order {
	case "", logdb.ASC, logdb.DESC:
	default:
		return nil, fmt.Errorf("order: unsupported value %q", filter.Order)
	}
	if filter.Range != nil {
		f.Range = &logdb.Range{From: filter.Range.From, To: filter.Range.To}
	}
	if filter.Options != nil {
		f.Options.Offset = filter.Options.Offset
		if filter.Options.Limit > 0 {
			f.Options.Limit = filter.Options.Limit
		}
	}
	return f, nil
}
