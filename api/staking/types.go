// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/lidprotocol/lid/ledger"
	"github.com/lidprotocol/lid/lid"
)

type Totals struct {
	TotalStaked        *math.HexOrDecimal256 `json:"totalStaked"`
	TotalStakers       uint64                `json:"totalStakers"`
	TotalDistributions *math.HexOrDecimal256 `json:"totalDistributions"`
	TotalStakingTax    *math.HexOrDecimal256 `json:"totalStakingTax"`
	TotalUnstakingTax  *math.HexOrDecimal256 `json:"totalUnstakingTax"`
	Undistributed      *math.HexOrDecimal256 `json:"undistributed"`
	TotalWithdrawn     *math.HexOrDecimal256 `json:"totalWithdrawn"`
}

// Staking for marshal the staking contract summary.
type Staking struct {
	Totals   Totals        `json:"totals"`
	Version  uint64        `json:"version"`
	Active   bool          `json:"active"`
	Handlers []lid.Address `json:"handlers"`
}

func convertStaking(s *ledger.Staking) *Staking {
	handlers := s.Handlers
	if handlers == nil {
		handlers = []lid.Address{}
	}
	return &Staking{
		Totals: Totals{
			TotalStaked:        (*math.HexOrDecimal256)(s.Totals.TotalStaked),
			TotalStakers:       s.Totals.TotalStakers.Uint64(),
			TotalDistributions: (*math.HexOrDecimal256)(s.Totals.TotalDistributions),
			TotalStakingTax:    (*math.HexOrDecimal256)(s.Totals.TotalStakingTax),
			TotalUnstakingTax:  (*math.HexOrDecimal256)(s.Totals.TotalUnstakingTax),
			Undistributed:      (*math.HexOrDecimal256)(s.Totals.Undistributed),
			TotalWithdrawn:     (*math.HexOrDecimal256)(s.Totals.TotalWithdrawn),
		},
		Version:  s.Version,
		Active:   s.Active,
		Handlers: handlers,
	}
}
