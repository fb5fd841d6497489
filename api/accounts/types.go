// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/lidprotocol/lid/ledger"
)

// Account for marshal account
type Account struct {
	Balance           *math.HexOrDecimal256 `json:"balance"`
	Stake             *math.HexOrDecimal256 `json:"stake"`
	Dividends         *math.HexOrDecimal256 `json:"dividends"`
	Registered        bool                  `json:"registered"`
	Referrals         uint64                `json:"referrals"`
	RewardsRegistered bool                  `json:"rewardsRegistered"`
}

func convertAccount(acc *ledger.Account) *Account {
	return &Account{
		Balance:           (*math.HexOrDecimal256)(acc.Balance),
		Stake:             (*math.HexOrDecimal256)(acc.Stake),
		Dividends:         (*math.HexOrDecimal256)(acc.Dividends),
		Registered:        acc.Registered,
		Referrals:         acc.Referrals.Uint64(),
		RewardsRegistered: acc.RewardsRegistered,
	}
}

// StakeAt is the stake of an account as of a block.
type StakeAt struct {
	Block uint32                `json:"block"`
	Stake *math.HexOrDecimal256 `json:"stake"`
}
