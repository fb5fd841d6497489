// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lid

import (
	"math/big"
)

// Keys of governance params.
var (
	KeyStakingTaxBP                   = BytesToBytes32([]byte("staking-tax-bp"))
	KeyUnstakingTaxBP                 = BytesToBytes32([]byte("unstaking-tax-bp"))
	KeyStakingStartTime               = BytesToBytes32([]byte("staking-start-time"))
	KeyRegistrationFeeWithReferrer    = BytesToBytes32([]byte("reg-fee-referrer"))
	KeyRegistrationFeeWithoutReferrer = BytesToBytes32([]byte("reg-fee-no-referrer"))
)

// Initial values of governance params.
var (
	InitialStakingTaxBP                   = big.NewInt(100) // 1%
	InitialUnstakingTaxBP                 = big.NewInt(100) // 1%
	InitialRegistrationFeeWithReferrer    = Tokens(200)
	InitialRegistrationFeeWithoutReferrer = Tokens(400)
)

// Reward pool defaults.
const (
	InitialRewardReleaseBP       = 1000
	InitialRewardReleaseInterval = 86400 * 30
)

// InitialRewardPoolSize is the default amount of tokens vested by the reward pool.
var InitialRewardPoolSize = Tokens(26_000_000)
