// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lid

import (
	"math/big"
)

const (
	// Decimals of the token. All amounts are integers scaled by 10^Decimals.
	Decimals = 18

	// BasisPointsDenominator is the divisor of basis-point rates.
	BasisPointsDenominator = 10000

	// DistributionShift is log2 of DistributionMultiplier.
	DistributionShift = 64
)

var (
	// OneToken is one whole token, the minimum stake and unstake amount.
	OneToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

	// DistributionMultiplier scales the profit-per-share accumulator.
	DistributionMultiplier = new(big.Int).Lsh(big.NewInt(1), DistributionShift)
)

// Tokens returns n whole tokens in base units.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), OneToken)
}

// ParseAmount parses a decimal token amount such as "1.98" into base units.
// A plain integer string is read as whole tokens.
func ParseAmount(s string) (*big.Int, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok || r.Sign() < 0 {
		return nil, false
	}
	r.Mul(r, new(big.Rat).SetInt(OneToken))
	if !r.IsInt() {
		return nil, false
	}
	return new(big.Int).Set(r.Num()), true
}

// FormatAmount renders base units as a decimal token amount.
func FormatAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	r := new(big.Rat).SetFrac(v, OneToken)
	s := r.FloatString(Decimals)
	// trim trailing zeros of the fraction
	end := len(s)
	for end > 0 && s[end-1] == '0' {
		end--
	}
	if end > 0 && s[end-1] == '.' {
		end--
	}
	return s[:end]
}
