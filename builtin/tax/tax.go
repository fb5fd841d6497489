// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tax computes basis-point taxes.
package tax

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/lidprotocol/lid/builtin/reverts"
	"github.com/lidprotocol/lid/lid"
)

var (
	ErrAmountOverflow = reverts.NewOverflow("Tax amount overflows uint256.")
	ErrRateTooHigh    = reverts.NewPrecondition("Tax cannot be over 100% (10000 BP)")
	ErrNegative       = reverts.NewPrecondition("Tax input cannot be negative.")

	denominator = uint256.NewInt(lid.BasisPointsDenominator)
)

// Compute returns floor(amount * basisPoints / 10000).
// The product must fit in 256 bits.
func Compute(amount, basisPoints *big.Int) (*big.Int, error) {
	if amount.Sign() < 0 || basisPoints.Sign() < 0 {
		return nil, ErrNegative
	}
	a, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, ErrAmountOverflow
	}
	bp, overflow := uint256.FromBig(basisPoints)
	if overflow {
		return nil, ErrAmountOverflow
	}
	product, overflow := new(uint256.Int).MulOverflow(a, bp)
	if overflow {
		return nil, ErrAmountOverflow
	}
	return product.Div(product, denominator).ToBig(), nil
}

// Split returns the tax on amount and what remains after it.
func Split(amount, basisPoints *big.Int) (tax, net *big.Int, err error) {
	if tax, err = Compute(amount, basisPoints); err != nil {
		return nil, nil, err
	}
	return tax, new(big.Int).Sub(amount, tax), nil
}

// ValidateRate rejects rates of 100% or more.
func ValidateRate(basisPoints *big.Int) error {
	if basisPoints.Sign() < 0 {
		return ErrNegative
	}
	if basisPoints.Cmp(big.NewInt(lid.BasisPointsDenominator)) >= 0 {
		return ErrRateTooHigh
	}
	return nil
}
