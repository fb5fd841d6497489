// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/lidprotocol/lid/builtin/reverts"
	"github.com/lidprotocol/lid/lid"
)

var (
	ErrOverflow = reverts.NewOverflow("Dividend computation overflows uint256.")

	multiplier = new(uint256.Int).Lsh(uint256.NewInt(1), lid.DistributionShift)
)

// Stake is the record of one account.
// PayoutsTo is the accumulator value the record was last settled at, Stored
// holds dividends settled but not yet withdrawn.
type Stake struct {
	Value     *big.Int
	PayoutsTo *big.Int
	Stored    *big.Int
}

func newStake() *Stake {
	return &Stake{
		Value:     new(big.Int),
		PayoutsTo: new(big.Int),
		Stored:    new(big.Int),
	}
}

func (s *Stake) normalize() *Stake {
	if s.Value == nil {
		s.Value = new(big.Int)
	}
	if s.PayoutsTo == nil {
		s.PayoutsTo = new(big.Int)
	}
	if s.Stored == nil {
		s.Stored = new(big.Int)
	}
	return s
}

// IsEmpty reports whether the record can be deleted.
func (s *Stake) IsEmpty() bool {
	return s.Value.Sign() == 0 && s.Stored.Sign() == 0 && s.PayoutsTo.Sign() == 0
}

// Owed returns the dividends accrued since the last settlement:
// floor((acc - PayoutsTo) * Value / 2^64).
func (s *Stake) Owed(acc *big.Int) (*big.Int, error) {
	if s.Value.Sign() == 0 {
		return new(big.Int), nil
	}
	diff := new(big.Int).Sub(acc, s.PayoutsTo)
	if diff.Sign() <= 0 {
		return new(big.Int), nil
	}
	return MulDiv(diff, s.Value)
}

// Dividends returns the claimable balance at acc.
func (s *Stake) Dividends(acc *big.Int) (*big.Int, error) {
	owed, err := s.Owed(acc)
	if err != nil {
		return nil, err
	}
	return owed.Add(owed, s.Stored), nil
}

// Settle moves what is owed at acc into Stored.
func (s *Stake) Settle(acc *big.Int) error {
	owed, err := s.Owed(acc)
	if err != nil {
		return err
	}
	s.Stored = owed.Add(owed, s.Stored)
	s.PayoutsTo = new(big.Int).Set(acc)
	return nil
}

// MulDiv returns floor(x * y / 2^64) with a 512 bit intermediate.
func MulDiv(x, y *big.Int) (*big.Int, error) {
	a, overflow := uint256.FromBig(x)
	if overflow {
		return nil, ErrOverflow
	}
	b, overflow := uint256.FromBig(y)
	if overflow {
		return nil, ErrOverflow
	}
	z, overflow := new(uint256.Int).MulDivOverflow(a, b, multiplier)
	if overflow {
		return nil, ErrOverflow
	}
	return z.ToBig(), nil
}

// PerShare returns floor(amount * 2^64 / shares), the accumulator increment
// that spreads amount over shares. shares must be positive.
func PerShare(amount, shares *big.Int) (*big.Int, error) {
	a, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, ErrOverflow
	}
	d, overflow := uint256.FromBig(shares)
	if overflow || d.IsZero() {
		return nil, ErrOverflow
	}
	z, overflow := new(uint256.Int).MulDivOverflow(a, multiplier, d)
	if overflow {
		return nil, ErrOverflow
	}
	return z.ToBig(), nil
}
