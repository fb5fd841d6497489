// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package vesting implements the cycle based release formula shared by
// locked funds and the reward pool.
package vesting

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/lid"
)

// Schedule releases Size every Interval seconds, starting at Start. Each
// cycle releases either ReleaseAmount, as locked funds do, or
// Size*ReleaseBP/10000, as the reward pool does. Exactly one of them is set.
type Schedule struct {
	Start         uint64
	Interval      uint64
	Size          *big.Int
	ReleaseBP     uint64
	ReleaseAmount *big.Int
}

func (s *Schedule) Validate() error {
	if s.Interval == 0 {
		return errors.New("release interval must be positive")
	}
	if s.Size == nil || s.Size.Sign() < 0 {
		return errors.New("pool size must not be negative")
	}
	if s.ReleaseAmount != nil {
		if s.ReleaseBP != 0 {
			return errors.New("release amount and release basis points are exclusive")
		}
		if s.ReleaseAmount.Sign() <= 0 {
			return errors.New("release amount must be positive")
		}
		return nil
	}
	if s.ReleaseBP == 0 || s.ReleaseBP > lid.BasisPointsDenominator {
		return errors.Errorf("release basis points out of range: %d", s.ReleaseBP)
	}
	return nil
}

// CycleIndex is the zero based index of the cycle running at now.
func (s *Schedule) CycleIndex(now uint64) uint64 {
	if now < s.Start {
		return 0
	}
	return (now - s.Start) / s.Interval
}

// CycleCount is the number of cycles that have begun at now. It stays 0 until
// now passes Start.
func (s *Schedule) CycleCount(now uint64) uint64 {
	if now <= s.Start {
		return 0
	}
	return s.CycleIndex(now) + 1
}

// PerCycle is the flat slice released each cycle.
func (s *Schedule) PerCycle() *big.Int {
	if s.ReleaseAmount != nil {
		return new(big.Int).Set(s.ReleaseAmount)
	}
	v := new(big.Int).Mul(s.Size, new(big.Int).SetUint64(s.ReleaseBP))
	return v.Div(v, big.NewInt(lid.BasisPointsDenominator))
}

// ReleasableAt is the cumulative amount released after n cycles, capped at Size.
func (s *Schedule) ReleasableAt(n uint64) *big.Int {
	v := new(big.Int).Mul(s.PerCycle(), new(big.Int).SetUint64(n))
	if v.Cmp(s.Size) > 0 {
		return new(big.Int).Set(s.Size)
	}
	return v
}

// Slice is the amount released in cycle n. Cycle 0 precedes the first release;
// once the pool is exhausted slices are zero.
func (s *Schedule) Slice(n uint64) *big.Int {
	if n == 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(s.ReleasableAt(n), s.ReleasableAt(n-1))
}
