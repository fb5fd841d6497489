// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/lidprotocol/lid/builtin/history"
	"github.com/lidprotocol/lid/lid"
)

// checkpoint records the staker's new stake and the totals at the current
// block. V1 storage keeps no history.
func (s *Staking) checkpoint(staker lid.Address, value *big.Int) error {
	version, err := s.Version()
	if err != nil {
		return err
	}
	if version < SchemaV2 {
		return nil
	}
	seq := uint64(s.env.BlockContext().Number)
	if err := s.accounts.Record(staker, value, seq); err != nil {
		return err
	}
	return s.recordTotals(seq)
}

func (s *Staking) recordTotals(seq uint64) error {
	total, err := s.stats.TotalStaked()
	if err != nil {
		return err
	}
	if err := s.totals.Record(seriesTotalStaked, total, seq); err != nil {
		return err
	}
	stakers, err := s.stats.TotalStakers()
	if err != nil {
		return err
	}
	return s.totals.Record(seriesTotalStakers, stakers, seq)
}

// StakeValueAt returns the stake addr held at the end of block number.
func (s *Staking) StakeValueAt(addr lid.Address, number uint32) (*big.Int, error) {
	return s.accounts.ValueAt(addr, uint64(number))
}

func (s *Staking) TotalStakedAt(number uint32) (*big.Int, error) {
	return s.totals.ValueAt(seriesTotalStaked, uint64(number))
}

func (s *Staking) TotalStakersAt(number uint32) (*big.Int, error) {
	return s.totals.ValueAt(seriesTotalStakers, uint64(number))
}

func (s *Staking) StakeCheckpoints(addr lid.Address) ([]*history.Checkpoint, error) {
	return s.accounts.Checkpoints(addr)
}
