// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/lidprotocol/lid/builtin/reverts"
	"github.com/lidprotocol/lid/builtin/tax"
	"github.com/lidprotocol/lid/lid"
)

// Initialize sets the storage schema version. Used at genesis.
func (s *Staking) Initialize(version uint64) error {
	return s.version.Set(new(big.Int).SetUint64(version))
}

func (s *Staking) SetStakingTaxBP(caller lid.Address, bp *big.Int) error {
	return s.setTaxRate(caller, lid.KeyStakingTaxBP, bp)
}

func (s *Staking) SetUnstakingTaxBP(caller lid.Address, bp *big.Int) error {
	return s.setTaxRate(caller, lid.KeyUnstakingTaxBP, bp)
}

func (s *Staking) setTaxRate(caller lid.Address, key lid.Bytes32, bp *big.Int) error {
	return s.env.Atomic(func() error {
		if err := s.params.RequireOwner(caller); err != nil {
			return err
		}
		if err := tax.ValidateRate(bp); err != nil {
			return err
		}
		return s.params.SetBy(caller, key, bp)
	})
}

// SetStartTime opens staking once the block time passes startTime. Zero closes it.
func (s *Staking) SetStartTime(caller lid.Address, startTime uint64) error {
	return s.params.SetBy(caller, lid.KeyStakingStartTime, new(big.Int).SetUint64(startTime))
}

func (s *Staking) SetRegistrationFees(caller lid.Address, withReferrer, withoutReferrer *big.Int) error {
	return s.env.Atomic(func() error {
		if err := s.params.RequireOwner(caller); err != nil {
			return err
		}
		if withReferrer.Sign() < 0 || withoutReferrer.Sign() < 0 {
			return reverts.NewPrecondition("Registration fee cannot be negative.")
		}
		if err := s.params.Set(lid.KeyRegistrationFeeWithReferrer, withReferrer); err != nil {
			return err
		}
		if err := s.params.Set(lid.KeyRegistrationFeeWithoutReferrer, withoutReferrer); err != nil {
			return err
		}
		logger.Info("registration fees updated", "withReferrer", withReferrer, "withoutReferrer", withoutReferrer)
		return nil
	})
}

// MigrateV2 upgrades V1 storage by seeding the stake history from the
// current stakes and totals. Stakes and totals themselves are untouched.
func (s *Staking) MigrateV2(caller lid.Address) error {
	return s.env.Atomic(func() error {
		if err := s.params.RequireOwner(caller); err != nil {
			return err
		}
		version, err := s.Version()
		if err != nil {
			return err
		}
		if version >= SchemaV2 {
			return ErrAlreadyMigrated
		}
		if err := s.version.Set(big.NewInt(SchemaV2)); err != nil {
			return err
		}

		stakers, err := s.stakes.Stakers()
		if err != nil {
			return err
		}
		seq := uint64(s.env.BlockContext().Number)
		seeded := 0
		for _, addr := range stakers {
			value, err := s.StakeValue(addr)
			if err != nil {
				return err
			}
			if value.Sign() == 0 {
				continue
			}
			if err := s.accounts.Record(addr, value, seq); err != nil {
				return err
			}
			seeded++
		}
		if err := s.recordTotals(seq); err != nil {
			return err
		}
		logger.Info("staking storage migrated", "version", SchemaV2, "seeded", seeded)
		return nil
	})
}
