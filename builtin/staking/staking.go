// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking is the dividend ledger: stakes earn a pro-rata share of
// every tax and distribution paid into the contract.
package staking

import (
	"math/big"

	"github.com/lidprotocol/lid/builtin/history"
	"github.com/lidprotocol/lid/builtin/params"
	"github.com/lidprotocol/lid/builtin/reverts"
	"github.com/lidprotocol/lid/builtin/solidity"
	"github.com/lidprotocol/lid/builtin/staking/globalstats"
	"github.com/lidprotocol/lid/builtin/staking/stakes"
	"github.com/lidprotocol/lid/builtin/tax"
	"github.com/lidprotocol/lid/builtin/token"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/log"
	"github.com/lidprotocol/lid/xenv"
)

// Schema versions of the contract storage.
const (
	SchemaV1 = 1
	SchemaV2 = 2 // adds stake history
)

var (
	logger = log.WithContext("pkg", "staking")

	slotVersion        = lid.BytesToBytes32([]byte("schema-version"))
	slotRegistered     = lid.BytesToBytes32([]byte("registered"))
	slotReferrals      = lid.BytesToBytes32([]byte("referrals"))
	slotHandlers       = lid.BytesToBytes32([]byte("stake-handlers"))
	slotAccountHistory = lid.BytesToBytes32([]byte("account-history"))
	slotTotalsHistory  = lid.BytesToBytes32([]byte("totals-history"))

	seriesTotalStaked  = history.Name("total-staked")
	seriesTotalStakers = history.Name("total-stakers")
)

var (
	ErrNotStarted           = reverts.NewPrecondition("Staking not yet started.")
	ErrStakeTooSmall        = reverts.NewPrecondition("Must stake at least one LID.")
	ErrStakeExceedsBalance  = reverts.NewPrecondition("Cannot stake more LID than you hold unstaked.")
	ErrUnstakeTooSmall      = reverts.NewPrecondition("Must unstake at least one LID.")
	ErrUnstakeExceedsStake  = reverts.NewPrecondition("Cannot unstake more LID than you have staked.")
	ErrDistributeExceeds    = reverts.NewPrecondition("Cannot distribute more LID than you hold unstaked.")
	ErrNothingStaked        = reverts.NewPrecondition("Cannot distribute when nothing is staked.")
	ErrWithdrawExceeds      = reverts.NewPrecondition("Cannot withdraw more dividends than you have earned.")
	ErrReinvestExceeds      = reverts.NewPrecondition("Cannot reinvest more dividends than you have earned.")
	ErrNotToken             = reverts.NewAuthorization("Can only be called by LidToken contract.")
	ErrAlreadyRegistered    = reverts.NewPrecondition("Staker is already registered.")
	ErrSelfReferral         = reverts.NewPrecondition("Cannot refer self.")
	ErrReferrerUnregistered = reverts.NewPrecondition("Referrer must be registered.")
	ErrRegisterBalance      = reverts.NewPrecondition("Must have enough balance to stake amount.")
	ErrRegistrationFee      = reverts.NewPrecondition("Must send at least enough LID to pay registration fee.")
	ErrAlreadyMigrated      = reverts.NewPrecondition("Staking storage is already migrated.")
	ErrHandlerIndex         = reverts.NewPrecondition("Stake handler index out of range.")
	ErrUnknownHandler       = reverts.NewPrecondition("Stake handler is not a known contract.")
	ErrNegativeAmount       = reverts.NewPrecondition("Amount cannot be negative.")
)

// Staking binder of `Staking` contract.
type Staking struct {
	addr    lid.Address
	env     *xenv.Environment
	params  *params.Params
	token   *token.Token
	resolve HandlerResolver

	stakes     *stakes.Service
	stats      *globalstats.Service
	accounts   *history.History
	totals     *history.History
	version    *solidity.Uint256
	registered *solidity.Mapping[lid.Address, bool]
	referrals  *solidity.Mapping[lid.Address, *big.Int]
	handlers   *solidity.List[lid.Address]
}

// New create a new instance. resolve maps registered handler addresses to
// their implementations and may be nil when no handler is registered.
func New(
	addr lid.Address,
	env *xenv.Environment,
	params *params.Params,
	token *token.Token,
	resolve HandlerResolver,
) *Staking {
	sctx := solidity.NewContext(addr, env.State())
	return &Staking{
		addr:       addr,
		env:        env,
		params:     params,
		token:      token,
		resolve:    resolve,
		stakes:     stakes.New(sctx),
		stats:      globalstats.New(sctx),
		accounts:   history.New(sctx, slotAccountHistory),
		totals:     history.New(sctx, slotTotalsHistory),
		version:    solidity.NewUint256(sctx, slotVersion),
		registered: solidity.NewMapping[lid.Address, bool](sctx, slotRegistered),
		referrals:  solidity.NewMapping[lid.Address, *big.Int](sctx, slotReferrals),
		handlers:   solidity.NewList[lid.Address](sctx, slotHandlers),
	}
}

//
// Getters - no state change
//

func (s *Staking) Address() lid.Address {
	return s.addr
}

// StakeValue returns the current stake of addr.
func (s *Staking) StakeValue(addr lid.Address) (*big.Int, error) {
	st, err := s.stakes.Get(addr)
	if err != nil {
		return nil, err
	}
	return st.Value, nil
}

// DividendsOf returns the dividends addr can withdraw or reinvest.
func (s *Staking) DividendsOf(addr lid.Address) (*big.Int, error) {
	st, err := s.stakes.Get(addr)
	if err != nil {
		return nil, err
	}
	acc, err := s.stats.ProfitPerShare()
	if err != nil {
		return nil, err
	}
	return st.Dividends(acc)
}

func (s *Staking) Totals() (*globalstats.Totals, error) {
	return s.stats.Totals()
}

func (s *Staking) TotalStaked() (*big.Int, error) {
	return s.stats.TotalStaked()
}

func (s *Staking) TotalStakers() (*big.Int, error) {
	return s.stats.TotalStakers()
}

// Stakers lists every account that has ever staked.
func (s *Staking) Stakers() ([]lid.Address, error) {
	return s.stakes.Stakers()
}

// FindTaxAmount returns floor(value * basisPoints / 10000).
func (s *Staking) FindTaxAmount(value, basisPoints *big.Int) (*big.Int, error) {
	return tax.Compute(value, basisPoints)
}

func (s *Staking) IsRegistered(addr lid.Address) (bool, error) {
	return s.registered.Get(addr)
}

func (s *Staking) Referrals(addr lid.Address) (*big.Int, error) {
	return s.referrals.Get(addr)
}

// Version returns the storage schema version.
func (s *Staking) Version() (uint64, error) {
	v, err := s.version.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// IsActive reports whether staking has opened at the current block time.
func (s *Staking) IsActive() (bool, error) {
	start, err := s.params.Get(lid.KeyStakingStartTime)
	if err != nil {
		return false, err
	}
	if start.Sign() == 0 {
		return false, nil
	}
	now := new(big.Int).SetUint64(s.env.BlockContext().Time)
	return now.Cmp(start) > 0, nil
}

func (s *Staking) requireActive() error {
	active, err := s.IsActive()
	if err != nil {
		return err
	}
	if !active {
		return ErrNotStarted
	}
	return nil
}
