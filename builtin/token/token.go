// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is the balance store every other contract credits and debits.
package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/builtin/params"
	"github.com/lidprotocol/lid/builtin/reverts"
	"github.com/lidprotocol/lid/builtin/solidity"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/log"
	"github.com/lidprotocol/lid/xenv"
)

var (
	logger = log.WithContext("pkg", "token")

	slotBalances    = lid.BytesToBytes32([]byte("balances"))
	slotTotalSupply = lid.BytesToBytes32([]byte("total-supply"))

	ErrInsufficientBalance = reverts.NewPrecondition("ERC20: transfer amount exceeds balance")
)

// Token binder of `Token` contract.
type Token struct {
	addr     lid.Address
	env      *xenv.Environment
	params   *params.Params
	balances *solidity.Mapping[lid.Address, *big.Int]
	supply   *solidity.Uint256
}

func New(addr lid.Address, env *xenv.Environment, params *params.Params) *Token {
	sctx := solidity.NewContext(addr, env.State())
	return &Token{
		addr:     addr,
		env:      env,
		params:   params,
		balances: solidity.NewMapping[lid.Address, *big.Int](sctx, slotBalances),
		supply:   solidity.NewUint256(sctx, slotTotalSupply),
	}
}

func (t *Token) Address() lid.Address {
	return t.addr
}

func (t *Token) BalanceOf(addr lid.Address) (*big.Int, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return bal, nil
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.supply.Get()
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to lid.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.NewPrecondition("ERC20: negative amount")
	}
	fromBal, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if from != to {
		toBal, err := t.BalanceOf(to)
		if err != nil {
			return err
		}
		if err := t.balances.Set(from, fromBal.Sub(fromBal, amount)); err != nil {
			return err
		}
		if err := t.balances.Set(to, toBal.Add(toBal, amount)); err != nil {
			return err
		}
	}
	t.env.Log(&xenv.Event{
		Address:      t.Address(),
		Name:         "Transfer",
		Account:      from,
		Counterparty: to,
		Amount:       new(big.Int).Set(amount),
	})
	return nil
}

// Mint creates new tokens. Only the owner may mint.
func (t *Token) Mint(caller, to lid.Address, amount *big.Int) error {
	if err := t.params.RequireOwner(caller); err != nil {
		return err
	}
	return t.mint(to, amount)
}

// Allocate credits an initial allocation at genesis.
func (t *Token) Allocate(to lid.Address, amount *big.Int) error {
	return t.mint(to, amount)
}

func (t *Token) mint(to lid.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.NewPrecondition("ERC20: negative amount")
	}
	bal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := t.supply.Add(amount); err != nil {
		return reverts.NewOverflow("ERC20: total supply overflow")
	}
	if err := t.balances.Set(to, bal.Add(bal, amount)); err != nil {
		return err
	}
	logger.Debug("minted", "to", to, "amount", amount)
	t.env.Log(&xenv.Event{
		Address: t.Address(),
		Name:    "Mint",
		Account: to,
		Amount:  new(big.Int).Set(amount),
	})
	return nil
}
