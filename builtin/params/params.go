// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params is the owner-gated store of governance parameters.
package params

import (
	"math/big"

	"github.com/lidprotocol/lid/builtin/reverts"
	"github.com/lidprotocol/lid/builtin/solidity"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/log"
	"github.com/lidprotocol/lid/state"
)

var (
	logger = log.WithContext("pkg", "params")

	slotOwner = lid.BytesToBytes32([]byte("owner"))

	ErrNotOwner = reverts.NewAuthorization("Ownable: caller is not the owner")
)

// Params binder of `Params` contract.
type Params struct {
	context *solidity.Context
	owner   *solidity.Address
}

func New(addr lid.Address, state *state.State) *Params {
	ctx := solidity.NewContext(addr, state)
	return &Params{
		context: ctx,
		owner:   solidity.NewAddress(ctx, slotOwner),
	}
}

// Get native way to get param.
func (p *Params) Get(key lid.Bytes32) (*big.Int, error) {
	return solidity.NewUint256(p.context, key).Get()
}

// Set native way to set param.
func (p *Params) Set(key lid.Bytes32, value *big.Int) error {
	return solidity.NewUint256(p.context, key).Set(value)
}

// SetBy sets a param on behalf of caller, who must be the owner.
func (p *Params) SetBy(caller lid.Address, key lid.Bytes32, value *big.Int) error {
	if err := p.RequireOwner(caller); err != nil {
		return err
	}
	if err := p.Set(key, value); err != nil {
		return err
	}
	logger.Info("param updated", "key", key, "value", value)
	return nil
}

// Owner returns the designated admin.
func (p *Params) Owner() (lid.Address, error) {
	return p.owner.Get()
}

// SetOwner installs the designated admin. Used at genesis.
func (p *Params) SetOwner(owner lid.Address) {
	p.owner.Set(owner)
}

// TransferOwnership hands the admin role to a new owner.
func (p *Params) TransferOwnership(caller, newOwner lid.Address) error {
	if err := p.RequireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.NewPrecondition("Ownable: new owner is the zero address")
	}
	p.owner.Set(newOwner)
	logger.Info("ownership transferred", "from", caller, "to", newOwner)
	return nil
}

// RequireOwner rejects any caller other than the owner.
func (p *Params) RequireOwner(caller lid.Address) error {
	owner, err := p.Owner()
	if err != nil {
		return err
	}
	if owner.IsZero() || caller != owner {
		return ErrNotOwner
	}
	return nil
}
