// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/lid"
)

// Uint256 is a wrapper for storage and retrieval of an uint256. Similar to storing an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     lid.Bytes32
}

func NewUint256(context *Context, pos lid.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

// Set stores value. Negative values and values wider than 256 bits are rejected.
func (u *Uint256) Set(value *big.Int) error {
	if value.Sign() < 0 || value.BitLen() > 256 {
		return errors.Errorf("uint256 out of range: %v", value)
	}
	u.context.state.SetStorage(u.context.address, u.pos, lid.BytesToBytes32(value.Bytes()))
	return nil
}

func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Add(storage, value))
}

func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(storage.Sub(storage, value))
}
