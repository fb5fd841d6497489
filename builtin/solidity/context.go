// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity provides typed storage slots for builtin contracts,
// laid out the way a solidity contract lays out its storage.
package solidity

import (
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/state"
)

// Context binds a contract address to the state it reads and writes.
type Context struct {
	address lid.Address
	state   *state.State
}

func NewContext(address lid.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() lid.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
