// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"math/big"

	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/state"
)

// BlockContext block context.
type BlockContext struct {
	Number uint32
	Time   uint64
}

// Event is emitted by a native contract during an operation.
type Event struct {
	Address      lid.Address // always a contract address
	Name         string
	Account      lid.Address
	Counterparty lid.Address
	Amount       *big.Int
}

// Environment an env to execute native methods.
type Environment struct {
	state    *state.State
	blockCtx *BlockContext
	events   []*Event
}

// New create a new env.
func New(state *state.State, blockCtx *BlockContext) *Environment {
	return &Environment{
		state:    state,
		blockCtx: blockCtx,
	}
}

func (env *Environment) State() *state.State          { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Events() []*Event             { return env.events }

// Log buffers an event. Events of a reverted Atomic call are dropped.
func (env *Environment) Log(ev *Event) {
	if ev.Amount == nil {
		ev.Amount = new(big.Int)
	}
	env.events = append(env.events, ev)
}

// Atomic runs fn on a state checkpoint. If fn fails, every storage write and
// event made by fn is discarded.
func (env *Environment) Atomic(fn func() error) error {
	revision := env.state.NewCheckpoint()
	n := len(env.events)
	if err := fn(); err != nil {
		env.state.RevertTo(revision)
		env.events = env.events[:n]
		return err
	}
	return nil
}
