// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/lid"
)

// StakeHandler observes stake changes. caller is the staking contract.
// A returned error aborts the stake change that triggered it.
type StakeHandler interface {
	HandleStake(caller, staker lid.Address, oldValue, newValue *big.Int) error
	HandleUnstake(caller, staker lid.Address, oldValue, newValue *big.Int) error
}

// HandlerResolver binds a registered handler address to its implementation.
type HandlerResolver func(addr lid.Address) (StakeHandler, error)

// StakeHandlers returns the registered handlers in call order.
func (s *Staking) StakeHandlers() ([]lid.Address, error) {
	var addrs []lid.Address
	err := s.handlers.Each(func(_ uint64, addr lid.Address) (bool, error) {
		addrs = append(addrs, addr)
		return true, nil
	})
	return addrs, err
}

func (s *Staking) StakeHandlerCount() (uint64, error) {
	return s.handlers.Len()
}

// RegisterStakeHandler appends handler to the notification list.
func (s *Staking) RegisterStakeHandler(caller, handler lid.Address) error {
	return s.env.Atomic(func() error {
		if err := s.params.RequireOwner(caller); err != nil {
			return err
		}
		if s.resolve == nil {
			return ErrUnknownHandler
		}
		if _, err := s.resolve(handler); err != nil {
			return ErrUnknownHandler
		}
		if err := s.handlers.Push(handler); err != nil {
			return err
		}
		logger.Info("stake handler registered", "handler", handler)
		return nil
	})
}

// UnregisterStakeHandler removes the handler at index. The last handler takes its place.
func (s *Staking) UnregisterStakeHandler(caller lid.Address, index uint64) error {
	return s.env.Atomic(func() error {
		if err := s.params.RequireOwner(caller); err != nil {
			return err
		}
		n, err := s.handlers.Len()
		if err != nil {
			return err
		}
		if index >= n {
			return ErrHandlerIndex
		}
		if err := s.handlers.RemoveSwap(index); err != nil {
			return err
		}
		logger.Info("stake handler unregistered", "index", index)
		return nil
	})
}

func (s *Staking) notify(staker lid.Address, oldValue, newValue *big.Int, staked bool) error {
	return s.handlers.Each(func(_ uint64, addr lid.Address) (bool, error) {
		if s.resolve == nil {
			return false, errors.Errorf("no resolver for stake handler %v", addr)
		}
		h, err := s.resolve(addr)
		if err != nil {
			return false, errors.WithMessagef(err, "resolve stake handler %v", addr)
		}
		if staked {
			err = h.HandleStake(s.addr, staker, oldValue, newValue)
		} else {
			err = h.HandleUnstake(s.addr, staker, oldValue, newValue)
		}
		return err == nil, err
	})
}
