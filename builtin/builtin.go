// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/builtin/params"
	"github.com/lidprotocol/lid/builtin/rewardpool"
	"github.com/lidprotocol/lid/builtin/staking"
	"github.com/lidprotocol/lid/builtin/token"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/state"
	"github.com/lidprotocol/lid/xenv"
)

// Builtin contracts binding.
var (
	Params     = &paramsContract{newContract("Params")}
	Token      = &tokenContract{newContract("Token")}
	Staking    = &stakingContract{newContract("Staking")}
	RewardPool = &rewardPoolContract{newContract("RewardPool")}
)

type (
	paramsContract     struct{ *contract }
	tokenContract      struct{ *contract }
	stakingContract    struct{ *contract }
	rewardPoolContract struct{ *contract }
)

func (p *paramsContract) WithState(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

func (t *tokenContract) Native(env *xenv.Environment) *token.Token {
	return token.New(t.Address, env, Params.WithState(env.State()))
}

func (s *stakingContract) Native(env *xenv.Environment) *staking.Staking {
	return staking.New(
		s.Address,
		env,
		Params.WithState(env.State()),
		Token.Native(env),
		HandlerResolver(env),
	)
}

func (r *rewardPoolContract) Native(env *xenv.Environment) *rewardpool.RewardPool {
	return rewardpool.New(r.Address, env, Token.Native(env), Staking.Native(env))
}

// HandlerResolver binds stake handler addresses to the builtin contracts
// implementing them.
func HandlerResolver(env *xenv.Environment) staking.HandlerResolver {
	return func(addr lid.Address) (staking.StakeHandler, error) {
		switch addr {
		case RewardPool.Address:
			return RewardPool.Native(env), nil
		default:
			return nil, errors.Errorf("no stake handler at %v", addr)
		}
	}
}

// Contracts lists every builtin contract.
func Contracts() map[string]lid.Address {
	return map[string]lid.Address{
		Params.Name():     Params.Address,
		Token.Name():      Token.Address,
		Staking.Name():    Staking.Address,
		RewardPool.Name(): RewardPool.Address,
	}
}
