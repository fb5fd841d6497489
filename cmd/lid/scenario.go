// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lidprotocol/lid/genesis"
	"github.com/lidprotocol/lid/ledger"
	"github.com/lidprotocol/lid/lid"
)

// Step is one scenario operation. Fields unused by an op are ignored.
type Step struct {
	Op       string         `yaml:"op"`
	From     lid.Address    `yaml:"from"`
	To       lid.Address    `yaml:"to"`
	Referrer lid.Address    `yaml:"referrer"`
	Amount   genesis.Amount `yaml:"amount"`
	BP       uint64         `yaml:"bp"`
	Cycle    uint64         `yaml:"cycle"`
	Time     uint64         `yaml:"time"`
	Seconds  uint64         `yaml:"seconds"`
	// Expect is the error the step must fail with. Empty means success.
	Expect string `yaml:"expect"`
}

type Scenario struct {
	Steps []Step `yaml:"steps"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "decode scenario")
	}
	return &sc, nil
}

// run applies every step in order and stops at the first unexpected outcome.
// progress, if not nil, is called after each step.
func (sc *Scenario) run(ctx context.Context, l *ledger.Ledger, progress func()) error {
	for i, step := range sc.Steps {
		err := step.apply(ctx, l)
		switch {
		case step.Expect == "" && err != nil:
			return errors.WithMessagef(err, "step %d (%s)", i, step.Op)
		case step.Expect != "" && err == nil:
			return errors.Errorf("step %d (%s): expected error %q", i, step.Op, step.Expect)
		case step.Expect != "" && err.Error() != step.Expect:
			return errors.Errorf("step %d (%s): expected error %q, got %q", i, step.Op, step.Expect, err)
		}
		clock := l.Clock()
		logger.Debug("step applied", "index", i, "op", step.Op, "number", clock.Number, "time", clock.Time, "err", err)
		if progress != nil {
			progress()
		}
	}
	return nil
}

func (s *Step) apply(ctx context.Context, l *ledger.Ledger) error {
	amount := s.Amount.Value()
	switch s.Op {
	case "advance":
		if s.Time != 0 {
			return l.AdvanceTo(l.Clock().Number+1, s.Time)
		}
		return l.Tick(s.Seconds)
	case "mint":
		return l.Mint(ctx, s.From, s.To, amount)
	case "transfer":
		return l.Transfer(ctx, s.From, s.To, amount)
	case "stake":
		return l.Stake(ctx, s.From, amount)
	case "unstake":
		return l.Unstake(ctx, s.From, amount)
	case "distribute":
		return l.Distribute(ctx, s.From, amount)
	case "tax":
		return l.CollectTax(ctx, s.From, amount)
	case "withdraw":
		return l.Withdraw(ctx, s.From, amount)
	case "reinvest":
		return l.Reinvest(ctx, s.From, amount)
	case "register":
		return l.RegisterAndStake(ctx, s.From, amount, s.Referrer)
	case "register-rewards":
		return l.RegisterRewards(ctx, s.From)
	case "claim":
		paid, err := l.Claim(ctx, s.From, s.Cycle)
		if err == nil {
			logger.Info("reward claimed", "staker", s.From, "cycle", s.Cycle, "amount", lid.FormatAmount(paid))
		}
		return err
	case "migrate":
		return l.MigrateV2(ctx, s.From)
	case "set-staking-tax":
		return l.SetStakingTaxBP(ctx, s.From, new(big.Int).SetUint64(s.BP))
	case "set-unstaking-tax":
		return l.SetUnstakingTaxBP(ctx, s.From, new(big.Int).SetUint64(s.BP))
	case "set-start-time":
		return l.SetStartTime(ctx, s.From, s.Time)
	case "transfer-ownership":
		return l.TransferOwnership(ctx, s.From, s.To)
	default:
		return errors.Errorf("unknown op %q", s.Op)
	}
}
