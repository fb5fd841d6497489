// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lidprotocol/lid/builtin/staking"
	"github.com/lidprotocol/lid/lid"
)

// Amount is a token amount written in whole tokens, e.g. "2" or "1.98".
type Amount struct {
	*big.Int
}

func NewAmount(v *big.Int) Amount {
	return Amount{new(big.Int).Set(v)}
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	v, ok := lid.ParseAmount(node.Value)
	if !ok {
		return fmt.Errorf("line %d: invalid token amount %q", node.Line, node.Value)
	}
	a.Int = v
	return nil
}

func (a Amount) MarshalYAML() (any, error) {
	return lid.FormatAmount(a.Int), nil
}

// Value returns the amount in base units, zero if unset.
func (a Amount) Value() *big.Int {
	if a.Int == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.Int)
}

// Allocation credits tokens to an account at launch.
type Allocation struct {
	Address lid.Address `yaml:"address"`
	Amount  Amount      `yaml:"amount"`
}

// RegistrationFees are charged by RegisterAndStake.
type RegistrationFees struct {
	WithReferrer    Amount `yaml:"with-referrer"`
	WithoutReferrer Amount `yaml:"without-referrer"`
}

// RewardPool configures the cycle based reward pool.
type RewardPool struct {
	ReleaseBP       uint64 `yaml:"release-bp"`
	ReleaseInterval uint64 `yaml:"release-interval"`
	CycleStart      uint64 `yaml:"cycle-start"`
	Size            Amount `yaml:"size"`
}

// Config describes the economy at launch.
type Config struct {
	LaunchTime       uint64           `yaml:"launch-time"`
	Owner            lid.Address      `yaml:"owner"`
	SchemaVersion    uint64           `yaml:"schema-version"`
	StartTime        uint64           `yaml:"start-time"`
	StakingTaxBP     uint64           `yaml:"staking-tax-bp"`
	UnstakingTaxBP   uint64           `yaml:"unstaking-tax-bp"`
	RegistrationFees RegistrationFees `yaml:"registration-fees"`
	RewardPool       RewardPool       `yaml:"reward-pool"`
	Allocations      []Allocation     `yaml:"allocations"`
}

// DefaultConfig returns the launch parameters of the live deployment.
func DefaultConfig(owner lid.Address) *Config {
	return &Config{
		LaunchTime:     1593900000,
		Owner:          owner,
		SchemaVersion:  staking.SchemaV2,
		StartTime:      1593918000,
		StakingTaxBP:   lid.InitialStakingTaxBP.Uint64(),
		UnstakingTaxBP: lid.InitialUnstakingTaxBP.Uint64(),
		RegistrationFees: RegistrationFees{
			WithReferrer:    NewAmount(lid.InitialRegistrationFeeWithReferrer),
			WithoutReferrer: NewAmount(lid.InitialRegistrationFeeWithoutReferrer),
		},
		RewardPool: RewardPool{
			ReleaseBP:       lid.InitialRewardReleaseBP,
			ReleaseInterval: lid.InitialRewardReleaseInterval,
			CycleStart:      1594387800,
			Size:            NewAmount(lid.InitialRewardPoolSize),
		},
	}
}

// ParseConfig decodes a YAML config. Unset fields keep the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig(lid.Address{})
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis config")
	}
	return cfg, cfg.Validate()
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func (c *Config) Validate() error {
	if c.Owner.IsZero() {
		return errors.New("owner must be set")
	}
	if c.SchemaVersion != staking.SchemaV1 && c.SchemaVersion != staking.SchemaV2 {
		return errors.Errorf("unsupported schema version %d", c.SchemaVersion)
	}
	if c.StakingTaxBP >= lid.BasisPointsDenominator || c.UnstakingTaxBP >= lid.BasisPointsDenominator {
		return errors.New("tax cannot be over 100% (10000 BP)")
	}
	for i, a := range c.Allocations {
		if a.Address.IsZero() {
			return errors.Errorf("allocation %d: address must be set", i)
		}
		if a.Amount.Int == nil || a.Amount.Sign() < 1 {
			return errors.Errorf("allocation %d: amount must be positive", i)
		}
	}
	return nil
}
