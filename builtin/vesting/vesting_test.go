// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vesting

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lidprotocol/lid/lid"
)

const month = 86400 * 30

func newSchedule() *Schedule {
	return &Schedule{
		Start:     1000,
		Interval:  100,
		Size:      lid.Tokens(26_000_000),
		ReleaseBP: 1000,
	}
}

func assertAmount(t *testing.T, expected, actual *big.Int, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, expected.String(), actual.String(), msgAndArgs...)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, newSchedule().Validate())

	s := newSchedule()
	s.Interval = 0
	assert.Error(t, s.Validate())

	s = newSchedule()
	s.ReleaseBP = 10001
	assert.Error(t, s.Validate())

	s = newSchedule()
	s.ReleaseBP = 0
	assert.Error(t, s.Validate(), "no release form")

	s = newSchedule()
	s.ReleaseAmount = lid.Tokens(1)
	assert.Error(t, s.Validate(), "both release forms")

	s.ReleaseBP = 0
	assert.NoError(t, s.Validate())

	s.ReleaseAmount = new(big.Int)
	assert.Error(t, s.Validate())
}

func TestCycles(t *testing.T) {
	s := newSchedule()
	tests := []struct {
		now   uint64
		index uint64
		count uint64
	}{
		{0, 0, 0},
		{999, 0, 0},
		{1000, 0, 0},
		{1001, 0, 1},
		{1099, 0, 1},
		{1100, 1, 2},
		{1350, 3, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.index, s.CycleIndex(tt.now), "index at %d", tt.now)
		assert.Equal(t, tt.count, s.CycleCount(tt.now), "count at %d", tt.now)
	}
}

func TestSlices(t *testing.T) {
	s := newSchedule()
	perCycle := lid.Tokens(2_600_000)
	assertAmount(t, perCycle, s.PerCycle())

	assert.Zero(t, s.Slice(0).Sign())
	for n := uint64(1); n <= 10; n++ {
		assertAmount(t, perCycle, s.Slice(n), "cycle %d", n)
	}
	assert.Zero(t, s.Slice(11).Sign())
	assertAmount(t, s.Size, s.ReleasableAt(10))
	assertAmount(t, s.Size, s.ReleasableAt(50))
}

func TestSliceCappedAtSize(t *testing.T) {
	s := &Schedule{Start: 0, Interval: 1, Size: big.NewInt(100), ReleaseBP: 3000}
	assertAmount(t, big.NewInt(30), s.Slice(1))
	assertAmount(t, big.NewInt(30), s.Slice(3))
	assertAmount(t, big.NewInt(10), s.Slice(4))
	assert.Zero(t, s.Slice(5).Sign())
}

func TestReleaseAmount(t *testing.T) {
	devFund := &Schedule{
		Start:         1593955800,
		Interval:      month,
		Size:          lid.Tokens(30_000_000),
		ReleaseAmount: lid.Tokens(2_500_000),
	}
	teamLock := &Schedule{
		Start:         1593955800,
		Interval:      month,
		Size:          lid.Tokens(10_000_000),
		ReleaseAmount: lid.Tokens(2_500_000),
	}
	assert.NoError(t, devFund.Validate())
	assert.NoError(t, teamLock.Validate())

	release := lid.Tokens(2_500_000)
	assertAmount(t, release, devFund.PerCycle())
	for n := uint64(0); n <= 12; n++ {
		expected := new(big.Int).Mul(release, new(big.Int).SetUint64(n))
		assertAmount(t, expected, devFund.ReleasableAt(n), "cycle %d", n)
	}
	assertAmount(t, devFund.Size, devFund.ReleasableAt(13))
	assert.Zero(t, devFund.Slice(13).Sign())

	assertAmount(t, lid.Tokens(5_000_000), teamLock.ReleasableAt(2))
	assertAmount(t, teamLock.Size, teamLock.ReleasableAt(4))
	assertAmount(t, teamLock.Size, teamLock.ReleasableAt(9))

	// one interval past the start, the second cycle is running
	now := devFund.Start + month + 1
	assert.Equal(t, uint64(2), devFund.CycleCount(now))
	assertAmount(t, lid.Tokens(5_000_000), devFund.ReleasableAt(devFund.CycleCount(now)))
}
