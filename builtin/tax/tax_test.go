// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tax

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/builtin/reverts"
	"github.com/lidprotocol/lid/lid"
)

func TestCompute(t *testing.T) {
	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	tests := []struct {
		name   string
		amount *big.Int
		bp     int64
		want   *big.Int
		kind   reverts.Kind
	}{
		{"zero", big.NewInt(0), 100, big.NewInt(0), 0},
		{"one percent of 2 tokens", lid.Tokens(2), 100, big.NewInt(2e16), 0},
		{"floor", big.NewInt(199), 100, big.NewInt(1), 0},
		{"below one unit", big.NewInt(99), 100, big.NewInt(0), 0},
		{"zero rate", lid.Tokens(5), 0, big.NewInt(0), 0},
		{"full rate", big.NewInt(12345), 10000, big.NewInt(12345), 0},
		{"max amount, zero rate", maxUint256, 0, big.NewInt(0), 0},
		{"max amount overflows multiply", maxUint256, 100, nil, reverts.Overflow},
		{"amount wider than 256 bits", new(big.Int).Lsh(big.NewInt(1), 256), 0, nil, reverts.Overflow},
		{"negative amount", big.NewInt(-1), 100, nil, reverts.Precondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.amount, big.NewInt(tt.bp))
			if tt.kind != 0 {
				assert.Equal(t, tt.kind, reverts.KindOf(err))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, tt.want.Cmp(got), "want %v got %v", tt.want, got)
		})
	}
}

func TestSplit(t *testing.T) {
	tax, net, err := Split(lid.Tokens(2), big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, "20000000000000000", tax.String())
	assert.Equal(t, "1980000000000000000", net.String())

	_, _, err = Split(big.NewInt(-5), big.NewInt(100))
	assert.Error(t, err)
}

func TestValidateRate(t *testing.T) {
	assert.NoError(t, ValidateRate(big.NewInt(0)))
	assert.NoError(t, ValidateRate(big.NewInt(9999)))
	assert.Equal(t, ErrRateTooHigh, ValidateRate(big.NewInt(10000)))
	assert.Equal(t, ErrNegative, ValidateRate(big.NewInt(-1)))
}
