// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRevertErr(t *testing.T) {
	tests := []struct {
		name string
		err  any
		want bool
	}{
		{"nil", nil, false},
		{"not an error", "boom", false},
		{"plain error", errors.New("boom"), false},
		{"revert", NewPrecondition("Must stake at least one LID."), true},
		{"wrapped revert", pkgerrors.Wrap(NewAuthorization("no"), "staking"), true},
		{"typed nil", (*ErrRevert)(nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRevertErr(tt.err))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Precondition, KindOf(NewPrecondition("a")))
	assert.Equal(t, Authorization, KindOf(pkgerrors.Wrap(NewAuthorization("b"), "ctx")))
	assert.Equal(t, Overflow, KindOf(NewOverflow("c")))
	assert.Equal(t, Kind(0), KindOf(errors.New("d")))

	assert.Equal(t, "precondition", Precondition.String())
	assert.Equal(t, "authorization", Authorization.String())
	assert.Equal(t, "overflow", Overflow.String())
	assert.Equal(t, "unknown", Kind(0).String())

	err := NewOverflow("amount too large")
	assert.Equal(t, "amount too large", err.Error())
	assert.Equal(t, Overflow, err.Kind())
}
