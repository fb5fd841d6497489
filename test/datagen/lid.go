// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"
	"math/big"

	"github.com/lidprotocol/lid/lid"
)

func RandomHash() (b lid.Bytes32) {
	rand.Read(b[:])
	return
}

func RandAddress() (addr lid.Address) {
	rand.Read(addr[:])
	return
}

func RandAddresses(n int) []lid.Address {
	addrs := make([]lid.Address, n)
	for i := range addrs {
		addrs[i] = RandAddress()
	}
	return addrs
}

// RandTokens returns a random amount between min and max whole tokens, with
// a random fraction.
func RandTokens(min, max int) *big.Int {
	whole := lid.Tokens(int64(min + RandIntN(max-min+1)))
	frac := new(big.Int).Rand(rng, lid.OneToken)
	return whole.Add(whole, frac)
}
