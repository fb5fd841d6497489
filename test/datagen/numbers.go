// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	mathrand "math/rand"
	mathrandv2 "math/rand/v2"
)

var rng = mathrand.New(mathrand.NewSource(mathrandv2.Int64())) //#nosec G404

func RandInt() int {
	return mathrandv2.Int() //#nosec G404
}

func RandIntN(n int) int {
	return mathrandv2.N(n) //#nosec G404
}
