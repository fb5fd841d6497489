// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/lidprotocol/lid/lid"
)

type contract struct {
	name    string
	Address lid.Address
}

func newContract(name string) *contract {
	return &contract{
		name,
		lid.BytesToAddress([]byte(name)),
	}
}

func (c *contract) Name() string {
	return c.name
}
