// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/api/utils"
	"github.com/lidprotocol/lid/ledger"
	"github.com/lidprotocol/lid/lid"
)

type Accounts struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Accounts {
	return &Accounts{ledger}
}

func parseAddress(req *http.Request) (lid.Address, error) {
	addr, err := lid.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return lid.Address{}, utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return *addr, nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	acc, err := a.ledger.Account(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccount(acc))
}

// handleGetStake serves the stake as of the block in the query, or the current block.
func (a *Accounts) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}
	current := a.ledger.Clock().Number
	block, err := utils.ParseUint(req.URL.Query().Get("block"), 32, uint64(current))
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "block"))
	}
	if uint32(block) > current {
		return utils.BadRequest(errors.New("block: not reached yet"))
	}
	stake, err := a.ledger.StakeAt(addr, uint32(block))
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &StakeAt{
		Block: uint32(block),
		Stake: (*math.HexOrDecimal256)(stake),
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/stake").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(a.handleGetStake))
}
