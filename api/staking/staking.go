// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lidprotocol/lid/api/utils"
	"github.com/lidprotocol/lid/ledger"
	"github.com/lidprotocol/lid/lid"
)

type API struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *API {
	return &API{ledger}
}

func (s *API) handleGetStaking(w http.ResponseWriter, _ *http.Request) error {
	summary, err := s.ledger.Staking()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertStaking(summary))
}

func (s *API) handleGetStakers(w http.ResponseWriter, _ *http.Request) error {
	stakers, err := s.ledger.Stakers()
	if err != nil {
		return err
	}
	if stakers == nil {
		stakers = []lid.Address{}
	}
	return utils.WriteJSON(w, stakers)
}

func (s *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(s.handleGetStaking))
	sub.Path("/stakers").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(s.handleGetStakers))
}
