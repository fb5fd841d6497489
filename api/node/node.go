// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lidprotocol/lid/api/utils"
	"github.com/lidprotocol/lid/builtin"
	"github.com/lidprotocol/lid/ledger"
)

type Clock struct {
	Number uint32 `json:"number"`
	Time   uint64 `json:"time"`
}

type Node struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Node {
	return &Node{ledger}
}

func (n *Node) handleGetClock(w http.ResponseWriter, _ *http.Request) error {
	c := n.ledger.Clock()
	return utils.WriteJSON(w, &Clock{Number: c.Number, Time: c.Time})
}

func (n *Node) handleGetContracts(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, builtin.Contracts())
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/clock").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(n.handleGetClock))
	sub.Path("/contracts").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(n.handleGetContracts))
}

