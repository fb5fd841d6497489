// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/api/utils"
	"github.com/lidprotocol/lid/ledger"
	"github.com/lidprotocol/lid/lid"
)

// Reward for marshal a staker's position in a reward cycle.
type Reward struct {
	Cycle       uint64                `json:"cycle"`
	Current     uint64                `json:"currentCycle"`
	Ownership   *math.HexOrDecimal256 `json:"ownership"`
	PoolTotal   *math.HexOrDecimal256 `json:"poolTotal"`
	TotalReward *math.HexOrDecimal256 `json:"totalReward"`
	Payout      *math.HexOrDecimal256 `json:"payout"`
	Claimed     *math.HexOrDecimal256 `json:"claimed"`
	Claimable   bool                  `json:"claimable"`
}

type Rewards struct {
	ledger *ledger.Ledger
}

func New(ledger *ledger.Ledger) *Rewards {
	return &Rewards{ledger}
}

func (r *Rewards) handleGetReward(w http.ResponseWriter, req *http.Request) error {
	cycle, err := strconv.ParseUint(mux.Vars(req)["cycle"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "cycle"))
	}
	addr, err := lid.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	reward, err := r.ledger.Reward(*addr, cycle)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Reward{
		Cycle:       reward.Cycle,
		Current:     reward.Current,
		Ownership:   (*math.HexOrDecimal256)(reward.Ownership),
		PoolTotal:   (*math.HexOrDecimal256)(reward.PoolTotal),
		TotalReward: (*math.HexOrDecimal256)(reward.TotalReward),
		Payout:      (*math.HexOrDecimal256)(reward.Payout),
		Claimed:     (*math.HexOrDecimal256)(reward.Claimed),
		Claimable:   cycle > 0 && cycle < reward.Current && reward.Payout.Cmp(reward.Claimed) > 0,
	})
}

func (r *Rewards) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{cycle}/{address}").Methods(http.MethodGet).HandlerFunc(utils.WrapHandlerFunc(r.handleGetReward))
}
