// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/api/utils"
	"github.com/lidprotocol/lid/logdb"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

func (e *Events) filter(req *http.Request, filter *EventFilter) ([]*Event, error) {
	if filter.Options != nil && filter.Options.Limit > e.limit {
		return nil, utils.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", e.limit))
	}
	f, err := convertFilter(filter, e.limit)
	if err != nil {
		return nil, utils.BadRequest(err)
	}
	events, err := e.db.FilterEvents(req.Context(), f)
	if err != nil {
		return nil, err
	}
	out := make([]*Event, len(events))
	for i, ev := range events {
		out[i] = convertEvent(ev)
	}
	return out, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter EventFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	events, err := e.filter(req, &filter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, events)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
