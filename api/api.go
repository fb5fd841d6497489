// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves read-only views of the ledger over HTTP.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pborman/uuid"

	"github.com/lidprotocol/lid/api/accounts"
	"github.com/lidprotocol/lid/api/events"
	"github.com/lidprotocol/lid/api/node"
	"github.com/lidprotocol/lid/api/rewards"
	"github.com/lidprotocol/lid/api/staking"
	"github.com/lidprotocol/lid/ledger"
	"github.com/lidprotocol/lid/log"
	"github.com/lidprotocol/lid/logdb"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableMetrics   bool
	EnableReqLogger bool
	LogsLimit       uint64
}

// New return api router
func New(l *ledger.Ledger, logDB *logdb.LogDB, opts Options) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(l).
		Mount(router, "/accounts")
	staking.New(l).
		Mount(router, "/staking")
	rewards.New(l).
		Mount(router, "/rewards")
	node.New(l).
		Mount(router, "/node")
	if logDB != nil {
		events.New(logDB, opts.LogsLimit).
			Mount(router, "/events")
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = requestLogger(handler)
	}
	return handler
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New()
		w.Header().Set("X-Request-Id", id)
		logger.Debug("request", "id", id, "method", r.Method, "uri", r.URL.RequestURI(), "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
