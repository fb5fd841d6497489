// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"
	"time"

	"github.com/elastic/gosigar"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lidprotocol/lid/genesis"
	"github.com/lidprotocol/lid/ledger"
	"github.com/lidprotocol/lid/log"
	"github.com/lidprotocol/lid/logdb"
	"github.com/lidprotocol/lid/lvldb"
)

func initLogger(ctx *cli.Context) {
	handler := log.NewHandler(os.Stderr, ctx.GlobalInt(verbosityFlag.Name), ctx.GlobalBool(jsonLogsFlag.Name))
	log.SetDefault(handler)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".lid")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// stores holds the open databases of a ledger.
type stores struct {
	main  *lvldb.LevelDB
	logDB *logdb.LogDB
}

func (s *stores) Close() {
	if s.logDB != nil {
		if err := s.logDB.Close(); err != nil {
			logger.Warn("failed to close log database", "err", err)
		}
	}
	if err := s.main.Close(); err != nil {
		logger.Warn("failed to close main database", "err", err)
	}
}

func openStores(ctx *cli.Context) (*stores, error) {
	if ctx.GlobalBool(memFlag.Name) {
		main, err := lvldb.NewMem()
		if err != nil {
			return nil, err
		}
		logDB, err := logdb.NewMem()
		if err != nil {
			main.Close()
			return nil, err
		}
		return &stores{main, logDB}, nil
	}

	dir := ctx.GlobalString(dataDirFlag.Name)
	if dir == "" {
		return nil, errors.New("unable to infer default data dir, use -data-dir to specify")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	main, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{
		CacheSize:              suggestCacheSizeMB(ctx.GlobalInt(ldbCacheFlag.Name)),
		OpenFilesCacheCapacity: 64,
	})
	if err != nil {
		return nil, err
	}
	logDB, err := logdb.New(filepath.Join(dir, "logs.db"))
	if err != nil {
		main.Close()
		return nil, errors.Wrap(err, "open log database")
	}
	logger.Debug("databases opened", "dir", dir, "sqlite", logDB.DriverVersion())
	return &stores{main, logDB}, nil
}

func openLedger(ctx *cli.Context, s *stores) (*ledger.Ledger, error) {
	var cfg *genesis.Config
	if path := ctx.GlobalString(configFlag.Name); path != "" {
		c, err := genesis.LoadConfig(path)
		if err != nil {
			return nil, errors.WithMessage(err, "load config")
		}
		cfg = c
	}
	l, err := ledger.Open(s.main, cfg, ledger.Options{
		CacheSize: ctx.GlobalInt(cacheFlag.Name),
		LogDB:     s.logDB,
	})
	if errors.Is(err, ledger.ErrNotInitialized) {
		return nil, errors.New("empty data dir, use -config to initialize the ledger")
	}
	return l, err
}

// suggestCacheSizeMB limits the requested level db cache to half of the
// total memory.
func suggestCacheSizeMB(sizeMB int) int {
	if sizeMB < 16 {
		sizeMB = 16
	}
	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
		return sizeMB
	}
	limitMB := int(mem.Total / 1024 / 1024 / 2)
	if sizeMB > limitMB {
		logger.Info("cache size(MB) limited", "limit", limitMB)
		return limitMB
	}
	return sizeMB
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

// serveHTTP serves handler on addr until ctx is done.
func serveHTTP(ctx context.Context, name, addr string, handler http.Handler) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s addr", name)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 10 * time.Second}
	logger.Info(fmt.Sprintf("%s service started", name), "url", "http://"+listener.Addr().String())

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(listener)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info(fmt.Sprintf("stopping %s service...", name))
		return srv.Shutdown(shutdownCtx)
	case err := <-done:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
