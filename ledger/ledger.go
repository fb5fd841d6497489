// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger runs operations of the builtin contracts against a persistent
// store. Each operation commits all of its writes or none.
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/genesis"
	"github.com/lidprotocol/lid/kv"
	"github.com/lidprotocol/lid/log"
	"github.com/lidprotocol/lid/logdb"
	"github.com/lidprotocol/lid/state"
	"github.com/lidprotocol/lid/xenv"
)

var (
	logger = log.WithContext("pkg", "ledger")

	metaBucket = kv.Bucket("m")
	clockKey   = []byte("clock")

	ErrNotInitialized = errors.New("ledger not initialized")
	ErrClockBackwards = errors.New("clock must move forward")
)

// Clock is the block the next operation executes in.
type Clock struct {
	Number uint32
	Time   uint64
}

// Options tunes an opened ledger.
type Options struct {
	// CacheSize is the number of storage slots kept in memory. Zero disables caching.
	CacheSize int
	// LogDB receives the events of committed operations. Optional.
	LogDB *logdb.LogDB
}

type Ledger struct {
	lock  sync.RWMutex
	store kv.Store
	meta  kv.Store
	cache *state.Cache
	logDB *logdb.LogDB
	clock Clock
}

// Open loads the ledger from store. An empty store is initialized from cfg,
// which may be nil when the store already holds a ledger.
func Open(store kv.Store, cfg *genesis.Config, opts Options) (*Ledger, error) {
	l := &Ledger{
		store: store,
		meta:  metaBucket.NewStore(store),
		logDB: opts.LogDB,
	}
	if opts.CacheSize > 0 {
		c, err := state.NewCache(opts.CacheSize)
		if err != nil {
			return nil, err
		}
		l.cache = c
	}

	data, err := l.meta.Get(clockKey)
	if err == nil {
		if err := rlp.DecodeBytes(data, &l.clock); err != nil {
			return nil, errors.Wrap(err, "decode clock")
		}
		logger.Info("ledger loaded", "number", l.clock.Number, "time", l.clock.Time)
		return l, nil
	}
	if !l.meta.IsNotFound(err) {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrNotInitialized
	}
	if err := l.initialize(cfg); err != nil {
		return nil, errors.WithMessage(err, "genesis")
	}
	return l, nil
}

func (l *Ledger) initialize(cfg *genesis.Config) error {
	builder, err := genesis.NewBuilder(cfg)
	if err != nil {
		return err
	}
	bulk := l.store.Bulk()
	events, err := builder.Build(l.store, bulk)
	if err != nil {
		return err
	}
	clock := Clock{Number: 0, Time: cfg.LaunchTime}
	if err := l.putClock(bulk, clock); err != nil {
		return err
	}
	if err := bulk.Write(); err != nil {
		return err
	}
	l.clock = clock
	l.indexEvents(clock, events)
	logger.Info("ledger initialized", "owner", cfg.Owner, "launch", cfg.LaunchTime, "events", len(events))
	return nil
}

func (l *Ledger) putClock(putter kv.Putter, clock Clock) error {
	data, err := rlp.EncodeToBytes(&clock)
	if err != nil {
		return err
	}
	return metaBucket.NewPutter(putter).Put(clockKey, data)
}

// Clock returns the current block.
func (l *Ledger) Clock() Clock {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.clock
}

// AdvanceTo moves the clock to a later block. Block time may stay the same
// but never decreases.
func (l *Ledger) AdvanceTo(number uint32, time uint64) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if number <= l.clock.Number || time < l.clock.Time {
		return errors.WithMessagef(ErrClockBackwards, "at #%d@%d, got #%d@%d", l.clock.Number, l.clock.Time, number, time)
	}
	clock := Clock{Number: number, Time: time}
	if err := l.putClock(l.store, clock); err != nil {
		return err
	}
	l.clock = clock
	return nil
}

// Tick moves to the next block, seconds later.
func (l *Ledger) Tick(seconds uint64) error {
	c := l.Clock()
	return l.AdvanceTo(c.Number+1, c.Time+seconds)
}

// execute runs fn in the current block and commits its writes on success.
func (l *Ledger) execute(ctx context.Context, name string, fn func(env *xenv.Environment) error) (err error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "error"
		}
		metricOpCount().AddWithLabel(1, map[string]string{"op": name, "result": result})
		metricOpDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"op": name})
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	clock := l.clock
	st := state.New(l.store, l.cache)
	env := xenv.New(st, &xenv.BlockContext{Number: clock.Number, Time: clock.Time})
	if err := env.Atomic(func() error { return fn(env) }); err != nil {
		logger.Debug("operation reverted", "op", name, "err", err)
		return err
	}

	stage := st.Stage()
	bulk := l.store.Bulk()
	if err := stage.Commit(bulk); err != nil {
		l.purgeCache()
		return err
	}
	if err := bulk.Write(); err != nil {
		l.purgeCache()
		return errors.Wrap(err, "write ledger")
	}
	logger.Trace("operation committed", "op", name, "slots", stage.Len(), "events", len(env.Events()))

	l.indexEvents(clock, env.Events())
	l.updateGauges(env)
	l.reportCacheStats()
	return nil
}

// view runs fn against committed state. Writes are discarded.
func (l *Ledger) view(fn func(env *xenv.Environment) error) error {
	l.lock.RLock()
	defer l.lock.RUnlock()

	st := state.New(l.store, l.cache)
	return fn(xenv.New(st, &xenv.BlockContext{Number: l.clock.Number, Time: l.clock.Time}))
}

func (l *Ledger) purgeCache() {
	if l.cache != nil {
		l.cache.Purge()
	}
}

func (l *Ledger) indexEvents(clock Clock, events []*xenv.Event) {
	if l.logDB == nil || len(events) == 0 {
		return
	}
	if err := l.logDB.Insert(context.Background(), clock.Number, clock.Time, events); err != nil {
		logger.Warn("failed to index events", "number", clock.Number, "err", err)
	}
}
