// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lidprotocol/lid/cache"
	"github.com/lidprotocol/lid/kv"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/stackedmap"
)

// StoreBucket is the kv bucket holding committed storage.
const StoreBucket = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr lid.Address
	key  lid.Bytes32
}

func (k storageKey) dbKey() []byte {
	b := make([]byte, 0, lid.AddressLength+32)
	return append(append(b, k.addr[:]...), k.key[:]...)
}

// Cache caches committed storage values across State instances.
type Cache = cache.LRU[storageKey, rlp.RawValue]

// NewCache creates a storage cache holding at most size slots.
func NewCache(size int) (*Cache, error) {
	return cache.NewLRU[storageKey, rlp.RawValue](size)
}

// State manages the storage of all builtin contracts.
type State struct {
	db    kv.Getter
	cache *Cache
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object on top of committed storage.
// c can be nil to disable caching.
func New(db kv.Getter, c *Cache) *State {
	s := &State{
		db:    StoreBucket.NewGetter(db),
		cache: c,
	}
	s.sm = stackedmap.New(s.load)
	return s
}

// load implements stackedmap.MapGetter.
func (s *State) load(key storageKey) (rlp.RawValue, bool, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			metricStorageReads().AddWithLabel(1, map[string]string{"source": "cache"})
			return v, true, nil
		}
	}
	metricStorageReads().AddWithLabel(1, map[string]string{"source": "db"})

	v, err := s.db.Get(key.dbKey())
	if err != nil {
		if !s.db.IsNotFound(err) {
			return nil, false, err
		}
		v = nil
	}
	if s.cache != nil {
		s.cache.Add(key, v)
	}
	return v, true, nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr lid.Address, key lid.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr lid.Address, key lid.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns the storage value as Bytes32.
func (s *State) GetStorage(addr lid.Address, key lid.Bytes32) (lid.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return lid.Bytes32{}, err
	}
	if len(raw) == 0 {
		return lid.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return lid.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// customized storage value, return hash of raw data
		return lid.Blake2b(raw), nil
	}
	return lid.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr lid.Address, key, value lid.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr lid.Address, key lid.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr lid.Address, key lid.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage plays back the journal into a set of changed slots.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		changes[k] = v
		return true
	})
	return &Stage{changes: changes, cache: s.cache}
}
