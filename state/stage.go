// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/kv"
	"github.com/lidprotocol/lid/lid"
)

// Stage abstracts changes of storage slots pending commit.
type Stage struct {
	changes map[storageKey]rlp.RawValue
	cache   *Cache
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

func (s *Stage) sortedKeys() []storageKey {
	keys := make([]storageKey, 0, len(s.changes))
	for k := range s.changes {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b storageKey) int {
		return bytes.Compare(a.dbKey(), b.dbKey())
	})
	return keys
}

// Hash computes a digest of the change set.
func (s *Stage) Hash() lid.Bytes32 {
	return lid.Blake2bFn(func(w io.Writer) {
		for _, k := range s.sortedKeys() {
			w.Write(k.dbKey())
			w.Write(s.changes[k])
		}
	})
}

// Commit writes all changes into the bulk and refreshes the shared cache.
// The caller writes the bulk, and must purge the cache if that fails.
func (s *Stage) Commit(bulk kv.Putter) error {
	putter := StoreBucket.NewPutter(bulk)
	for _, k := range s.sortedKeys() {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = putter.Delete(k.dbKey())
		} else {
			err = putter.Put(k.dbKey(), v)
		}
		if err != nil {
			return errors.Wrap(err, "commit storage")
		}
	}
	if s.cache != nil {
		for k, v := range s.changes {
			s.cache.Add(k, v)
		}
	}
	metricCommittedSlots().Add(int64(len(s.changes)))
	return nil
}
