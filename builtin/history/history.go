// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package history keeps append-only checkpoint logs answering "what was the
// value of key at sequence N".
package history

import (
	"math/big"
	"sort"

	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/builtin/solidity"
	"github.com/lidprotocol/lid/lid"
)

// Checkpoint is the value a key held from Seq onwards.
type Checkpoint struct {
	Seq   uint64
	Value *big.Int
}

// Name keys a global series.
type Name string

func (n Name) Bytes() []byte {
	return []byte(n)
}

// History stores one checkpoint list per key under a base slot.
type History struct {
	sctx *solidity.Context
	base lid.Bytes32
}

func New(sctx *solidity.Context, base lid.Bytes32) *History {
	return &History{sctx: sctx, base: base}
}

func (h *History) list(key solidity.Key) *solidity.List[*Checkpoint] {
	return solidity.NewList[*Checkpoint](h.sctx, lid.Blake2b(key.Bytes(), h.base.Bytes()))
}

// Record appends a checkpoint for key. A second record at the same sequence
// overwrites the first, so mutations within one block coalesce.
func (h *History) Record(key solidity.Key, value *big.Int, seq uint64) error {
	list := h.list(key)
	n, err := list.Len()
	if err != nil {
		return err
	}
	cp := &Checkpoint{Seq: seq, Value: new(big.Int).Set(value)}
	if n > 0 {
		last, err := list.Get(n - 1)
		if err != nil {
			return err
		}
		if seq < last.Seq {
			return errors.Errorf("checkpoint sequence went backwards: %d < %d", seq, last.Seq)
		}
		if seq == last.Seq {
			return list.Set(n-1, cp)
		}
	}
	return list.Push(cp)
}

// ValueAt returns the value of the latest checkpoint with Seq <= seq, or zero.
func (h *History) ValueAt(key solidity.Key, seq uint64) (*big.Int, error) {
	list := h.list(key)
	n, err := list.Len()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return new(big.Int), nil
	}

	var searchErr error
	// first checkpoint strictly after seq
	idx := sort.Search(int(n), func(i int) bool {
		if searchErr != nil {
			return true
		}
		cp, err := list.Get(uint64(i))
		if err != nil {
			searchErr = err
			return true
		}
		return cp.Seq > seq
	})
	if searchErr != nil {
		return nil, searchErr
	}
	if idx == 0 {
		return new(big.Int), nil
	}
	cp, err := list.Get(uint64(idx - 1))
	if err != nil {
		return nil, err
	}
	return cp.Value, nil
}

// Latest returns the most recent checkpoint of key, or nil if none.
func (h *History) Latest(key solidity.Key) (*Checkpoint, error) {
	list := h.list(key)
	n, err := list.Len()
	if err != nil || n == 0 {
		return nil, err
	}
	return list.Get(n - 1)
}

func (h *History) Len(key solidity.Key) (uint64, error) {
	return h.list(key).Len()
}

func (h *History) Checkpoints(key solidity.Key) ([]*Checkpoint, error) {
	var cps []*Checkpoint
	err := h.list(key).Each(func(_ uint64, cp *Checkpoint) (bool, error) {
		cps = append(cps, cp)
		return true, nil
	})
	return cps, err
}
