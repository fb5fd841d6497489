// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/lid"
)

// List is a dynamic array: the length lives at pos and the elements
// live in a mapping keyed by index.
type List[V any] struct {
	length *Uint256
	items  *Mapping[Uint64Key, V]
}

func NewList[V any](context *Context, pos lid.Bytes32) *List[V] {
	return &List[V]{
		length: NewUint256(context, pos),
		items:  NewMapping[Uint64Key, V](context, pos),
	}
}

func (l *List[V]) Len() (uint64, error) {
	n, err := l.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (l *List[V]) Get(index uint64) (value V, err error) {
	n, err := l.Len()
	if err != nil {
		return value, err
	}
	if index >= n {
		return value, errors.Errorf("list index %d out of range [0, %d)", index, n)
	}
	return l.items.Get(Uint64Key(index))
}

func (l *List[V]) Set(index uint64, value V) error {
	n, err := l.Len()
	if err != nil {
		return err
	}
	if index >= n {
		return errors.Errorf("list index %d out of range [0, %d)", index, n)
	}
	return l.items.Set(Uint64Key(index), value)
}

func (l *List[V]) Push(value V) error {
	n, err := l.Len()
	if err != nil {
		return err
	}
	if err := l.items.Set(Uint64Key(n), value); err != nil {
		return err
	}
	return l.length.Set(new(big.Int).SetUint64(n + 1))
}

// RemoveSwap removes the element at index by moving the last element into its place.
func (l *List[V]) RemoveSwap(index uint64) error {
	n, err := l.Len()
	if err != nil {
		return err
	}
	if index >= n {
		return errors.Errorf("list index %d out of range [0, %d)", index, n)
	}
	last := n - 1
	if index != last {
		v, err := l.items.Get(Uint64Key(last))
		if err != nil {
			return err
		}
		if err := l.items.Set(Uint64Key(index), v); err != nil {
			return err
		}
	}
	l.items.Clear(Uint64Key(last))
	return l.length.Set(new(big.Int).SetUint64(last))
}

// Each visits elements in order until fn returns false or an error.
func (l *List[V]) Each(fn func(index uint64, value V) (bool, error)) error {
	n, err := l.Len()
	if err != nil {
		return err
	}
	for i := range n {
		v, err := l.items.Get(Uint64Key(i))
		if err != nil {
			return err
		}
		ok, err := fn(i, v)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return nil
}
