// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/lidprotocol/lid/lid"
)

type Key interface {
	Bytes() []byte
}

// Uint64Key keys a mapping by an integer.
type Uint64Key uint64

func (k Uint64Key) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(k))
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values are rlp encoded at Blake2b(key, basePos).
type Mapping[K Key, V any] struct {
	context *Context
	basePos lid.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos lid.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) lid.Bytes32 {
	return lid.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value stored for key, or the zero value if none.
// A nil pointer V is replaced by a pointer to a zero value.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Clear deletes the value stored for key.
func (m *Mapping[K, V]) Clear(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}
