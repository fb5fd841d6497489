// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the rejections a builtin contract can return.
// A rejected operation leaves the state unchanged.
package reverts

import (
	"errors"
)

// Kind classifies a rejection.
type Kind uint8

const (
	// Precondition covers insufficient balances, amounts below minimum,
	// inactive periods and invalid arguments.
	Precondition Kind = iota + 1
	// Authorization covers callers lacking the required role.
	Authorization
	// Overflow covers amounts too large for safe arithmetic.
	Overflow
)

func (k Kind) String() string {
	switch k {
	case Precondition:
		return "precondition"
	case Authorization:
		return "authorization"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{kind: kind, message: message}
}

func NewPrecondition(message string) *ErrRevert {
	return New(Precondition, message)
}

func NewAuthorization(message string) *ErrRevert {
	return New(Authorization, message)
}

func NewOverflow(message string) *ErrRevert {
	return New(Overflow, message)
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func IsRevertErr(err any) bool {
	e, ok := err.(error)
	if !ok || e == nil {
		return false
	}
	var re *ErrRevert
	return errors.As(e, &re) && re != nil
}

// KindOf returns the kind of a rejection, or 0 if err is not one.
func KindOf(err error) Kind {
	var re *ErrRevert
	if errors.As(err, &re) && re != nil {
		return re.kind
	}
	return 0
}
