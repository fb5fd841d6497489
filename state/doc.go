// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage of the ledger.
// It follows the flow as below:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv bulk ]
//	         |
//	   [ lru cache ]
//	         |
//	  [ read-only kv ]
//
// Every builtin contract keeps its data in 32-byte slots under its own
// address. Values are rlp encoded; an empty value deletes the slot.
package state
