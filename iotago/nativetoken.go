// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package iotago

import "github.com/holiman/uint256"

// NativeToken is one token-id/quantity pair carried by an output.
type NativeToken struct {
	ID     NativeTokenID
	Amount *uint256.Int
}

// NativeTokenBag is an output's full set of native tokens, keyed by
// token-id. A nil/empty bag is the common case (spec.md §3).
type NativeTokenBag map[NativeTokenID]*uint256.Int

// Clone returns a deep copy so callers can synthesize remainder/transition
// outputs without aliasing the source output's bag.
func (b NativeTokenBag) Clone() NativeTokenBag {
	if b == nil {
		return nil
	}
	out := make(NativeTokenBag, len(b))
	for id, amt := range b {
		out[id] = new(uint256.Int).Set(amt)
	}
	return out
}

// Add merges qty into the bag under id, creating the entry if absent.
func (b NativeTokenBag) Add(id NativeTokenID, qty *uint256.Int) NativeTokenBag {
	if b == nil {
		b = make(NativeTokenBag)
	}
	if existing, ok := b[id]; ok {
		existing.Add(existing, qty)
	} else {
		b[id] = new(uint256.Int).Set(qty)
	}
	return b
}

// Get returns the quantity held for id, or zero if absent.
func (b NativeTokenBag) Get(id NativeTokenID) *uint256.Int {
	if amt, ok := b[id]; ok {
		return amt
	}
	return uint256.NewInt(0)
}

// IDs returns the bag's token-ids in lexicographic order, for deterministic
// iteration.
func (b NativeTokenBag) IDs() []NativeTokenID {
	ids := make([]NativeTokenID, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && string(ids[j][:]) < string(ids[j-1][:]); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}
