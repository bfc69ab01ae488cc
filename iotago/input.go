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

import (
	"bytes"
	"encoding/hex"
)

// OutputID identifies an output by the transaction that created it plus its
// index within that transaction's outputs.
type OutputID [34]byte

// NewOutputID builds an OutputID from a transaction id and output index.
func NewOutputID(txID [32]byte, index uint16) OutputID {
	var id OutputID
	copy(id[:32], txID[:])
	id[32] = byte(index)
	id[33] = byte(index >> 8)
	return id
}

// String returns the hex-encoded output id.
func (id OutputID) String() string { return hex.EncodeToString(id[:]) }

// Less orders output ids lexicographically by their byte representation.
// The engine uses this for its deterministic tie-breaks (spec.md §4.5,
// §5): candidate scanning order, amount-candidate ranking and requirement
// tie-breaks. The sort pass does not use it.
func (id OutputID) Less(other OutputID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// InputSigningData pairs a candidate output with the identifying and
// unlocking information needed to both select it and eventually sign for
// it. The engine treats the candidate pool as a set of these, unordered,
// until selection completes (spec.md §3 "Input signing data").
type InputSigningData struct {
	Output       Output
	OutputID     OutputID
	Bech32Address string
	// Chain is an optional BIP-32-style derivation chain identifying which
	// private key unlocks Bech32Address. It is never read by the engine
	// itself — only by a downstream signer.
	Chain []uint32
}
