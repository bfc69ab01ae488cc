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

// RentStructure holds the byte-cost constants the storage-deposit
// calculator uses to price an output's footprint on the ledger (spec.md
// §4.1, §6.2).
type RentStructure struct {
	// VByteCost is the base-token price of one "virtual byte".
	VByteCost uint32
	// VByteFactorKey weights fields that index an output uniquely
	// (identifiers, output-id references).
	VByteFactorKey uint8
	// VByteFactorData weights every other field.
	VByteFactorData uint8
}

// Cost applies the spec.md §4.1 formula:
// v_byte_cost × (v_byte_factor_key × key_size + v_byte_factor_data × data_size).
func (r RentStructure) Cost(keyBytes, dataBytes uint64) uint64 {
	weighted := uint64(r.VByteFactorKey)*keyBytes + uint64(r.VByteFactorData)*dataBytes
	return uint64(r.VByteCost) * weighted
}

// DefaultRentStructure returns the conventional mainnet rent constants,
// used as the default for network profiles that don't override them.
func DefaultRentStructure() RentStructure {
	return RentStructure{
		VByteCost:       500,
		VByteFactorKey:  10,
		VByteFactorData: 1,
	}
}

// ProtocolParameters is the read-only, freely-shareable set of network
// constants the engine and its collaborators consume (spec.md §6.2). It
// carries no mutable state and may be reused across any number of
// concurrent selections.
type ProtocolParameters struct {
	NetworkName    string
	Bech32HRP      string
	MinPoWScore    float64
	BelowMaxDepth  uint8
	RentStructure  RentStructure
	TokenSupply    uint64
}
