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

// Package iotago contains the ledger primitives shared by every component
// of the input-selection engine: outputs, identities, native tokens, unlock
// conditions, features, addresses and protocol parameters.
package iotago

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// AliasID uniquely identifies an alias output across its lifetime. A fresh
// alias (one that has never been spent) carries the zero AliasID; on first
// spending its id becomes the hash of the output id that created it.
type AliasID [32]byte

// NFTID uniquely identifies an NFT output across its lifetime, with the same
// creation/transition rules as AliasID.
type NFTID [20]byte

// FoundryID uniquely identifies a foundry output. It is derived from the
// controlling alias address, the foundry's serial number and its token
// scheme, and never changes — foundries are not chain-continuity
// identities in the same sense as aliases/NFTs, but they are still
// conserved across a transaction the same way.
type FoundryID [37]byte

// NativeTokenID identifies a user-minted native token. Tokens are minted by
// exactly one foundry, so a NativeTokenID shares its byte layout with the
// FoundryID of the foundry that controls it.
type NativeTokenID = FoundryID

// IsZero reports whether the alias is in "creation" state (never spent).
func (id AliasID) IsZero() bool {
	return id == AliasID{}
}

// IsZero reports whether the NFT is in "creation" state (never spent).
func (id NFTID) IsZero() bool {
	return id == NFTID{}
}

// String returns the hex-encoded identifier.
func (id AliasID) String() string { return hex.EncodeToString(id[:]) }

// String returns the hex-encoded identifier.
func (id NFTID) String() string { return hex.EncodeToString(id[:]) }

// String returns the hex-encoded identifier.
func (id FoundryID) String() string { return hex.EncodeToString(id[:]) }

// AliasIDFromOutputID derives the AliasID a freshly-minted alias output
// adopts on its first spend: the blake2b-256 hash of the output id that
// created it.
func AliasIDFromOutputID(outputID OutputID) AliasID {
	return AliasID(blake2b.Sum256(outputID[:]))
}

// NFTIDFromOutputID derives the NFTID a freshly-minted NFT output adopts on
// its first spend: the low 20 bytes of the blake2b-256 hash of the output
// id that created it.
func NFTIDFromOutputID(outputID OutputID) NFTID {
	full := blake2b.Sum256(outputID[:])
	var id NFTID
	copy(id[:], full[len(full)-len(id):])
	return id
}

// OrFromOutputID returns id if it is non-zero, or the id derived from
// outputID otherwise. This mirrors the "resolved from output-id if zero"
// rule used throughout the input-selection engine when comparing a
// candidate's resident identity against a requirement.
func (id AliasID) OrFromOutputID(outputID OutputID) AliasID {
	if !id.IsZero() {
		return id
	}
	return AliasIDFromOutputID(outputID)
}

// OrFromOutputID returns id if it is non-zero, or the id derived from
// outputID otherwise.
func (id NFTID) OrFromOutputID(outputID OutputID) NFTID {
	if !id.IsZero() {
		return id
	}
	return NFTIDFromOutputID(outputID)
}
