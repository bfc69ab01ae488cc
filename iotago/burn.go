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

// Burn is a declarative instruction that named aliases/NFTs/foundries or
// native-token quantities must be consumed without a corresponding output
// (spec.md §4.3). It is built with chainable Add* calls, mirroring the
// teacher's fluent option-builder style (e.g. config.Builder-like chains
// seen throughout the corpus's transaction builders).
type Burn struct {
	Aliases      map[AliasID]struct{}
	NFTs         map[NFTID]struct{}
	Foundries    map[FoundryID]struct{}
	NativeTokens map[NativeTokenID]*uint256.Int
}

// NewBurn returns an empty Burn directive.
func NewBurn() *Burn {
	return &Burn{
		Aliases:      make(map[AliasID]struct{}),
		NFTs:         make(map[NFTID]struct{}),
		Foundries:    make(map[FoundryID]struct{}),
		NativeTokens: make(map[NativeTokenID]*uint256.Int),
	}
}

// AddAlias marks an alias for burning.
func (b *Burn) AddAlias(id AliasID) *Burn {
	b.Aliases[id] = struct{}{}
	return b
}

// AddNFT marks an NFT for burning.
func (b *Burn) AddNFT(id NFTID) *Burn {
	b.NFTs[id] = struct{}{}
	return b
}

// AddFoundry marks a foundry for burning.
func (b *Burn) AddFoundry(id FoundryID) *Burn {
	b.Foundries[id] = struct{}{}
	return b
}

// AddNativeToken marks qty of token id for burning, accumulating if called
// more than once for the same id.
func (b *Burn) AddNativeToken(id NativeTokenID, qty *uint256.Int) *Burn {
	if existing, ok := b.NativeTokens[id]; ok {
		existing.Add(existing, qty)
	} else {
		b.NativeTokens[id] = new(uint256.Int).Set(qty)
	}
	return b
}

// HasAlias reports whether id is marked for burning.
func (b *Burn) HasAlias(id AliasID) bool {
	if b == nil {
		return false
	}
	_, ok := b.Aliases[id]
	return ok
}

// HasNFT reports whether id is marked for burning.
func (b *Burn) HasNFT(id NFTID) bool {
	if b == nil {
		return false
	}
	_, ok := b.NFTs[id]
	return ok
}

// HasFoundry reports whether id is marked for burning, either directly or
// because its controlling alias is being burned (a burned alias implicitly
// authorizes burning every foundry it controls, spec.md §4.3).
func (b *Burn) HasFoundry(id FoundryID, controllingAlias AliasID) bool {
	if b == nil {
		return false
	}
	if _, ok := b.Foundries[id]; ok {
		return true
	}
	return b.HasAlias(controllingAlias)
}

// NativeTokenAmount returns the quantity of id marked for burning, or zero.
func (b *Burn) NativeTokenAmount(id NativeTokenID) *uint256.Int {
	if b == nil {
		return uint256.NewInt(0)
	}
	if amt, ok := b.NativeTokens[id]; ok {
		return amt
	}
	return uint256.NewInt(0)
}
