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

// OutputKind discriminates the Output tagged union (spec.md §3, §9 "tagged
// sum type, not inheritance").
type OutputKind byte

const (
	OutputBasic OutputKind = iota
	OutputAlias
	OutputNFT
	OutputFoundry
	OutputTreasury
)

func (k OutputKind) String() string {
	switch k {
	case OutputBasic:
		return "Basic"
	case OutputAlias:
		return "Alias"
	case OutputNFT:
		return "NFT"
	case OutputFoundry:
		return "Foundry"
	case OutputTreasury:
		return "Treasury"
	default:
		return "Unknown"
	}
}

// Output is implemented by every output variant. Common projections
// (amount, native tokens) are plain methods over the tag rather than a
// shared base class, per spec.md §9.
type Output interface {
	Kind() OutputKind
	Amount() uint64
	NativeTokens() NativeTokenBag
	UnlockConditions() UnlockConditions
	// Clone returns a deep copy, used whenever the engine synthesizes a
	// transition or remainder output from a selected candidate.
	Clone() Output
}

// BasicOutput carries base tokens and optionally native tokens behind an
// address unlock, with optional sender/metadata/tag features.
type BasicOutput struct {
	OutputAmount      uint64
	Tokens            NativeTokenBag
	Conditions        UnlockConditions
	OutputFeatures    Features
}

func (o *BasicOutput) Kind() OutputKind                 { return OutputBasic }
func (o *BasicOutput) Amount() uint64                   { return o.OutputAmount }
func (o *BasicOutput) NativeTokens() NativeTokenBag      { return o.Tokens }
func (o *BasicOutput) UnlockConditions() UnlockConditions { return o.Conditions }
func (o *BasicOutput) Clone() Output {
	clone := *o
	clone.Tokens = o.Tokens.Clone()
	return &clone
}

// AliasOutput is an identity-bearing output representing an on-ledger
// smart-contract-chain-like account. Creation state has a zero AliasID;
// transition state carries the id derived from its originating output.
type AliasOutput struct {
	OutputAmount          uint64
	Tokens                NativeTokenBag
	AliasID               AliasID
	StateIndex            uint32
	StateMetadata         []byte
	FoundryCounter        uint32
	StateController       Address
	Governor              Address
	OutputFeatures        Features
}

func (o *AliasOutput) Kind() OutputKind            { return OutputAlias }
func (o *AliasOutput) Amount() uint64              { return o.OutputAmount }
func (o *AliasOutput) NativeTokens() NativeTokenBag { return o.Tokens }
func (o *AliasOutput) UnlockConditions() UnlockConditions {
	return UnlockConditions{
		StateControllerAddress: &StateControllerAddressUnlockCondition{Address: o.StateController},
		GovernorAddress:        &GovernorAddressUnlockCondition{Address: o.Governor},
	}
}
func (o *AliasOutput) Clone() Output {
	clone := *o
	clone.Tokens = o.Tokens.Clone()
	clone.StateMetadata = append([]byte(nil), o.StateMetadata...)
	return &clone
}

// IsCreation reports whether this alias output is being minted for the
// first time (zero AliasID).
func (o *AliasOutput) IsCreation() bool { return o.AliasID.IsZero() }

// ResolvedID returns AliasID if non-zero, or the id derived from
// outputID — the "or_from_output_id" rule used throughout the engine.
func (o *AliasOutput) ResolvedID(outputID OutputID) AliasID {
	return o.AliasID.OrFromOutputID(outputID)
}

// NFTOutput is an identity-bearing output with a single address unlock,
// optional sender/issuer/immutable-metadata.
type NFTOutput struct {
	OutputAmount       uint64
	Tokens             NativeTokenBag
	NFTID              NFTID
	AddressUnlock      Address
	OutputFeatures     Features
	ImmutableMetadata  []byte
}

func (o *NFTOutput) Kind() OutputKind            { return OutputNFT }
func (o *NFTOutput) Amount() uint64              { return o.OutputAmount }
func (o *NFTOutput) NativeTokens() NativeTokenBag { return o.Tokens }
func (o *NFTOutput) UnlockConditions() UnlockConditions {
	return UnlockConditions{Address: &AddressUnlockCondition{Address: o.AddressUnlock}}
}
func (o *NFTOutput) Clone() Output {
	clone := *o
	clone.Tokens = o.Tokens.Clone()
	clone.ImmutableMetadata = append([]byte(nil), o.ImmutableMetadata...)
	return &clone
}

// IsCreation reports whether this NFT output is being minted for the first
// time (zero NFTID).
func (o *NFTOutput) IsCreation() bool { return o.NFTID.IsZero() }

// ResolvedID returns NFTID if non-zero, or the id derived from outputID.
func (o *NFTOutput) ResolvedID(outputID OutputID) NFTID {
	return o.NFTID.OrFromOutputID(outputID)
}

// TokenScheme describes how a foundry mints/melts its native token. Only a
// simple scheme is modeled: a minted/melted/maximum supply triple.
type TokenScheme struct {
	MintedTokens  *uint256.Int
	MeltedTokens  *uint256.Int
	MaximumSupply *uint256.Int
}

// FoundryOutput mints and melts exactly one native token, identified by its
// FoundryID, and is permanently controlled by a single alias address.
type FoundryOutput struct {
	OutputAmount       uint64
	Tokens             NativeTokenBag
	SerialNumber       uint32
	Scheme             TokenScheme
	ImmutableAlias     AliasAddress
}

func (o *FoundryOutput) Kind() OutputKind            { return OutputFoundry }
func (o *FoundryOutput) Amount() uint64              { return o.OutputAmount }
func (o *FoundryOutput) NativeTokens() NativeTokenBag { return o.Tokens }
func (o *FoundryOutput) UnlockConditions() UnlockConditions {
	return UnlockConditions{
		ImmutableAliasAddress: &ImmutableAliasAddressUnlockCondition{Address: o.ImmutableAlias},
	}
}
func (o *FoundryOutput) Clone() Output {
	clone := *o
	clone.Tokens = o.Tokens.Clone()
	return &clone
}

// ID computes the foundry's identifier from its controlling alias address,
// serial number and token scheme tag (spec.md §3 "Identity types").
func (o *FoundryOutput) ID() FoundryID {
	var id FoundryID
	copy(id[:32], o.ImmutableAlias.ID[:])
	id[32] = byte(o.SerialNumber)
	id[33] = byte(o.SerialNumber >> 8)
	id[34] = byte(o.SerialNumber >> 16)
	id[35] = byte(o.SerialNumber >> 24)
	id[36] = 0 // simple token scheme tag
	return id
}

// TreasuryOutput is not spendable and is excluded from selection entirely
// (spec.md §3).
type TreasuryOutput struct {
	OutputAmount uint64
}

func (o *TreasuryOutput) Kind() OutputKind            { return OutputTreasury }
func (o *TreasuryOutput) Amount() uint64              { return o.OutputAmount }
func (o *TreasuryOutput) NativeTokens() NativeTokenBag { return nil }
func (o *TreasuryOutput) UnlockConditions() UnlockConditions { return UnlockConditions{} }
func (o *TreasuryOutput) Clone() Output {
	clone := *o
	return &clone
}
