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
	"fmt"

	"github.com/btcsuite/btcutil/bech32"
)

// AddressKind identifies the concrete type encoded in an Address's first
// byte (spec.md §6.3).
type AddressKind byte

const (
	AddressKindEd25519 AddressKind = 0
	AddressKindAlias   AddressKind = 8
	AddressKindNFT     AddressKind = 16
)

// Address is implemented by every address variant an output's unlock
// conditions can name.
type Address interface {
	Kind() AddressKind
	// Bytes returns the raw identifying payload, excluding the kind byte.
	Bytes() []byte
	// Equal reports whether two addresses name the same identity.
	Equal(Address) bool
	// Bech32 encodes the address (kind byte || payload) using the given HRP.
	Bech32(hrp string) string
}

// Ed25519Address is a plain public-key-hash address.
type Ed25519Address [32]byte

func (a Ed25519Address) Kind() AddressKind { return AddressKindEd25519 }
func (a Ed25519Address) Bytes() []byte     { return a[:] }
func (a Ed25519Address) Equal(other Address) bool {
	o, ok := other.(Ed25519Address)
	return ok && o == a
}
func (a Ed25519Address) Bech32(hrp string) string { return encodeBech32(hrp, a) }

// AliasAddress names the identity of an alias output: controlling it
// requires the alias output itself to be present in the transaction's
// inputs (and outputs, for a transition).
type AliasAddress struct{ ID AliasID }

func (a AliasAddress) Kind() AddressKind { return AddressKindAlias }
func (a AliasAddress) Bytes() []byte     { return a.ID[:] }
func (a AliasAddress) Equal(other Address) bool {
	o, ok := other.(AliasAddress)
	return ok && o.ID == a.ID
}
func (a AliasAddress) Bech32(hrp string) string { return encodeBech32(hrp, a) }

// NFTAddress names the identity of an NFT output, analogous to AliasAddress.
type NFTAddress struct{ ID NFTID }

func (a NFTAddress) Kind() AddressKind { return AddressKindNFT }
func (a NFTAddress) Bytes() []byte     { return a.ID[:] }
func (a NFTAddress) Equal(other Address) bool {
	o, ok := other.(NFTAddress)
	return ok && o.ID == a.ID
}
func (a NFTAddress) Bech32(hrp string) string { return encodeBech32(hrp, a) }

func encodeBech32(hrp string, addr Address) string {
	payload := append([]byte{byte(addr.Kind())}, addr.Bytes()...)
	converted, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		// ConvertBits only fails on malformed input, which can't happen
		// here since payload is always byte-aligned.
		panic(fmt.Errorf("bech32: convert bits: %w", err))
	}
	encoded, err := bech32.Encode(hrp, converted)
	if err != nil {
		panic(fmt.Errorf("bech32: encode: %w", err))
	}
	return encoded
}

// ParseBech32Address decodes a bech32 address string into its typed
// Address, verifying the HRP matches the expected network.
func ParseBech32Address(expectedHRP, s string) (Address, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid bech32 address %q: %w", s, err)
	}
	if hrp != expectedHRP {
		return nil, fmt.Errorf(
			"address %q has HRP %q, expected %q",
			s,
			hrp,
			expectedHRP,
		)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("invalid bech32 address %q: %w", s, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty bech32 address payload in %q", s)
	}
	kind := AddressKind(payload[0])
	rest := payload[1:]
	switch kind {
	case AddressKindEd25519:
		if len(rest) != 32 {
			return nil, fmt.Errorf("invalid ed25519 address length in %q", s)
		}
		var a Ed25519Address
		copy(a[:], rest)
		return a, nil
	case AddressKindAlias:
		if len(rest) != 32 {
			return nil, fmt.Errorf("invalid alias address length in %q", s)
		}
		var id AliasID
		copy(id[:], rest)
		return AliasAddress{ID: id}, nil
	case AddressKindNFT:
		if len(rest) != 20 {
			return nil, fmt.Errorf("invalid nft address length in %q", s)
		}
		var id NFTID
		copy(id[:], rest)
		return NFTAddress{ID: id}, nil
	default:
		return nil, fmt.Errorf("unknown address kind %d in %q", kind, s)
	}
}
