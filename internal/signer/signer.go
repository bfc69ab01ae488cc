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

// Package signer turns the selected inputs' signing data into ed25519
// signatures. The teacher's fluidtokens/tx.go decodes a hex-wrapped
// extended signing key out of a bursa wallet and hands it to a Cardano
// SignWithSkey call; this package follows the same "decode key material,
// sign the prepared message" shape with a plain ed25519 key derived from a
// BIP-32-style chain instead of a Cardano extended key.
package signer

import (
	"crypto/ed25519"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/iota-client-go/iotago"
)

// Signer produces a signature over an essence hash for a given candidate's
// derivation chain.
type Signer interface {
	Sign(chain []uint32, essence []byte) (publicKey ed25519.PublicKey, signature []byte, err error)
}

// InMemorySigner derives ed25519 keys from a single seed using the same
// derivation chain carried on iotago.InputSigningData, keeping every key in
// process memory. It is meant for examples and tests, not production
// custody.
type InMemorySigner struct {
	seed []byte
}

func NewInMemorySigner(seed []byte) *InMemorySigner {
	return &InMemorySigner{seed: seed}
}

// Sign derives a child key from chain by repeatedly hashing the seed with
// each path component, then signs essence with it.
func (s *InMemorySigner) Sign(chain []uint32, essence []byte) (ed25519.PublicKey, []byte, error) {
	priv, err := s.derive(chain)
	if err != nil {
		return nil, nil, err
	}
	sig := ed25519.Sign(priv, essence)
	pub := priv.Public().(ed25519.PublicKey)
	return pub, sig, nil
}

func (s *InMemorySigner) derive(chain []uint32) (ed25519.PrivateKey, error) {
	material := append([]byte(nil), s.seed...)
	for _, step := range chain {
		h, err := blake2b.New256(nil)
		if err != nil {
			return nil, fmt.Errorf("signer: initializing derivation hash: %w", err)
		}
		h.Write(material)
		h.Write([]byte{byte(step), byte(step >> 8), byte(step >> 16), byte(step >> 24)})
		material = h.Sum(nil)
	}
	if len(material) != ed25519.SeedSize {
		return nil, fmt.Errorf("signer: derived material is %d bytes, expected %d", len(material), ed25519.SeedSize)
	}
	return ed25519.NewKeyFromSeed(material), nil
}

// SignInputs signs every candidate in selected with signer, returning one
// signature per input in the same order. Inputs sharing a derivation chain
// (and therefore an address) receive identical signatures, the same
// "one signature unlocks every input at that address" rule real unlock
// blocks rely on.
func SignInputs(signer Signer, essence []byte, selected []iotago.InputSigningData) ([][]byte, error) {
	sigs := make([][]byte, len(selected))
	cache := make(map[string][]byte)
	for i, isd := range selected {
		key := fmt.Sprint(isd.Chain)
		if cached, ok := cache[key]; ok {
			sigs[i] = cached
			continue
		}
		_, sig, err := signer.Sign(isd.Chain, essence)
		if err != nil {
			return nil, fmt.Errorf("signer: signing input %s: %w", isd.OutputID, err)
		}
		cache[key] = sig
		sigs[i] = sig
	}
	return sigs, nil
}
