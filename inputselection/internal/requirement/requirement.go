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

// Package requirement models the outstanding obligations the engine must
// satisfy before it can emit a result (spec.md §3, §4.2), and the
// deterministic priority order in which they are served (spec.md §4.5).
package requirement

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/iotaledger/iota-client-go/iotago"
)

// addressKey returns a stable, HRP-independent identifier for addr, used
// for de-duplication and display without requiring a network HRP at
// requirement-construction time.
func addressKey(addr iotago.Address) string {
	return fmt.Sprintf("%d:%s", addr.Kind(), hex.EncodeToString(addr.Bytes()))
}

// Kind discriminates the Requirement tagged union. Its numeric value is
// also its scheduling priority: lower values are served first.
type Kind int

const (
	KindAlias Kind = iota
	KindFoundry
	KindNft
	KindIssuer
	KindSender
	KindNativeToken
	KindAmount
)

func (k Kind) String() string {
	switch k {
	case KindAlias:
		return "Alias"
	case KindFoundry:
		return "Foundry"
	case KindNft:
		return "Nft"
	case KindIssuer:
		return "Issuer"
	case KindSender:
		return "Sender"
	case KindNativeToken:
		return "NativeToken"
	case KindAmount:
		return "Amount"
	default:
		return "Unknown"
	}
}

// Requirement is one outstanding obligation. Only the field matching Kind
// is meaningful, mirroring the tagged-union style used throughout iotago
// (spec.md §9 "tagged sum type, not inheritance").
type Requirement struct {
	Kind Kind

	AliasID   iotago.AliasID
	NftID     iotago.NFTID
	FoundryID iotago.FoundryID
	Address   iotago.Address
	TokenID   iotago.NativeTokenID
	Quantity  *uint256.Int
	Amount    uint64

	// tieBreak orders otherwise-equal requirements; it is zero unless set
	// through WithTieBreak. Requirements with equal tieBreak values are
	// ordered by their identity key.
	tieBreak iotago.OutputID
}

func (r Requirement) String() string {
	switch r.Kind {
	case KindAlias:
		return fmt.Sprintf("Alias(%s)", r.AliasID)
	case KindFoundry:
		return fmt.Sprintf("Foundry(%s)", r.FoundryID)
	case KindNft:
		return fmt.Sprintf("Nft(%s)", r.NftID)
	case KindIssuer:
		return fmt.Sprintf("Issuer(%s)", addressKey(r.Address))
	case KindSender:
		return fmt.Sprintf("Sender(%s)", addressKey(r.Address))
	case KindNativeToken:
		return fmt.Sprintf("NativeToken(%s, %s)", r.TokenID, r.Quantity)
	case KindAmount:
		return fmt.Sprintf("Amount(%d)", r.Amount)
	default:
		return "Requirement(unknown)"
	}
}

// Alias builds an Alias(id) requirement.
func Alias(id iotago.AliasID) Requirement { return Requirement{Kind: KindAlias, AliasID: id} }

// Foundry builds a Foundry(id) requirement.
func Foundry(id iotago.FoundryID) Requirement { return Requirement{Kind: KindFoundry, FoundryID: id} }

// Nft builds a Nft(id) requirement.
func Nft(id iotago.NFTID) Requirement { return Requirement{Kind: KindNft, NftID: id} }

// Issuer builds an Issuer(addr) requirement.
func Issuer(addr iotago.Address) Requirement { return Requirement{Kind: KindIssuer, Address: addr} }

// Sender builds a Sender(addr) requirement.
func Sender(addr iotago.Address) Requirement { return Requirement{Kind: KindSender, Address: addr} }

// NativeToken builds a NativeToken(id, qty) requirement.
func NativeToken(id iotago.NativeTokenID, qty *uint256.Int) Requirement {
	return Requirement{Kind: KindNativeToken, TokenID: id, Quantity: qty}
}

// Amount builds an Amount(n) requirement.
func Amount(n uint64) Requirement { return Requirement{Kind: KindAmount, Amount: n} }

// WithTieBreak returns a copy of r carrying the given output-id for
// deterministic ordering against other requirements of the same kind
// (spec.md §4.5: "ties within a priority bucket are broken by output-id
// lexicographic order").
func (r Requirement) WithTieBreak(id iotago.OutputID) Requirement {
	r.tieBreak = id
	return r
}

// identityKey uniquely identifies a requirement for de-duplication
// purposes (two Alias(id) requirements for the same id collapse into
// one; two Sender(addr) requirements for the same address collapse into
// one; Amount and NativeToken requirements are singletons per token-id).
func (r Requirement) identityKey() string {
	switch r.Kind {
	case KindAlias:
		return "alias:" + r.AliasID.String()
	case KindFoundry:
		return "foundry:" + r.FoundryID.String()
	case KindNft:
		return "nft:" + r.NftID.String()
	case KindIssuer:
		return "issuer:" + addressKey(r.Address)
	case KindSender:
		return "sender:" + addressKey(r.Address)
	case KindNativeToken:
		return "token:" + r.TokenID.String()
	case KindAmount:
		return "amount"
	default:
		return ""
	}
}

// Set is the engine's working queue of outstanding requirements (spec.md
// §4.2). It is modeled as an explicit priority structure rather than the
// mutual-recursion call stack the reference implementation uses, per
// spec.md §9's design note, so that scheduling is testable in isolation.
type Set struct {
	byKind map[Kind]map[string]Requirement
	amount *Requirement
	tokens map[iotago.NativeTokenID]*uint256.Int
}

// NewSet returns an empty requirement set.
func NewSet() *Set {
	return &Set{
		byKind: make(map[Kind]map[string]Requirement),
		tokens: make(map[iotago.NativeTokenID]*uint256.Int),
	}
}

// Add inserts req, merging with any existing requirement of the same
// identity. Amount requirements accumulate by addition; NativeToken
// requirements accumulate by summing the requested quantity.
func (s *Set) Add(req Requirement) {
	switch req.Kind {
	case KindAmount:
		if s.amount == nil {
			amt := req
			s.amount = &amt
		} else {
			s.amount.Amount += req.Amount
		}
		return
	case KindNativeToken:
		if existing, ok := s.tokens[req.TokenID]; ok {
			s.tokens[req.TokenID] = new(uint256.Int).Add(existing, req.Quantity)
		} else {
			s.tokens[req.TokenID] = new(uint256.Int).Set(req.Quantity)
		}
		return
	}
	bucket, ok := s.byKind[req.Kind]
	if !ok {
		bucket = make(map[string]Requirement)
		s.byKind[req.Kind] = bucket
	}
	key := req.identityKey()
	if _, exists := bucket[key]; !exists {
		bucket[key] = req
	}
}

// SetAmount replaces the outstanding Amount requirement with exactly n,
// rather than accumulating — used to recompute the shortfall from scratch
// each loop iteration (see engine.refreshAmountRequirements).
func (s *Set) SetAmount(n uint64) {
	s.amount = &Requirement{Kind: KindAmount, Amount: n}
}

// SetNativeToken replaces the outstanding requirement for id with exactly
// qty, rather than accumulating.
func (s *Set) SetNativeToken(id iotago.NativeTokenID, qty *uint256.Int) {
	if qty.Sign() <= 0 {
		delete(s.tokens, id)
		return
	}
	s.tokens[id] = qty
}

// HasAlias reports whether an Alias(id) requirement is already queued, used by
// the Foundry handler to confirm its controlling alias was also demanded
// (spec.md §4.4).
func (s *Set) HasAlias(id iotago.AliasID) bool {
	_, ok := s.byKind[KindAlias][Alias(id).identityKey()]
	return ok
}

// Empty reports whether no requirements remain.
func (s *Set) Empty() bool {
	if s.amount != nil && s.amount.Amount > 0 {
		return false
	}
	for _, bucket := range s.byKind {
		if len(bucket) > 0 {
			return false
		}
	}
	for _, qty := range s.tokens {
		if qty.Sign() > 0 {
			return false
		}
	}
	return true
}

// Next pops and returns the highest-priority outstanding requirement
// (lowest Kind value first; ties broken by tieBreak's output-id,
// lexicographically, spec.md §4.5, then by identity key). Its second
// return is false when the set is empty.
func (s *Set) Next() (Requirement, bool) {
	for kind := KindAlias; kind <= KindNft; kind++ {
		if req, ok := s.popFromBucket(kind); ok {
			return req, true
		}
	}
	if req, ok := s.popFromBucket(KindIssuer); ok {
		return req, true
	}
	if req, ok := s.popFromBucket(KindSender); ok {
		return req, true
	}
	if req, ok := s.popNativeToken(); ok {
		return req, true
	}
	if s.amount != nil && s.amount.Amount > 0 {
		req := *s.amount
		s.amount.Amount = 0
		return req, true
	}
	return Requirement{}, false
}

func (s *Set) popFromBucket(kind Kind) (Requirement, bool) {
	bucket := s.byKind[kind]
	if len(bucket) == 0 {
		return Requirement{}, false
	}
	var best Requirement
	var bestKey string
	first := true
	for key, req := range bucket {
		if first || req.tieBreak.Less(best.tieBreak) ||
			(req.tieBreak == best.tieBreak && key < bestKey) {
			best, bestKey = req, key
			first = false
		}
	}
	delete(bucket, bestKey)
	return best, true
}

func (s *Set) popNativeToken() (Requirement, bool) {
	var bestID iotago.NativeTokenID
	found := false
	for id, qty := range s.tokens {
		if qty.Sign() == 0 {
			continue
		}
		if !found || string(id[:]) < string(bestID[:]) {
			bestID, found = id, true
		}
	}
	if !found {
		return Requirement{}, false
	}
	qty := s.tokens[bestID]
	delete(s.tokens, bestID)
	return NativeToken(bestID, qty), true
}
