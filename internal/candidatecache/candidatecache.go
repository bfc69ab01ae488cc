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

// Package candidatecache persists the outputs indexerclient has discovered
// for a wallet's addresses, so a selection can be retried without refetching
// from the indexer. It reuses the teacher's address-then-output-id badger
// key layout from internal/storage, repurposed to hold input signing data
// instead of raw Cardano UTxO CBOR.
package candidatecache

import (
	"bytes"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/holiman/uint256"

	"github.com/iotaledger/iota-client-go/internal/config"
	"github.com/iotaledger/iota-client-go/internal/logging"
	"github.com/iotaledger/iota-client-go/iotago"
)

type Cache struct {
	db *badger.DB
}

var globalCache = &Cache{}

// Load opens the on-disk badger store at the configured storage directory.
func Load() error {
	cfg := config.GetConfig()
	opts := badger.DefaultOptions(cfg.Storage.Directory).
		WithLogger(newBadgerLogger()).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("candidatecache: opening store: %w", err)
	}
	globalCache.db = db
	return nil
}

func GetCache() *Cache { return globalCache }

func addressKey(bech32Addr string) []byte {
	return []byte(fmt.Sprintf("address_%s", bech32Addr))
}

func outputKey(bech32Addr string, outputID iotago.OutputID) []byte {
	return []byte(fmt.Sprintf("output_%s_%s", bech32Addr, outputID.String()))
}

// wireAddress is the gob-safe shape of an iotago.Address: the interface
// itself can't be gob-encoded without registering every concrete type, so
// it is flattened to its kind byte plus raw payload, the same (kind ||
// payload) layout address.go's own Bech32 encoding uses.
type wireAddress struct {
	Kind    iotago.AddressKind
	Payload []byte
}

func toWireAddress(a iotago.Address) *wireAddress {
	if a == nil {
		return nil
	}
	return &wireAddress{Kind: a.Kind(), Payload: append([]byte(nil), a.Bytes()...)}
}

func (w *wireAddress) toAddress() iotago.Address {
	if w == nil {
		return nil
	}
	switch w.Kind {
	case iotago.AddressKindEd25519:
		var a iotago.Ed25519Address
		copy(a[:], w.Payload)
		return a
	case iotago.AddressKindAlias:
		var id iotago.AliasID
		copy(id[:], w.Payload)
		return iotago.AliasAddress{ID: id}
	case iotago.AddressKindNFT:
		var id iotago.NFTID
		copy(id[:], w.Payload)
		return iotago.NFTAddress{ID: id}
	default:
		return nil
	}
}

// wireUnlockConditions mirrors iotago.UnlockConditions with every address
// field flattened through wireAddress, so the full condition set survives
// a cache round trip instead of being silently dropped.
type wireUnlockConditions struct {
	Address                *wireAddress
	SDRReturnAddress       *wireAddress
	SDRReturnAmount        uint64
	HasSDR                 bool
	TimelockUnixTime       uint32
	HasTimelock            bool
	ExpirationReturnAddr   *wireAddress
	ExpirationUnixTime     uint32
	HasExpiration          bool
	StateControllerAddress *wireAddress
	GovernorAddress        *wireAddress
	ImmutableAliasAddress  *wireAddress
}

func toWireConditions(c iotago.UnlockConditions) wireUnlockConditions {
	var w wireUnlockConditions
	if c.Address != nil {
		w.Address = toWireAddress(c.Address.Address)
	}
	if c.StorageDepositReturn != nil {
		w.HasSDR = true
		w.SDRReturnAddress = toWireAddress(c.StorageDepositReturn.ReturnAddress)
		w.SDRReturnAmount = c.StorageDepositReturn.ReturnAmount
	}
	if c.Timelock != nil {
		w.HasTimelock = true
		w.TimelockUnixTime = c.Timelock.UnixTime
	}
	if c.Expiration != nil {
		w.HasExpiration = true
		w.ExpirationReturnAddr = toWireAddress(c.Expiration.ReturnAddress)
		w.ExpirationUnixTime = c.Expiration.UnixTime
	}
	if c.StateControllerAddress != nil {
		w.StateControllerAddress = toWireAddress(c.StateControllerAddress.Address)
	}
	if c.GovernorAddress != nil {
		w.GovernorAddress = toWireAddress(c.GovernorAddress.Address)
	}
	if c.ImmutableAliasAddress != nil {
		w.ImmutableAliasAddress = toWireAddress(c.ImmutableAliasAddress.Address)
	}
	return w
}

func (w wireUnlockConditions) toConditions() iotago.UnlockConditions {
	var c iotago.UnlockConditions
	if w.Address != nil {
		c.Address = &iotago.AddressUnlockCondition{Address: w.Address.toAddress()}
	}
	if w.HasSDR {
		c.StorageDepositReturn = &iotago.StorageDepositReturnUnlockCondition{
			ReturnAddress: w.SDRReturnAddress.toAddress(),
			ReturnAmount:  w.SDRReturnAmount,
		}
	}
	if w.HasTimelock {
		c.Timelock = &iotago.TimelockUnlockCondition{UnixTime: w.TimelockUnixTime}
	}
	if w.HasExpiration {
		c.Expiration = &iotago.ExpirationUnlockCondition{
			ReturnAddress: w.ExpirationReturnAddr.toAddress(),
			UnixTime:      w.ExpirationUnixTime,
		}
	}
	if w.StateControllerAddress != nil {
		c.StateControllerAddress = &iotago.StateControllerAddressUnlockCondition{Address: w.StateControllerAddress.toAddress()}
	}
	if w.GovernorAddress != nil {
		c.GovernorAddress = &iotago.GovernorAddressUnlockCondition{Address: w.GovernorAddress.toAddress()}
	}
	if w.ImmutableAliasAddress != nil {
		if alias, ok := w.ImmutableAliasAddress.toAddress().(iotago.AliasAddress); ok {
			c.ImmutableAliasAddress = &iotago.ImmutableAliasAddressUnlockCondition{Address: alias}
		}
	}
	return c
}

// wireFeatures mirrors iotago.Features, again flattening address fields.
type wireFeatures struct {
	SenderAddress *wireAddress
	IssuerAddress *wireAddress
	HasMetadata   bool
	MetadataData  []byte
	HasTag        bool
	Tag           []byte
}

func toWireFeatures(f iotago.Features) wireFeatures {
	var w wireFeatures
	if f.Sender != nil {
		w.SenderAddress = toWireAddress(f.Sender.Address)
	}
	if f.Issuer != nil {
		w.IssuerAddress = toWireAddress(f.Issuer.Address)
	}
	if f.Metadata != nil {
		w.HasMetadata = true
		w.MetadataData = append([]byte(nil), f.Metadata.Data...)
	}
	if f.Tag != nil {
		w.HasTag = true
		w.Tag = append([]byte(nil), f.Tag.Tag...)
	}
	return w
}

func (w wireFeatures) toFeatures() iotago.Features {
	var f iotago.Features
	if w.SenderAddress != nil {
		f.Sender = &iotago.SenderFeature{Address: w.SenderAddress.toAddress()}
	}
	if w.IssuerAddress != nil {
		f.Issuer = &iotago.IssuerFeature{Address: w.IssuerAddress.toAddress()}
	}
	if w.HasMetadata {
		f.Metadata = &iotago.MetadataFeature{Data: w.MetadataData}
	}
	if w.HasTag {
		f.Tag = &iotago.TagFeature{Tag: w.Tag}
	}
	return f
}

// wireNativeToken carries a uint256 amount as its big-endian byte form,
// since uint256.Int isn't gob-encodable directly.
type wireNativeToken struct {
	ID     iotago.NativeTokenID
	Amount []byte
}

// wireNativeTokens is the gob-safe, sorted-slice form of a NativeTokenBag.
type wireNativeTokens []wireNativeToken

func toWireTokens(bag iotago.NativeTokenBag) wireNativeTokens {
	if len(bag) == 0 {
		return nil
	}
	tokens := make(wireNativeTokens, 0, len(bag))
	for _, id := range bag.IDs() {
		tokens = append(tokens, wireNativeToken{ID: id, Amount: bag[id].Bytes()})
	}
	return tokens
}

func (tokens wireNativeTokens) toBag() iotago.NativeTokenBag {
	if len(tokens) == 0 {
		return nil
	}
	bag := make(iotago.NativeTokenBag, len(tokens))
	for _, t := range tokens {
		bag[t.ID] = new(uint256.Int).SetBytes(t.Amount)
	}
	return bag
}

// gobCandidate is the complete on-disk shape of an iotago.InputSigningData:
// every field each output kind actually uses is preserved, so a Put/Get
// round trip reproduces the same unlockability and identity the candidate
// had when it was cached.
type gobCandidate struct {
	Kind       iotago.OutputKind
	Amount     uint64
	Tokens     wireNativeTokens
	Conditions wireUnlockConditions
	Features   wireFeatures

	// Alias-specific
	AliasID        iotago.AliasID
	StateIndex     uint32
	StateMetadata  []byte
	FoundryCounter uint32

	// NFT-specific
	NFTID             iotago.NFTID
	ImmutableMetadata []byte

	// Foundry-specific
	SerialNumber   uint32
	ImmutableAlias iotago.AliasID
	SchemeMinted   []byte
	SchemeMelted   []byte
	SchemeMaximum  []byte

	OutputID      iotago.OutputID
	Bech32Address string
	Chain         []uint32
}

func toGobCandidate(cand iotago.InputSigningData) gobCandidate {
	gc := gobCandidate{
		Kind:          cand.Output.Kind(),
		Amount:        cand.Output.Amount(),
		Tokens:        toWireTokens(cand.Output.NativeTokens()),
		Conditions:    toWireConditions(cand.Output.UnlockConditions()),
		OutputID:      cand.OutputID,
		Bech32Address: cand.Bech32Address,
		Chain:         append([]uint32(nil), cand.Chain...),
	}
	switch o := cand.Output.(type) {
	case *iotago.BasicOutput:
		gc.Features = toWireFeatures(o.OutputFeatures)
	case *iotago.AliasOutput:
		gc.Features = toWireFeatures(o.OutputFeatures)
		gc.AliasID = o.AliasID
		gc.StateIndex = o.StateIndex
		gc.StateMetadata = append([]byte(nil), o.StateMetadata...)
		gc.FoundryCounter = o.FoundryCounter
	case *iotago.NFTOutput:
		gc.Features = toWireFeatures(o.OutputFeatures)
		gc.NFTID = o.NFTID
		gc.ImmutableMetadata = append([]byte(nil), o.ImmutableMetadata...)
	case *iotago.FoundryOutput:
		gc.SerialNumber = o.SerialNumber
		gc.ImmutableAlias = o.ImmutableAlias.ID
		if o.Scheme.MintedTokens != nil {
			gc.SchemeMinted = o.Scheme.MintedTokens.Bytes()
		}
		if o.Scheme.MeltedTokens != nil {
			gc.SchemeMelted = o.Scheme.MeltedTokens.Bytes()
		}
		if o.Scheme.MaximumSupply != nil {
			gc.SchemeMaximum = o.Scheme.MaximumSupply.Bytes()
		}
	}
	return gc
}

func decodeGobOutput(gc gobCandidate) iotago.Output {
	tokens := gc.Tokens
	switch gc.Kind {
	case iotago.OutputAlias:
		return &iotago.AliasOutput{
			OutputAmount:    gc.Amount,
			Tokens:          tokens.toBag(),
			AliasID:         gc.AliasID,
			StateIndex:      gc.StateIndex,
			StateMetadata:   gc.StateMetadata,
			FoundryCounter:  gc.FoundryCounter,
			StateController: gc.Conditions.StateControllerAddress.toAddress(),
			Governor:        gc.Conditions.GovernorAddress.toAddress(),
			OutputFeatures:  gc.Features.toFeatures(),
		}
	case iotago.OutputNFT:
		return &iotago.NFTOutput{
			OutputAmount:      gc.Amount,
			Tokens:            tokens.toBag(),
			NFTID:             gc.NFTID,
			AddressUnlock:     gc.Conditions.Address.toAddress(),
			OutputFeatures:    gc.Features.toFeatures(),
			ImmutableMetadata: gc.ImmutableMetadata,
		}
	case iotago.OutputFoundry:
		var alias iotago.AliasAddress
		alias.ID = gc.ImmutableAlias
		scheme := iotago.TokenScheme{}
		if gc.SchemeMinted != nil {
			scheme.MintedTokens = new(uint256.Int).SetBytes(gc.SchemeMinted)
		}
		if gc.SchemeMelted != nil {
			scheme.MeltedTokens = new(uint256.Int).SetBytes(gc.SchemeMelted)
		}
		if gc.SchemeMaximum != nil {
			scheme.MaximumSupply = new(uint256.Int).SetBytes(gc.SchemeMaximum)
		}
		return &iotago.FoundryOutput{
			OutputAmount:   gc.Amount,
			Tokens:         tokens.toBag(),
			SerialNumber:   gc.SerialNumber,
			Scheme:         scheme,
			ImmutableAlias: alias,
		}
	default:
		return &iotago.BasicOutput{
			OutputAmount:   gc.Amount,
			Tokens:         tokens.toBag(),
			Conditions:     gc.Conditions.toConditions(),
			OutputFeatures: gc.Features.toFeatures(),
		}
	}
}

// Put replaces the cached candidate set for bech32Addr.
func (c *Cache) Put(bech32Addr string, candidates []iotago.InputSigningData) error {
	logger := logging.GetLogger()
	logger.Debug("caching candidates", "address", bech32Addr, "count", len(candidates))
	return c.db.Update(func(txn *badger.Txn) error {
		var ids []string
		for _, cand := range candidates {
			gc := toGobCandidate(cand)
			var buf bytes.Buffer
			if err := gob.NewEncoder(&buf).Encode(gc); err != nil {
				return fmt.Errorf("encoding candidate %s: %w", cand.OutputID, err)
			}
			if err := txn.Set(outputKey(bech32Addr, cand.OutputID), buf.Bytes()); err != nil {
				return err
			}
			ids = append(ids, cand.OutputID.String())
		}
		return txn.Set(addressKey(bech32Addr), []byte(strings.Join(ids, ",")))
	})
}

// Get returns the cached candidates for bech32Addr, or nil if nothing has
// been cached yet.
func (c *Cache) Get(bech32Addr string) ([]iotago.InputSigningData, error) {
	var ids []string
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(addressKey(bech32Addr))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(v []byte) error {
			if len(v) > 0 {
				ids = strings.Split(string(v), ",")
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	var results []iotago.InputSigningData
	for _, id := range ids {
		raw, err := hex.DecodeString(id)
		if err != nil || len(raw) != len(iotago.OutputID{}) {
			continue
		}
		var outputID iotago.OutputID
		copy(outputID[:], raw)
		err = c.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get(outputKey(bech32Addr, outputID))
			if err != nil {
				return err
			}
			return item.Value(func(v []byte) error {
				var gc gobCandidate
				if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&gc); err != nil {
					return err
				}
				results = append(results, iotago.InputSigningData{
					Output:        decodeGobOutput(gc),
					OutputID:      gc.OutputID,
					Bech32Address: gc.Bech32Address,
					Chain:         gc.Chain,
				})
				return nil
			})
		})
		if err != nil {
			return nil, fmt.Errorf("candidatecache: reading output %s: %w", outputID, err)
		}
	}
	return results, nil
}

// newBadgerLogger adapts the process logger to badger's expected interface,
// the same shim the teacher's storage package wraps around its own logger.
func newBadgerLogger() badger.Logger {
	return &slogBadgerLogger{}
}

// slogBadgerLogger implements badger.Logger directly over the package slog
// logger, since log/slog has no printf-style methods to embed the way the
// teacher embeds its own *logging.Logger.
type slogBadgerLogger struct{}

func (l *slogBadgerLogger) Errorf(format string, args ...any) {
	logging.GetLogger().Error(fmt.Sprintf(format, args...))
}
func (l *slogBadgerLogger) Warningf(format string, args ...any) {
	logging.GetLogger().Warn(fmt.Sprintf(format, args...))
}
func (l *slogBadgerLogger) Infof(format string, args ...any) {
	logging.GetLogger().Info(fmt.Sprintf(format, args...))
}
func (l *slogBadgerLogger) Debugf(format string, args ...any) {
	logging.GetLogger().Debug(fmt.Sprintf(format, args...))
}
