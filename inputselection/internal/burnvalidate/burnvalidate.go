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

// Package burnvalidate implements the burn post-validation pass (spec.md
// §4.8): confirms every identity and native-token quantity that vanished
// between the selected inputs and final outputs was declared burned.
package burnvalidate

import (
	"github.com/holiman/uint256"
	"github.com/iotaledger/iota-client-go/iotago"
)

// Validate re-scans inputs against outputs and fails with UnexpectedBurn
// if an identity or token quantity disappeared without being listed in
// burn.
func Validate(inputs []iotago.InputSigningData, outputs []iotago.Output, burn *iotago.Burn) error {
	inAliases := map[iotago.AliasID]bool{}
	inNfts := map[iotago.NFTID]bool{}
	inFoundries := map[iotago.FoundryID]iotago.AliasID{}
	inTokens := map[iotago.NativeTokenID]*uint256.Int{}

	for _, in := range inputs {
		switch out := in.Output.(type) {
		case *iotago.AliasOutput:
			inAliases[out.ResolvedID(in.OutputID)] = true
		case *iotago.NFTOutput:
			inNfts[out.ResolvedID(in.OutputID)] = true
		case *iotago.FoundryOutput:
			inFoundries[out.ID()] = out.ImmutableAlias.ID
		}
		addTokens(inTokens, in.Output.NativeTokens())
	}

	outAliases := map[iotago.AliasID]bool{}
	outNfts := map[iotago.NFTID]bool{}
	outFoundries := map[iotago.FoundryID]bool{}
	outTokens := map[iotago.NativeTokenID]*uint256.Int{}

	for _, out := range outputs {
		switch o := out.(type) {
		case *iotago.AliasOutput:
			outAliases[o.AliasID] = true
		case *iotago.NFTOutput:
			outNfts[o.NFTID] = true
		case *iotago.FoundryOutput:
			outFoundries[o.ID()] = true
		}
		addTokens(outTokens, out.NativeTokens())
	}

	for id := range inAliases {
		if !outAliases[id] && !burn.HasAlias(id) {
			return &iotago.UnexpectedBurnError{Kind: "alias", ID: id}
		}
	}
	for id := range inNfts {
		if !outNfts[id] && !burn.HasNFT(id) {
			return &iotago.UnexpectedBurnError{Kind: "nft", ID: id}
		}
	}
	for id, controller := range inFoundries {
		if !outFoundries[id] && !burn.HasFoundry(id, controller) {
			return &iotago.UnexpectedBurnError{Kind: "foundry", ID: id}
		}
	}
	for id, inQty := range inTokens {
		outQty, ok := outTokens[id]
		if !ok {
			outQty = uint256.NewInt(0)
		}
		if inQty.Cmp(outQty) <= 0 {
			continue
		}
		excess := new(uint256.Int).Sub(inQty, outQty)
		if excess.Cmp(burn.NativeTokenAmount(id)) != 0 {
			return &iotago.UnexpectedBurnError{Kind: "native token", ID: id}
		}
	}
	return nil
}

func addTokens(into map[iotago.NativeTokenID]*uint256.Int, bag iotago.NativeTokenBag) {
	for id, qty := range bag {
		if existing, ok := into[id]; ok {
			existing.Add(existing, qty)
		} else {
			into[id] = new(uint256.Int).Set(qty)
		}
	}
}
