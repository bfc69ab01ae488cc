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

package engine

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/iotaledger/iota-client-go/iotago"
)

func testAddr(b byte) iotago.Ed25519Address {
	var a iotago.Ed25519Address
	a[0] = b
	return a
}

func testAliasID(b byte) iotago.AliasID {
	var id iotago.AliasID
	id[0] = b
	return id
}

func testOutputID(b byte, index uint16) iotago.OutputID {
	var txID [32]byte
	txID[0] = b
	return iotago.NewOutputID(txID, index)
}

func testParams() iotago.ProtocolParameters {
	return iotago.ProtocolParameters{
		NetworkName:   "testnet",
		Bech32HRP:     "rms",
		RentStructure: iotago.DefaultRentStructure(),
		TokenSupply:   1_000_000_000,
	}
}

// TestRunFoundryAndNativeToken exercises serveFoundry and serveNativeToken
// together: a passthrough foundry pulls in its controlling alias (serveAlias
// via a requirement queued from serveFoundry), and the native token it
// controls is carried from a candidate basic output into a desired one
// (refreshAmountRequirements/serveNativeToken).
func TestRunFoundryAndNativeToken(t *testing.T) {
	a := testAddr(1)
	aliasID := testAliasID(7)

	foundry := &iotago.FoundryOutput{
		OutputAmount:   1_000_000,
		SerialNumber:   1,
		ImmutableAlias: iotago.AliasAddress{ID: aliasID},
	}
	fid := foundry.ID()

	alias := &iotago.AliasOutput{
		OutputAmount:    1_000_000,
		AliasID:         aliasID,
		StateController: a,
		Governor:        a,
	}
	tokens := iotago.NativeTokenBag{fid: uint256.NewInt(100)}
	basic := &iotago.BasicOutput{
		OutputAmount: 2_000_000,
		Tokens:       tokens,
		Conditions:   iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
	}

	cfg := Config{
		Candidates: []iotago.InputSigningData{
			{Output: foundry, OutputID: testOutputID(61, 0)},
			{Output: alias, OutputID: testOutputID(62, 0)},
			{Output: basic, OutputID: testOutputID(63, 0)},
		},
		Desired: []iotago.Output{
			&iotago.FoundryOutput{
				OutputAmount:   1_000_000,
				SerialNumber:   1,
				ImmutableAlias: iotago.AliasAddress{ID: aliasID},
			},
			&iotago.BasicOutput{
				OutputAmount: 2_000_000,
				Tokens:       iotago.NativeTokenBag{fid: uint256.NewInt(100)},
				Conditions:   iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
			},
		},
		Params: testParams(),
	}

	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Inputs) != 3 {
		t.Fatalf("expected foundry, alias and token-bearing basic all selected, got %d inputs: %+v", len(res.Inputs), res.Inputs)
	}

	var sawFoundry, sawAliasPassthrough bool
	var inTotal, outTotal uint64
	for _, in := range res.Inputs {
		inTotal += in.Output.Amount()
	}
	for _, out := range res.Outputs {
		outTotal += out.Amount()
		switch o := out.(type) {
		case *iotago.FoundryOutput:
			sawFoundry = true
			if o.ID() != fid {
				t.Fatalf("expected foundry id to survive the passthrough unchanged, got %s", o.ID())
			}
		case *iotago.AliasOutput:
			sawAliasPassthrough = true
			if o.AliasID != aliasID {
				t.Fatalf("expected the controlling alias to pass through with its id intact, got %s", o.AliasID)
			}
		}
	}
	if !sawFoundry {
		t.Fatalf("expected a foundry output, got %+v", res.Outputs)
	}
	if !sawAliasPassthrough {
		t.Fatalf("expected the foundry's controlling alias to surface as a passthrough output, got %+v", res.Outputs)
	}
	if inTotal != outTotal {
		t.Fatalf("conservation violated: inputs=%d outputs=%d", inTotal, outTotal)
	}

	gotQty := uint256.NewInt(0)
	for _, out := range res.Outputs {
		if qty := out.NativeTokens().Get(fid); qty.Sign() > 0 {
			gotQty = qty
		}
	}
	if gotQty.Cmp(uint256.NewInt(100)) != 0 {
		t.Fatalf("expected the native token quantity to be conserved at 100, got %s", gotQty)
	}
}

// TestRunNativeTokenShortfall exercises serveNativeToken's failure path: no
// candidate carries enough of the required token.
func TestRunNativeTokenShortfall(t *testing.T) {
	a := testAddr(1)
	var fid iotago.NativeTokenID
	fid[0] = 9

	basic := &iotago.BasicOutput{
		OutputAmount: 2_000_000,
		Conditions:   iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
	}
	cfg := Config{
		Candidates: []iotago.InputSigningData{{Output: basic, OutputID: testOutputID(70, 0)}},
		Desired: []iotago.Output{&iotago.BasicOutput{
			OutputAmount: 2_000_000,
			Tokens:       iotago.NativeTokenBag{fid: uint256.NewInt(50)},
			Conditions:   iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
		}},
		Params: testParams(),
	}

	_, err := Run(cfg)
	if err == nil {
		t.Fatal("expected an insufficient native token amount error")
	}
	tokErr, ok := err.(*iotago.InsufficientNativeTokenAmountError)
	if !ok {
		t.Fatalf("expected *iotago.InsufficientNativeTokenAmountError, got %T: %v", err, err)
	}
	if tokErr.TokenID != fid {
		t.Fatalf("expected the shortfall to name the missing token, got %s", tokErr.TokenID)
	}
}

// TestRunIdentityContinuity asserts that an alias candidate's stored,
// non-zero AliasID is what survives into its passthrough output — never a
// value re-derived from the candidate's own output id, which would break
// continuity for an alias that has already transitioned at least once
// (spec.md's "or_from_output_id" rule only applies to freshly-minted
// aliases).
func TestRunIdentityContinuity(t *testing.T) {
	a := testAddr(1)
	storedID := testAliasID(42)
	// The candidate's output id intentionally shares no bytes with storedID,
	// so a buggy re-derivation would be caught by the assertion below.
	oid := testOutputID(200, 3)

	// The alias carries more than the desired output needs, leaving slack
	// for its own storage-deposit-minimum passthrough once it is pulled in
	// to cover the amount requirement (see DESIGN.md for why an alias
	// selected off the Amount path only synthesizes a minimum-rent
	// passthrough rather than its full amount).
	alias := &iotago.AliasOutput{
		OutputAmount:    2_000_000,
		AliasID:         storedID,
		StateController: a,
		Governor:        a,
	}
	cfg := Config{
		Candidates: []iotago.InputSigningData{{Output: alias, OutputID: oid}},
		Desired: []iotago.Output{&iotago.BasicOutput{
			OutputAmount: 1_000_000,
			Conditions:   iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
		}},
		Params: testParams(),
	}

	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var found bool
	for _, out := range res.Outputs {
		if ao, ok := out.(*iotago.AliasOutput); ok {
			found = true
			if ao.AliasID != storedID {
				t.Fatalf("expected the alias passthrough to keep id %s, got %s", storedID, ao.AliasID)
			}
		}
	}
	if !found {
		t.Fatalf("expected an alias passthrough output, got %+v", res.Outputs)
	}
}

// TestRunMonotonicity checks spec.md §8.1's monotonicity property directly
// at the engine level: adding a candidate to an already-successful pool
// never turns the run into an error.
func TestRunMonotonicity(t *testing.T) {
	a := testAddr(1)
	basic := &iotago.BasicOutput{
		OutputAmount: 3_000_000,
		Conditions:   iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
	}
	desired := []iotago.Output{&iotago.BasicOutput{
		OutputAmount: 1_000_000,
		Conditions:   iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
	}}

	base := Config{
		Candidates: []iotago.InputSigningData{{Output: basic, OutputID: testOutputID(80, 0)}},
		Desired:    desired,
		Params:     testParams(),
	}
	if _, err := Run(base); err != nil {
		t.Fatalf("expected the base pool to succeed, got: %v", err)
	}

	extra := &iotago.NFTOutput{
		OutputAmount:  500_000,
		NFTID:         testNftID(3),
		AddressUnlock: a,
	}
	withExtra := base
	withExtra.Candidates = append(
		append([]iotago.InputSigningData(nil), base.Candidates...),
		iotago.InputSigningData{Output: extra, OutputID: testOutputID(81, 0)},
	)
	if _, err := Run(withExtra); err != nil {
		t.Fatalf("adding an unrelated candidate turned a successful selection into an error: %v", err)
	}
}

func testNftID(b byte) iotago.NFTID {
	var id iotago.NFTID
	id[0] = b
	return id
}

// TestValidateCandidatesRejectsDuplicateOutputID exercises the iotago
// error taxonomy's InvalidInputError: a structurally malformed candidate
// pool (the same output id offered twice) must fail fast rather than
// silently double-count the same base tokens.
func TestValidateCandidatesRejectsDuplicateOutputID(t *testing.T) {
	a := testAddr(1)
	oid := testOutputID(90, 0)
	basic := &iotago.BasicOutput{
		OutputAmount: 1_000_000,
		Conditions:   iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
	}

	cfg := Config{
		Candidates: []iotago.InputSigningData{
			{Output: basic, OutputID: oid},
			{Output: basic, OutputID: oid},
		},
		Desired: []iotago.Output{&iotago.BasicOutput{
			OutputAmount: 1_000_000,
			Conditions:   iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
		}},
		Params: testParams(),
	}

	_, err := Run(cfg)
	if err == nil {
		t.Fatal("expected an invalid input error for the duplicated output id")
	}
	if _, ok := err.(*iotago.InvalidInputError); !ok {
		t.Fatalf("expected *iotago.InvalidInputError, got %T: %v", err, err)
	}
}
