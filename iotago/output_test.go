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
	"testing"

	"github.com/holiman/uint256"
)

func TestBasicOutputCloneIsIndependent(t *testing.T) {
	tokenID := NativeTokenID{1}
	o := &BasicOutput{
		OutputAmount: 100,
		Tokens:       NativeTokenBag{tokenID: uint256.NewInt(5)},
	}
	clone := o.Clone().(*BasicOutput)
	clone.Tokens[tokenID].Add(clone.Tokens[tokenID], uint256.NewInt(1))

	if o.Tokens[tokenID].Cmp(uint256.NewInt(5)) != 0 {
		t.Fatalf("expected original to be unaffected by mutating the clone, got %s", o.Tokens[tokenID])
	}
}

func TestAliasOutputCloneIsIndependent(t *testing.T) {
	o := &AliasOutput{StateMetadata: []byte("abc")}
	clone := o.Clone().(*AliasOutput)
	clone.StateMetadata[0] = 'x'
	if o.StateMetadata[0] != 'a' {
		t.Fatal("expected mutating the clone's metadata not to affect the original")
	}
}

func TestFoundryOutputID(t *testing.T) {
	aliasID := AliasID{9}
	fo := &FoundryOutput{ImmutableAlias: AliasAddress{ID: aliasID}, SerialNumber: 300}
	id := fo.ID()
	if len(id) != 37 {
		t.Fatalf("expected a 37-byte foundry id, got %d", len(id))
	}
	var gotAlias AliasID
	copy(gotAlias[:], id[:32])
	if gotAlias != aliasID {
		t.Fatalf("expected the foundry id to embed the controlling alias id, got %s", gotAlias)
	}
}

func TestAliasOutputResolvedIDCreationVsTransition(t *testing.T) {
	oid := NewOutputID([32]byte{1}, 0)
	creation := &AliasOutput{}
	if creation.ResolvedID(oid).IsZero() {
		t.Fatal("expected a derived non-zero id for a creation-state alias")
	}

	existing := AliasID{7}
	transition := &AliasOutput{AliasID: existing}
	if transition.ResolvedID(oid) != existing {
		t.Fatal("expected a transition-state alias to keep its own id")
	}
}
