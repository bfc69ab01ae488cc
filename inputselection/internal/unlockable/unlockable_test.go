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

package unlockable

import (
	"testing"

	"github.com/iotaledger/iota-client-go/iotago"
)

func testAddr(b byte) iotago.Ed25519Address {
	var a iotago.Ed25519Address
	a[0] = b
	return a
}

func noResolver(iotago.AliasID) (iotago.Address, bool) { return nil, false }

func TestByBasicAddressMatch(t *testing.T) {
	a := testAddr(1)
	out := &iotago.BasicOutput{
		Conditions: iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: a}},
	}
	if !By(out, a, 0, noResolver) {
		t.Fatal("expected output to be unlockable by its address condition")
	}
	if By(out, testAddr(2), 0, noResolver) {
		t.Fatal("expected output not to be unlockable by an unrelated address")
	}
}

func TestByRespectsTimelock(t *testing.T) {
	a := testAddr(1)
	out := &iotago.BasicOutput{
		Conditions: iotago.UnlockConditions{
			Address:  &iotago.AddressUnlockCondition{Address: a},
			Timelock: &iotago.TimelockUnlockCondition{UnixTime: 100},
		},
	}
	if By(out, a, 50, noResolver) {
		t.Fatal("expected a still-active timelock to block unlocking")
	}
	if !By(out, a, 150, noResolver) {
		t.Fatal("expected unlocking to succeed once the timelock has passed")
	}
}

func TestByExpirationHandsOverControl(t *testing.T) {
	original := testAddr(1)
	back := testAddr(2)
	out := &iotago.BasicOutput{
		Conditions: iotago.UnlockConditions{
			Address:    &iotago.AddressUnlockCondition{Address: original},
			Expiration: &iotago.ExpirationUnlockCondition{ReturnAddress: back, UnixTime: 100},
		},
	}
	if !By(out, original, 50, noResolver) {
		t.Fatal("expected the original address to unlock before expiration")
	}
	if By(out, original, 150, noResolver) {
		t.Fatal("expected the original address to lose control after expiration")
	}
	if !By(out, back, 150, noResolver) {
		t.Fatal("expected the return address to gain control after expiration")
	}
}

func TestByAliasStateControllerOrGovernor(t *testing.T) {
	sc := testAddr(1)
	gov := testAddr(2)
	out := &iotago.AliasOutput{StateController: sc, Governor: gov}
	if !By(out, sc, 0, noResolver) {
		t.Fatal("expected the state controller to unlock the alias")
	}
	if !By(out, gov, 0, noResolver) {
		t.Fatal("expected the governor to unlock the alias")
	}
	if By(out, testAddr(3), 0, noResolver) {
		t.Fatal("expected an unrelated address not to unlock the alias")
	}
}

func TestByFoundryResolvesControllingAlias(t *testing.T) {
	aliasID := iotago.AliasID{7}
	controller := testAddr(5)
	out := &iotago.FoundryOutput{ImmutableAlias: iotago.AliasAddress{ID: aliasID}}

	resolver := func(id iotago.AliasID) (iotago.Address, bool) {
		if id == aliasID {
			return controller, true
		}
		return nil, false
	}
	if !By(out, controller, 0, resolver) {
		t.Fatal("expected the resolved controller to unlock the foundry")
	}
	if By(out, controller, 0, noResolver) {
		t.Fatal("expected an unresolved alias to make the foundry unlockable by nobody")
	}
}
