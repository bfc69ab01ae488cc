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

// Package unlockable implements the unlockability predicate (spec.md
// §4.7): whether a given output can be unlocked by a given address at a
// given time.
package unlockable

import "github.com/iotaledger/iota-client-go/iotago"

// AliasResolver looks up the address currently controlling alias id, as
// known to the engine from either an already-selected alias input or one
// still sitting in the candidate pool. Its second return is false when the
// alias is not known at all (the foundry is then unlockable by nobody).
type AliasResolver func(id iotago.AliasID) (address iotago.Address, ok bool)

// By reports whether output can be unlocked by address at time t.
func By(output iotago.Output, address iotago.Address, t uint32, resolveAlias AliasResolver) bool {
	if address == nil {
		return false
	}
	switch out := output.(type) {
	case *iotago.AliasOutput:
		// A state or governance transition is authorized by the
		// state-controller or governor address respectively; either
		// suffices for the engine to consider the alias controllable by
		// address, since which kind of transition is being performed is
		// decided elsewhere.
		return addressEquals(out.StateController, address) || addressEquals(out.Governor, address)
	case *iotago.FoundryOutput:
		controller, ok := resolveAlias(out.ImmutableAlias.ID)
		return ok && addressEquals(controller, address)
	default:
		uc := output.UnlockConditions()
		if uc.Address == nil {
			return false
		}
		if uc.IsTimelocked(t) {
			return false
		}
		return addressEquals(uc.LockedAddress(t), address)
	}
}

func addressEquals(a, b iotago.Address) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Equal(b)
}
