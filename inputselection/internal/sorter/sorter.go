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

// Package sorter implements the post-selection sort pass (spec.md §4.6):
// any input unlocked by reference to another input's identity address
// must appear strictly after that referent.
package sorter

import "github.com/iotaledger/iota-client-go/iotago"

// Sort reorders inputs so the unlock-reference invariant holds, grounded
// on original_source's helpers.rs::sort_input_signing_data.
func Sort(inputs []iotago.InputSigningData) ([]iotago.InputSigningData, error) {
	identityOf := map[string]int{} // identity key -> index into inputs
	for i, in := range inputs {
		switch out := in.Output.(type) {
		case *iotago.AliasOutput:
			identityOf[aliasKey(out.ResolvedID(in.OutputID))] = i
		case *iotago.NFTOutput:
			identityOf[nftKey(out.ResolvedID(in.OutputID))] = i
		}
	}

	referent := make([]int, len(inputs))
	for i, in := range inputs {
		referent[i] = -1
		switch out := in.Output.(type) {
		case *iotago.AliasOutput:
			if addr, ok := out.StateController.(iotago.AliasAddress); ok {
				if idx, ok := identityOf[aliasKey(addr.ID)]; ok {
					referent[i] = idx
				}
			} else if addr, ok := out.StateController.(iotago.NFTAddress); ok {
				if idx, ok := identityOf[nftKey(addr.ID)]; ok {
					referent[i] = idx
				}
			}
		case *iotago.NFTOutput:
			if addr, ok := out.AddressUnlock.(iotago.AliasAddress); ok {
				if idx, ok := identityOf[aliasKey(addr.ID)]; ok {
					referent[i] = idx
				}
			} else if addr, ok := out.AddressUnlock.(iotago.NFTAddress); ok {
				if idx, ok := identityOf[nftKey(addr.ID)]; ok {
					referent[i] = idx
				}
			}
		case *iotago.FoundryOutput:
			if idx, ok := identityOf[aliasKey(out.ImmutableAlias.ID)]; ok {
				referent[i] = idx
			}
		case *iotago.BasicOutput:
			if out.Conditions.Address != nil {
				if a, ok := out.Conditions.Address.Address.(iotago.AliasAddress); ok {
					if idx, ok := identityOf[aliasKey(a.ID)]; ok {
						referent[i] = idx
					}
				} else if n, ok := out.Conditions.Address.Address.(iotago.NFTAddress); ok {
					if idx, ok := identityOf[nftKey(n.ID)]; ok {
						referent[i] = idx
					}
				}
			}
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make([]int, len(inputs))
	order := make([]int, 0, len(inputs))

	var place func(i int) error
	place = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return &iotago.CyclicUnlockChainError{}
		}
		state[i] = visiting
		if ref := referent[i]; ref != -1 {
			if err := place(ref); err != nil {
				return err
			}
		}
		state[i] = done
		order = append(order, i)
		return nil
	}

	for i := range inputs {
		if err := place(i); err != nil {
			return nil, err
		}
	}

	out := make([]iotago.InputSigningData, len(inputs))
	for newPos, oldIdx := range order {
		out[newPos] = inputs[oldIdx]
	}
	return out, nil
}

func aliasKey(id iotago.AliasID) string { return "a:" + string(id[:]) }
func nftKey(id iotago.NFTID) string     { return "n:" + string(id[:]) }
