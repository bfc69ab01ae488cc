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

// Package inputselection is the public entry point of the input-selection
// engine (spec.md §6.1): given a pool of candidate inputs, a set of
// desired outputs and the current protocol parameters, it produces a
// minimally-sufficient set of inputs together with any remainder outputs
// required to preserve value, identity-chain continuity and
// storage-deposit minima.
package inputselection

import (
	"github.com/iotaledger/iota-client-go/inputselection/internal/burnvalidate"
	"github.com/iotaledger/iota-client-go/inputselection/internal/engine"
	"github.com/iotaledger/iota-client-go/inputselection/internal/sorter"
	"github.com/iotaledger/iota-client-go/iotago"
)

// Selected is the result of a successful selection.
type Selected struct {
	Inputs  []iotago.InputSigningData
	Outputs []iotago.Output
}

// Builder assembles a single selection run via chainable options, mirroring
// the fluent builder style used throughout the corpus's transaction
// construction code.
type Builder struct {
	candidates       []iotago.InputSigningData
	desired          []iotago.Output
	params           iotago.ProtocolParameters
	burn             *iotago.Burn
	remainderAddress iotago.Address
	timestamp        uint32
}

// New starts a Builder over candidates and desired outputs, priced under
// params.
func New(candidates []iotago.InputSigningData, desired []iotago.Output, params iotago.ProtocolParameters) *Builder {
	return &Builder{candidates: candidates, desired: desired, params: params}
}

// Burn attaches a burn directive to the selection.
func (b *Builder) Burn(burn *iotago.Burn) *Builder {
	b.burn = burn
	return b
}

// RemainderAddress forces the address any synthesized remainder output is
// paid to, overriding the default (the controlling address of the first
// selected input).
func (b *Builder) RemainderAddress(addr iotago.Address) *Builder {
	b.remainderAddress = addr
	return b
}

// Timestamp sets the unix time used for expiration/timelock decisions.
func (b *Builder) Timestamp(t uint32) *Builder {
	b.timestamp = t
	return b
}

// Select runs the engine to completion: Seeding → Loop → RemainderSynthesis
// → Sort → BurnValidation (spec.md §4.4).
func (b *Builder) Select() (*Selected, error) {
	result, err := engine.Run(engine.Config{
		Candidates:       b.candidates,
		Desired:          b.desired,
		Params:           b.params,
		Burn:             b.burn,
		RemainderAddress: b.remainderAddress,
		Timestamp:        b.timestamp,
	})
	if err != nil {
		return nil, err
	}

	sorted, err := sorter.Sort(result.Inputs)
	if err != nil {
		return nil, err
	}

	if err := burnvalidate.Validate(sorted, result.Outputs, b.burn); err != nil {
		return nil, err
	}

	return &Selected{Inputs: sorted, Outputs: result.Outputs}, nil
}
