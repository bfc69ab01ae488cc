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
	"fmt"

	"github.com/holiman/uint256"
)

// InsufficientBaseTokenAmountError is returned when, after exhausting the
// candidate pool, the selected inputs' base-token sum is still below the
// outputs' sum plus the projected remainder minimum (spec.md §7).
type InsufficientBaseTokenAmountError struct {
	Found    uint64
	Required uint64
}

func (e *InsufficientBaseTokenAmountError) Error() string {
	return fmt.Sprintf(
		"insufficient base token amount: found %d, required %d",
		e.Found, e.Required,
	)
}

// InsufficientNativeTokenAmountError is returned when a native token's
// selected input quantity can't be made to cover its requirement.
type InsufficientNativeTokenAmountError struct {
	TokenID  NativeTokenID
	Found    *uint256.Int
	Required *uint256.Int
}

func (e *InsufficientNativeTokenAmountError) Error() string {
	return fmt.Sprintf(
		"insufficient native token amount for %s: found %s, required %s",
		e.TokenID, e.Found, e.Required,
	)
}

// InsufficientStorageDepositAmountError is returned when a synthesized
// remainder output cannot be made to meet its storage-deposit minimum.
// Transition outputs are not checked against their minimum.
type InsufficientStorageDepositAmountError struct {
	Amount   uint64
	Required uint64
}

func (e *InsufficientStorageDepositAmountError) Error() string {
	return fmt.Sprintf(
		"insufficient storage deposit amount: got %d, required %d",
		e.Amount, e.Required,
	)
}

// UnfulfillableRequirementError is returned when no candidate input
// satisfies an outstanding requirement.
type UnfulfillableRequirementError struct {
	Requirement fmt.Stringer
}

func (e *UnfulfillableRequirementError) Error() string {
	return fmt.Sprintf("unfulfillable requirement: %s", e.Requirement)
}

// BurnAndTransitionError is returned when the same identity appears both in
// the burn directive and in a desired output.
type BurnAndTransitionError struct {
	Kind string
	ID   fmt.Stringer
}

func (e *BurnAndTransitionError) Error() string {
	return fmt.Sprintf(
		"%s %s is both burned and transitioned",
		e.Kind, e.ID,
	)
}

// UnexpectedBurnError is returned when an identity or native token
// disappeared from the inputs without being listed in the burn directive.
type UnexpectedBurnError struct {
	Kind string
	ID   fmt.Stringer
}

func (e *UnexpectedBurnError) Error() string {
	return fmt.Sprintf("unexpected burn of %s %s", e.Kind, e.ID)
}

// CyclicUnlockChainError is returned when the sort pass detects a cycle in
// identity-unlock references (A unlocks B unlocks A).
type CyclicUnlockChainError struct{}

func (e *CyclicUnlockChainError) Error() string { return "cyclic unlock chain" }

// InvalidInputError is returned when a candidate is structurally malformed:
// its output is nil, or its output id repeats another candidate's.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return fmt.Sprintf("invalid input: %s", e.Reason) }

// ProtocolLimitKind names which cap a ProtocolLimitError exceeded.
type ProtocolLimitKind string

const (
	ProtocolLimitInputs  ProtocolLimitKind = "inputs"
	ProtocolLimitOutputs ProtocolLimitKind = "outputs"
)

// ProtocolLimitError is returned when a selection would require more than
// the consensus-capped number of inputs or outputs (spec.md §5: R, I ≤
// 128 in practice).
type ProtocolLimitError struct {
	Kind ProtocolLimitKind
}

func (e *ProtocolLimitError) Error() string {
	return fmt.Sprintf("protocol limit exceeded: too many %s", e.Kind)
}

// MaxInputsOutputs is the consensus cap on the number of inputs or outputs
// a transaction may carry (spec.md §5).
const MaxInputsOutputs = 128
