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

// AddressUnlockCondition gates an output behind a single address: whoever
// controls that address may unlock the output (subject to any
// timelock/expiration also present).
type AddressUnlockCondition struct {
	Address Address
}

// StorageDepositReturnUnlockCondition obliges the spender to create a
// return output paying ReturnAmount back to ReturnAddress, unless the
// output has expired (see ExpirationUnlockCondition).
type StorageDepositReturnUnlockCondition struct {
	ReturnAddress Address
	ReturnAmount  uint64
}

// TimelockUnlockCondition makes an output unspendable until UnixTime.
type TimelockUnlockCondition struct {
	UnixTime uint32
}

// ExpirationUnlockCondition hands control of an output to ReturnAddress
// once UnixTime has passed, taking it away from the original address
// unlock condition.
type ExpirationUnlockCondition struct {
	ReturnAddress Address
	UnixTime      uint32
}

// StateControllerAddressUnlockCondition names the address that may perform
// a state transition on an alias output.
type StateControllerAddressUnlockCondition struct {
	Address Address
}

// GovernorAddressUnlockCondition names the address that may perform a
// governance transition on an alias output.
type GovernorAddressUnlockCondition struct {
	Address Address
}

// ImmutableAliasAddressUnlockCondition gates a foundry output behind the
// alias that controls it; it can never be changed for the lifetime of the
// foundry.
type ImmutableAliasAddressUnlockCondition struct {
	Address AliasAddress
}

// UnlockConditions bundles the unlock conditions attached to an output.
// Only the conditions relevant to the output's variant are populated; the
// rest are left nil/zero.
type UnlockConditions struct {
	Address              *AddressUnlockCondition
	StorageDepositReturn  *StorageDepositReturnUnlockCondition
	Timelock              *TimelockUnlockCondition
	Expiration            *ExpirationUnlockCondition
	StateControllerAddress *StateControllerAddressUnlockCondition
	GovernorAddress       *GovernorAddressUnlockCondition
	ImmutableAliasAddress *ImmutableAliasAddressUnlockCondition
}

// SDRNotExpired returns the storage-deposit-return unlock condition if
// present and not yet expired at currentTime, mirroring
// original_source's helpers.rs::sdr_not_expired: an expired SDR no longer
// needs to be paid back, since control of the output has already reverted
// to the return address.
func (u UnlockConditions) SDRNotExpired(currentTime uint32) *StorageDepositReturnUnlockCondition {
	if u.StorageDepositReturn == nil {
		return nil
	}
	if u.Expiration != nil && currentTime >= u.Expiration.UnixTime {
		return nil
	}
	return u.StorageDepositReturn
}

// LockedAddress returns the address that currently controls the output's
// primary address-unlock condition at currentTime: the condition's own
// address, unless an expiration whose time has been reached has handed
// control to its return address.
func (u UnlockConditions) LockedAddress(currentTime uint32) Address {
	if u.Address == nil {
		return nil
	}
	if u.Expiration != nil && currentTime >= u.Expiration.UnixTime {
		return u.Expiration.ReturnAddress
	}
	return u.Address.Address
}

// IsTimelocked reports whether a still-active timelock blocks unlocking at
// currentTime.
func (u UnlockConditions) IsTimelocked(currentTime uint32) bool {
	return u.Timelock != nil && u.Timelock.UnixTime > currentTime
}
