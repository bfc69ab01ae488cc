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

import "testing"

func TestBech32RoundTripEd25519(t *testing.T) {
	var a Ed25519Address
	a[0] = 0xab
	a[31] = 0xcd

	encoded := a.Bech32("rms")
	decoded, err := ParseBech32Address("rms", encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Equal(a) {
		t.Fatalf("expected decoded address to equal original, got %+v", decoded)
	}
}

func TestBech32RoundTripAlias(t *testing.T) {
	addr := AliasAddress{ID: AliasID{1, 2, 3}}
	encoded := addr.Bech32("rms")
	decoded, err := ParseBech32Address("rms", encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Equal(addr) {
		t.Fatalf("expected decoded alias address to equal original, got %+v", decoded)
	}
}

func TestParseBech32AddressWrongHRP(t *testing.T) {
	var a Ed25519Address
	encoded := a.Bech32("rms")
	if _, err := ParseBech32Address("iota", encoded); err == nil {
		t.Fatal("expected an error when the HRP doesn't match")
	}
}
