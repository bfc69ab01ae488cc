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

// SenderFeature records the address that authored an output. The seeder
// (spec.md §4.2) turns every desired output's SenderFeature into a
// Sender requirement the engine must fulfil with an input it controls.
type SenderFeature struct {
	Address Address
}

// IssuerFeature records the address that originally minted an identity
// output. It is immutable and only meaningful while the identity is in
// "creation" state — re-asserting it on a transition is what the seeder
// checks for to add an Issuer requirement (spec.md §4.2).
type IssuerFeature struct {
	Address Address
}

// MetadataFeature carries caller-defined binary metadata.
type MetadataFeature struct {
	Data []byte
}

// TagFeature carries a caller-defined tag for indexing purposes.
type TagFeature struct {
	Tag []byte
}

// Features bundles the optional features an output may carry. Only Basic,
// Alias and NFT outputs carry features; Foundry and Treasury do not.
type Features struct {
	Sender   *SenderFeature
	Issuer   *IssuerFeature
	Metadata *MetadataFeature
	Tag      *TagFeature
}
