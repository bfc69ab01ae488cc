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

// Package engine implements the input-selection state machine proper
// (spec.md §4.4): it drives the requirement set to empty, pulling
// candidates from the pool and synthesizing transition and remainder
// outputs as it goes.
package engine

import (
	"sort"

	"github.com/holiman/uint256"
	"github.com/iotaledger/iota-client-go/inputselection/internal/rent"
	"github.com/iotaledger/iota-client-go/inputselection/internal/requirement"
	"github.com/iotaledger/iota-client-go/inputselection/internal/unlockable"
	"github.com/iotaledger/iota-client-go/iotago"
)

// Config bundles everything a selection run needs.
type Config struct {
	Candidates       []iotago.InputSigningData
	Desired          []iotago.Output
	Params           iotago.ProtocolParameters
	Burn             *iotago.Burn
	RemainderAddress iotago.Address
	Timestamp        uint32
}

// Result is the (inputs, outputs) pair a successful run produces, before
// the sort pass and burn post-validation that the public package layers
// on top.
type Result struct {
	Inputs  []iotago.InputSigningData
	Outputs []iotago.Output
}

// state carries the engine's mutable working set through a single run
// (spec.md §4.4 "state variables"). It is never reused across calls.
type state struct {
	params           iotago.ProtocolParameters
	time             uint32
	burn             *iotago.Burn
	remainderAddress iotago.Address

	available []iotago.InputSigningData
	selected  []iotago.InputSigningData
	outputs   []iotago.Output

	remaining *requirement.Set

	desiredAlias   map[iotago.AliasID]bool
	desiredNft     map[iotago.NFTID]bool
	desiredFoundry map[iotago.FoundryID]bool

	aliasSelected map[iotago.AliasID]bool
	aliasAddress  map[iotago.AliasID]iotago.Address
	aliasOutput   map[iotago.AliasID]*iotago.AliasOutput
	nftSelected   map[iotago.NFTID]bool
	nftOutput     map[iotago.NFTID]*iotago.NFTOutput
}

// Run executes one full selection (spec.md §4.4 "Seeding → Loop →
// RemainderSynthesis" — the Sort and BurnValidation states are handled by
// the sibling sorter/burnvalidate packages, wired together in the public
// inputselection package).
func Run(cfg Config) (*Result, error) {
	if err := validateCandidates(cfg.Candidates); err != nil {
		return nil, err
	}

	st := &state{
		params:           cfg.Params,
		time:             cfg.Timestamp,
		burn:             cfg.Burn,
		remainderAddress: cfg.RemainderAddress,
		available:        sortedCandidates(cfg.Candidates),
		outputs:          cloneOutputs(cfg.Desired),
		remaining:        requirement.NewSet(),
		desiredAlias:     map[iotago.AliasID]bool{},
		desiredNft:       map[iotago.NFTID]bool{},
		desiredFoundry:   map[iotago.FoundryID]bool{},
		aliasSelected:    map[iotago.AliasID]bool{},
		aliasAddress:     map[iotago.AliasID]iotago.Address{},
		aliasOutput:      map[iotago.AliasID]*iotago.AliasOutput{},
		nftSelected:      map[iotago.NFTID]bool{},
		nftOutput:        map[iotago.NFTID]*iotago.NFTOutput{},
	}

	if err := st.seed(); err != nil {
		return nil, err
	}

	for {
		st.refreshAmountRequirements()
		req, ok := st.remaining.Next()
		if !ok {
			break
		}
		if err := st.serve(req); err != nil {
			return nil, err
		}
	}

	if err := st.synthesizeRemainder(); err != nil {
		return nil, err
	}

	if len(st.selected) > iotago.MaxInputsOutputs {
		return nil, &iotago.ProtocolLimitError{Kind: iotago.ProtocolLimitInputs}
	}
	if len(st.outputs) > iotago.MaxInputsOutputs {
		return nil, &iotago.ProtocolLimitError{Kind: iotago.ProtocolLimitOutputs}
	}

	return &Result{Inputs: st.selected, Outputs: st.outputs}, nil
}

// validateCandidates rejects a candidate pool that is structurally
// malformed: a nil output, or the same output id offered twice. Both would
// silently corrupt the selection (a nil output panics deep inside seed/
// serve; a duplicate id lets the same base tokens be counted twice).
func validateCandidates(candidates []iotago.InputSigningData) error {
	seen := make(map[iotago.OutputID]bool, len(candidates))
	for _, c := range candidates {
		if c.Output == nil {
			return &iotago.InvalidInputError{
				Reason: "candidate " + c.OutputID.String() + " has a nil output",
			}
		}
		if seen[c.OutputID] {
			return &iotago.InvalidInputError{
				Reason: "duplicate candidate output id " + c.OutputID.String(),
			}
		}
		seen[c.OutputID] = true
	}
	return nil
}

func sortedCandidates(candidates []iotago.InputSigningData) []iotago.InputSigningData {
	out := append([]iotago.InputSigningData(nil), candidates...)
	sort.Slice(out, func(i, j int) bool { return out[i].OutputID.Less(out[j].OutputID) })
	return out
}

func cloneOutputs(outputs []iotago.Output) []iotago.Output {
	out := make([]iotago.Output, len(outputs))
	for i, o := range outputs {
		out[i] = o.Clone()
	}
	return out
}

// ---- seeding (spec.md §4.2) ----

func (st *state) seed() error {
	tokenTotals := map[iotago.NativeTokenID]*uint256.Int{}
	var amountTotal uint64
	seenSenders := map[string]bool{}

	for _, out := range st.outputs {
		amountTotal += out.Amount()
		for id, qty := range out.NativeTokens() {
			if existing, ok := tokenTotals[id]; ok {
				existing.Add(existing, qty)
			} else {
				tokenTotals[id] = new(uint256.Int).Set(qty)
			}
		}

		switch o := out.(type) {
		case *iotago.AliasOutput:
			if !o.AliasID.IsZero() {
				if st.burn.HasAlias(o.AliasID) {
					return &iotago.BurnAndTransitionError{Kind: "alias", ID: o.AliasID}
				}
				st.desiredAlias[o.AliasID] = true
				st.remaining.Add(requirement.Alias(o.AliasID))
			}
			if o.OutputFeatures.Sender != nil {
				addSender(st.remaining, seenSenders, o.OutputFeatures.Sender.Address)
			}
			if o.OutputFeatures.Issuer != nil && !o.IsCreation() {
				st.remaining.Add(requirement.Issuer(o.OutputFeatures.Issuer.Address))
			}
		case *iotago.NFTOutput:
			if !o.NFTID.IsZero() {
				if st.burn.HasNFT(o.NFTID) {
					return &iotago.BurnAndTransitionError{Kind: "nft", ID: o.NFTID}
				}
				st.desiredNft[o.NFTID] = true
				st.remaining.Add(requirement.Nft(o.NFTID))
			}
			if o.OutputFeatures.Sender != nil {
				addSender(st.remaining, seenSenders, o.OutputFeatures.Sender.Address)
			}
			if o.OutputFeatures.Issuer != nil && !o.IsCreation() {
				st.remaining.Add(requirement.Issuer(o.OutputFeatures.Issuer.Address))
			}
		case *iotago.BasicOutput:
			if o.OutputFeatures.Sender != nil {
				addSender(st.remaining, seenSenders, o.OutputFeatures.Sender.Address)
			}
		case *iotago.FoundryOutput:
			fid := o.ID()
			controllingAlias := o.ImmutableAlias.ID
			if st.burn.HasFoundry(fid, controllingAlias) {
				return &iotago.BurnAndTransitionError{Kind: "foundry", ID: fid}
			}
			st.desiredFoundry[fid] = true
			st.remaining.Add(requirement.Foundry(fid))
			st.remaining.Add(requirement.Alias(controllingAlias))
		}
	}

	st.remaining.Add(requirement.Amount(amountTotal))
	for id, qty := range tokenTotals {
		st.remaining.Add(requirement.NativeToken(id, qty))
	}
	return nil
}

func addSender(set *requirement.Set, seen map[string]bool, addr iotago.Address) {
	key := addr.Bytes()
	k := string(append([]byte{byte(addr.Kind())}, key...))
	if seen[k] {
		return
	}
	seen[k] = true
	set.Add(requirement.Sender(addr))
}

// ---- main loop dispatch (spec.md §4.4 step 2) ----

func (st *state) serve(req requirement.Requirement) error {
	switch req.Kind {
	case requirement.KindAlias:
		return st.serveAlias(req)
	case requirement.KindFoundry:
		return st.serveFoundry(req)
	case requirement.KindNft:
		return st.serveNft(req)
	case requirement.KindIssuer, requirement.KindSender:
		return st.serveSenderOrIssuer(req)
	case requirement.KindNativeToken:
		return st.serveNativeToken(req)
	case requirement.KindAmount:
		return st.serveAmount(req)
	}
	return nil
}

func (st *state) selectInput(c iotago.InputSigningData) {
	st.selected = append(st.selected, c)
	for i, a := range st.available {
		if a.OutputID == c.OutputID {
			st.available = append(st.available[:i:i], st.available[i+1:]...)
			break
		}
	}
	if sdr := c.Output.UnlockConditions().SDRNotExpired(st.time); sdr != nil {
		st.outputs = append(st.outputs, &iotago.BasicOutput{
			OutputAmount: sdr.ReturnAmount,
			Conditions: iotago.UnlockConditions{
				Address: &iotago.AddressUnlockCondition{Address: sdr.ReturnAddress},
			},
		})
	}
}

func (st *state) resolveAlias(id iotago.AliasID) (iotago.Address, bool) {
	if addr, ok := st.aliasAddress[id]; ok {
		return addr, true
	}
	for _, c := range st.available {
		if ao, ok := c.Output.(*iotago.AliasOutput); ok && ao.ResolvedID(c.OutputID) == id {
			return ao.StateController, true
		}
	}
	return nil, false
}

// ensureAliasOutput appends a passthrough output for id at amount, unless
// the caller's desired outputs already carry a transition for it.
func (st *state) ensureAliasOutput(id iotago.AliasID, ao *iotago.AliasOutput, amount uint64) {
	if st.desiredAlias[id] {
		return
	}
	if _, already := st.aliasOutput[id]; already {
		return
	}
	clone := ao.Clone().(*iotago.AliasOutput)
	clone.AliasID = id
	clone.OutputAmount = amount
	st.outputs = append(st.outputs, clone)
	st.aliasOutput[id] = clone
}

func (st *state) ensureNftOutput(id iotago.NFTID, no *iotago.NFTOutput, amount uint64) {
	if st.desiredNft[id] {
		return
	}
	if _, already := st.nftOutput[id]; already {
		return
	}
	clone := no.Clone().(*iotago.NFTOutput)
	clone.NFTID = id
	clone.OutputAmount = amount
	st.outputs = append(st.outputs, clone)
	st.nftOutput[id] = clone
}

func (st *state) findAlias(id iotago.AliasID) (iotago.InputSigningData, *iotago.AliasOutput, bool) {
	for _, c := range st.available {
		if ao, ok := c.Output.(*iotago.AliasOutput); ok && ao.ResolvedID(c.OutputID) == id {
			return c, ao, true
		}
	}
	return iotago.InputSigningData{}, nil, false
}

func (st *state) findNft(id iotago.NFTID) (iotago.InputSigningData, *iotago.NFTOutput, bool) {
	for _, c := range st.available {
		if no, ok := c.Output.(*iotago.NFTOutput); ok && no.ResolvedID(c.OutputID) == id {
			return c, no, true
		}
	}
	return iotago.InputSigningData{}, nil, false
}

func (st *state) findFoundry(id iotago.FoundryID) (iotago.InputSigningData, *iotago.FoundryOutput, bool) {
	for _, c := range st.available {
		if fo, ok := c.Output.(*iotago.FoundryOutput); ok && fo.ID() == id {
			return c, fo, true
		}
	}
	return iotago.InputSigningData{}, nil, false
}

func (st *state) serveAlias(req requirement.Requirement) error {
	id := req.AliasID
	if st.aliasSelected[id] {
		if ao := st.aliasOutput[id]; ao == nil && !st.burn.HasAlias(id) {
			// Already selected via a Sender/Issuer chain but not yet
			// surfaced as a passthrough output.
			if cand, ok := st.selectedAliasCandidate(id); ok {
				st.ensureAliasOutput(id, cand, cand.Amount())
			}
		}
		return nil
	}
	cand, ao, ok := st.findAlias(id)
	if !ok {
		return &iotago.UnfulfillableRequirementError{Requirement: req}
	}
	st.selectInput(cand)
	st.aliasSelected[id] = true
	st.aliasAddress[id] = ao.StateController
	if !st.burn.HasAlias(id) {
		st.ensureAliasOutput(id, ao, ao.Amount())
	}
	return nil
}

func (st *state) selectedAliasCandidate(id iotago.AliasID) (*iotago.AliasOutput, bool) {
	for _, c := range st.selected {
		if ao, ok := c.Output.(*iotago.AliasOutput); ok && ao.ResolvedID(c.OutputID) == id {
			return ao, true
		}
	}
	return nil, false
}

func (st *state) serveNft(req requirement.Requirement) error {
	id := req.NftID
	if st.nftSelected[id] {
		return nil
	}
	cand, no, ok := st.findNft(id)
	if !ok {
		return &iotago.UnfulfillableRequirementError{Requirement: req}
	}
	st.selectInput(cand)
	st.nftSelected[id] = true
	if !st.burn.HasNFT(id) {
		st.ensureNftOutput(id, no, no.Amount())
	}
	return nil
}

func (st *state) serveFoundry(req requirement.Requirement) error {
	id := req.FoundryID
	cand, fo, ok := st.findFoundry(id)
	if !ok {
		return &iotago.UnfulfillableRequirementError{Requirement: req}
	}
	st.selectInput(cand)
	controllingAlias := fo.ImmutableAlias.ID
	if !st.remaining.HasAlias(controllingAlias) && !st.aliasSelected[controllingAlias] {
		st.remaining.Add(requirement.Alias(controllingAlias))
	}
	if !st.burn.HasFoundry(id, controllingAlias) && !st.desiredFoundry[id] {
		st.outputs = append(st.outputs, fo.Clone())
	}
	return nil
}

func (st *state) serveSenderOrIssuer(req requirement.Requirement) error {
	addr := req.Address
	cand, ok := st.findUnlockedBy(addr)
	if !ok {
		return &iotago.UnfulfillableRequirementError{Requirement: req}
	}
	st.selectInput(cand)
	switch out := cand.Output.(type) {
	case *iotago.AliasOutput:
		id := out.ResolvedID(cand.OutputID)
		st.aliasSelected[id] = true
		st.aliasAddress[id] = out.StateController
		if !st.burn.HasAlias(id) {
			st.ensureAliasOutput(id, out, out.Amount())
		}
	case *iotago.NFTOutput:
		id := out.ResolvedID(cand.OutputID)
		st.nftSelected[id] = true
		if !st.burn.HasNFT(id) {
			st.ensureNftOutput(id, out, out.Amount())
		}
	}
	return nil
}

func (st *state) findUnlockedBy(addr iotago.Address) (iotago.InputSigningData, bool) {
	for _, c := range st.available {
		if unlockable.By(c.Output, addr, st.time, st.resolveAlias) {
			return c, true
		}
	}
	return iotago.InputSigningData{}, false
}

func (st *state) serveNativeToken(req requirement.Requirement) error {
	need := req.Quantity
	if need == nil || need.Sign() <= 0 {
		return nil
	}
	var best iotago.InputSigningData
	var bestQty *uint256.Int
	found := false
	for _, c := range st.available {
		qty := c.Output.NativeTokens().Get(req.TokenID)
		if qty.Sign() <= 0 {
			continue
		}
		if !found || qty.Cmp(bestQty) > 0 {
			best, bestQty, found = c, qty, true
		}
	}
	if !found {
		selectedQty := st.sumSelectedTokens()[req.TokenID]
		if selectedQty == nil {
			selectedQty = uint256.NewInt(0)
		}
		return &iotago.InsufficientNativeTokenAmountError{
			TokenID:  req.TokenID,
			Found:    selectedQty,
			Required: new(uint256.Int).Add(selectedQty, need),
		}
	}
	st.selectInput(best)
	return nil
}

func (st *state) bestAmountCandidate() (iotago.InputSigningData, uint64, bool) {
	var basics, identities []iotago.InputSigningData
	for _, c := range st.available {
		switch c.Output.(type) {
		case *iotago.BasicOutput:
			basics = append(basics, c)
		case *iotago.AliasOutput, *iotago.NFTOutput:
			identities = append(identities, c)
		}
	}
	sortByUnlockableDesc := func(list []iotago.InputSigningData) {
		sort.SliceStable(list, func(i, j int) bool {
			ai, aj := st.unlockableAmount(list[i]), st.unlockableAmount(list[j])
			if ai != aj {
				return ai > aj
			}
			return list[i].OutputID.Less(list[j].OutputID)
		})
	}
	sortByUnlockableDesc(basics)
	sortByUnlockableDesc(identities)
	for _, c := range append(basics, identities...) {
		if amt := st.unlockableAmount(c); amt > 0 {
			return c, amt, true
		}
	}
	return iotago.InputSigningData{}, 0, false
}

func (st *state) unlockableAmount(c iotago.InputSigningData) uint64 {
	amt := c.Output.Amount()
	uc := c.Output.UnlockConditions()
	if sdr := uc.SDRNotExpired(st.time); sdr != nil {
		if sdr.ReturnAmount >= amt {
			return 0
		}
		amt -= sdr.ReturnAmount
	}
	switch out := c.Output.(type) {
	case *iotago.AliasOutput:
		min := rent.MinimumAmount(out, st.params.RentStructure)
		if min >= amt {
			return 0
		}
		return amt - min
	case *iotago.NFTOutput:
		min := rent.MinimumAmount(out, st.params.RentStructure)
		if min >= amt {
			return 0
		}
		return amt - min
	default:
		return amt
	}
}

func (st *state) serveAmount(req requirement.Requirement) error {
	if req.Amount == 0 {
		return nil
	}
	cand, amt, ok := st.bestAmountCandidate()
	if !ok {
		return &iotago.InsufficientBaseTokenAmountError{
			Found:    st.sumSelectedAmounts(),
			Required: st.sumOutputAmounts() + st.projectedRemainderMinimum(),
		}
	}
	switch out := cand.Output.(type) {
	case *iotago.AliasOutput:
		id := out.ResolvedID(cand.OutputID)
		st.selectInput(cand)
		st.aliasSelected[id] = true
		st.aliasAddress[id] = out.StateController
		min := rent.MinimumAmount(out, st.params.RentStructure)
		if !st.burn.HasAlias(id) {
			st.ensureAliasOutput(id, out, min)
		}
	case *iotago.NFTOutput:
		id := out.ResolvedID(cand.OutputID)
		st.selectInput(cand)
		st.nftSelected[id] = true
		min := rent.MinimumAmount(out, st.params.RentStructure)
		if !st.burn.HasNFT(id) {
			st.ensureNftOutput(id, out, min)
		}
	default:
		st.selectInput(cand)
	}
	_ = amt
	return nil
}

// ---- derived-obligation refresh ----

func (st *state) sumOutputAmounts() uint64 {
	var total uint64
	for _, o := range st.outputs {
		total += o.Amount()
	}
	return total
}

func (st *state) sumSelectedAmounts() uint64 {
	var total uint64
	for _, c := range st.selected {
		total += c.Output.Amount()
	}
	return total
}

func (st *state) sumOutputTokens() map[iotago.NativeTokenID]*uint256.Int {
	totals := map[iotago.NativeTokenID]*uint256.Int{}
	for _, o := range st.outputs {
		for id, qty := range o.NativeTokens() {
			if existing, ok := totals[id]; ok {
				existing.Add(existing, qty)
			} else {
				totals[id] = new(uint256.Int).Set(qty)
			}
		}
	}
	return totals
}

func (st *state) sumSelectedTokens() map[iotago.NativeTokenID]*uint256.Int {
	totals := map[iotago.NativeTokenID]*uint256.Int{}
	for _, c := range st.selected {
		for id, qty := range c.Output.NativeTokens() {
			if existing, ok := totals[id]; ok {
				existing.Add(existing, qty)
			} else {
				totals[id] = new(uint256.Int).Set(qty)
			}
		}
	}
	return totals
}

// refreshAmountRequirements recomputes the Amount and NativeToken
// requirements from the current output/input totals, replacing whatever
// was queued before (spec.md §4.4 step 3's "update derived obligations",
// modeled as a recomputed shortfall rather than incremental pushes —
// equivalent in outcome, see DESIGN.md).
func (st *state) refreshAmountRequirements() {
	outAmt, inAmt := st.sumOutputAmounts(), st.sumSelectedAmounts()
	var shortfall uint64
	if outAmt > inAmt {
		shortfall = outAmt - inAmt
	}
	st.remaining.SetAmount(shortfall)

	outTokens, inTokens := st.sumOutputTokens(), st.sumSelectedTokens()
	for id, outQty := range outTokens {
		inQty, ok := inTokens[id]
		if !ok {
			inQty = uint256.NewInt(0)
		}
		if outQty.Cmp(inQty) > 0 {
			st.remaining.SetNativeToken(id, new(uint256.Int).Sub(outQty, inQty))
		} else {
			st.remaining.SetNativeToken(id, uint256.NewInt(0))
		}
	}
}

func (st *state) projectedRemainderMinimum() uint64 {
	addr := st.remainderAddressOrDefault()
	surplus := st.tokenSurplus()
	return rent.MinimumBasicOutput(addr, surplus, st.params.RentStructure)
}

func (st *state) remainderAddressOrDefault() iotago.Address {
	if st.remainderAddress != nil {
		return st.remainderAddress
	}
	if len(st.selected) > 0 {
		if addr := controllingAddress(st.selected[0].Output); addr != nil {
			return addr
		}
	}
	return iotago.Ed25519Address{}
}

func controllingAddress(o iotago.Output) iotago.Address {
	switch out := o.(type) {
	case *iotago.BasicOutput:
		if out.Conditions.Address != nil {
			return out.Conditions.Address.Address
		}
	case *iotago.AliasOutput:
		return out.StateController
	case *iotago.NFTOutput:
		return out.AddressUnlock
	}
	return nil
}

func (st *state) tokenSurplus() iotago.NativeTokenBag {
	in := st.sumSelectedTokens()
	out := st.sumOutputTokens()
	surplus := iotago.NativeTokenBag{}
	for id, inQty := range in {
		outQty, ok := out[id]
		if !ok {
			outQty = uint256.NewInt(0)
		}
		if burned := st.burn.NativeTokenAmount(id); burned.Sign() > 0 {
			outQty = new(uint256.Int).Add(outQty, burned)
		}
		if inQty.Cmp(outQty) > 0 {
			surplus[id] = new(uint256.Int).Sub(inQty, outQty)
		}
	}
	return surplus
}

// ---- remainder synthesis (spec.md §4.4 "Remainder handling") ----

func (st *state) synthesizeRemainder() error {
	inAmt, outAmt := st.sumSelectedAmounts(), st.sumOutputAmounts()
	var base uint64
	if inAmt > outAmt {
		base = inAmt - outAmt
	}
	surplus := st.tokenSurplus()

	if base == 0 && len(surplus) == 0 {
		return nil
	}

	addr := st.remainderAddressOrDefault()
	min := rent.MinimumBasicOutput(addr, surplus, st.params.RentStructure)

	if base < min {
		gap := min - base
		if st.freeSlack(gap) {
			base += gap
		} else if cand, amt, ok := st.bestAmountCandidate(); ok {
			st.selectInput(cand)
			_ = amt
			return st.synthesizeRemainder()
		} else if base == 0 {
			return &iotago.InsufficientBaseTokenAmountError{
				Found:    inAmt,
				Required: outAmt + min,
			}
		} else {
			return &iotago.InsufficientStorageDepositAmountError{Amount: base, Required: min}
		}
	}

	st.outputs = append(st.outputs, &iotago.BasicOutput{
		OutputAmount: base,
		Tokens:       surplus,
		Conditions: iotago.UnlockConditions{
			Address: &iotago.AddressUnlockCondition{Address: addr},
		},
	})
	return nil
}

// freeSlack reduces an already-synthesized identity passthrough output's
// amount by gap, if one has that much slack above its own storage
// minimum (spec.md §9 design note: "take amount from nft/alias slack").
func (st *state) freeSlack(gap uint64) bool {
	for _, ao := range st.aliasOutput {
		min := rent.MinimumAmount(ao, st.params.RentStructure)
		if ao.OutputAmount >= min+gap {
			ao.OutputAmount -= gap
			return true
		}
	}
	for _, no := range st.nftOutput {
		min := rent.MinimumAmount(no, st.params.RentStructure)
		if no.OutputAmount >= min+gap {
			no.OutputAmount -= gap
			return true
		}
	}
	return false
}
