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

// Command iota-select-demo loads a set of candidate outputs against a
// fixed set of desired outputs and runs the selection engine end to end,
// the runnable counterpart to the transaction-building walkthroughs in
// the original Rust client's examples.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/crypto/blake2b"

	_ "go.uber.org/automaxprocs"

	"github.com/iotaledger/iota-client-go/internal/candidatecache"
	"github.com/iotaledger/iota-client-go/internal/config"
	"github.com/iotaledger/iota-client-go/internal/indexerclient"
	"github.com/iotaledger/iota-client-go/internal/logging"
	"github.com/iotaledger/iota-client-go/internal/nodeclient"
	"github.com/iotaledger/iota-client-go/internal/signer"
	"github.com/iotaledger/iota-client-go/inputselection"
	"github.com/iotaledger/iota-client-go/iotago"
)

const programName = "iota-select-demo"

var cmdlineFlags struct {
	configFile string
	address    string
}

func main() {
	flag.StringVar(&cmdlineFlags.configFile, "config", "", "path to config file to load")
	flag.StringVar(&cmdlineFlags.address, "address", "", "bech32 sender address to fund the demo transfer from")
	flag.Parse()

	cfg, err := config.Load(cmdlineFlags.configFile)
	if err != nil {
		fmt.Printf("failed to load config: %s\n", err)
		os.Exit(1)
	}

	logging.Configure()
	logger := logging.GetLogger()

	if cfg.Debug.ListenPort > 0 {
		logger.Info("starting debug listener", "address", cfg.Debug.ListenAddress, "port", cfg.Debug.ListenPort)
		go func() {
			addr := fmt.Sprintf("%s:%d", cfg.Debug.ListenAddress, cfg.Debug.ListenPort)
			if err := http.ListenAndServe(addr, nil); err != nil {
				logger.Error("debug listener stopped", "error", err)
			}
		}()
	}

	params := cfg.Params
	if len(cfg.Node.URLs) > 0 {
		fetched, err := nodeclient.New(cfg.Node.URLs).Info()
		if err != nil {
			logger.Warn("falling back to locally configured protocol parameters", "error", err)
		} else {
			params = fetched
		}
	}

	var candidates []iotago.InputSigningData
	var sender iotago.Address
	if cmdlineFlags.address != "" {
		candidates, sender, err = loadCandidates(cfg, cmdlineFlags.address)
		if err != nil {
			logger.Error("failed to load candidates", "error", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(programName + ": demonstrating selection against a synthetic candidate set (-address not given)")
		syntheticSender := demoAddress(1)
		sender = syntheticSender
		candidates = []iotago.InputSigningData{
			{
				Output:   &iotago.BasicOutput{OutputAmount: 3_000_000, Conditions: iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: syntheticSender}}},
				OutputID: demoOutputID(1),
				Chain:    []uint32{0},
			},
		}
	}

	receiver := demoAddress(2)
	desiredOutputs := []iotago.Output{
		&iotago.BasicOutput{OutputAmount: 1_000_000, Conditions: iotago.UnlockConditions{Address: &iotago.AddressUnlockCondition{Address: receiver}}},
	}

	selected, err := inputselection.New(candidates, desiredOutputs, params).
		RemainderAddress(sender).
		Select()
	if err != nil {
		logger.Error("selection failed", "error", err)
		os.Exit(1)
	}

	logger.Info("selection complete",
		"inputsSelected", len(selected.Inputs),
		"outputsProduced", len(selected.Outputs),
	)
	for i, out := range selected.Outputs {
		logger.Info("output", "index", i, "kind", out.Kind().String(), "amount", out.Amount())
	}

	sigs, err := signer.SignInputs(demoSigner(), demoEssence(selected), selected.Inputs)
	if err != nil {
		logger.Error("signing failed", "error", err)
		os.Exit(1)
	}
	logger.Info("signed selected inputs", "count", len(sigs))
}

// loadCandidates fetches an address's unspent outputs from the configured
// indexer, caching the result locally so a retried run doesn't need to hit
// the indexer again.
func loadCandidates(cfg *config.Config, bech32Addr string) ([]iotago.InputSigningData, iotago.Address, error) {
	if cfg.Indexer.URL == "" {
		return nil, nil, fmt.Errorf("indexer URL not configured, pass -config or set INDEXER_URL")
	}
	if err := candidatecache.Load(); err != nil {
		return nil, nil, fmt.Errorf("opening candidate cache: %w", err)
	}
	cached, err := candidatecache.GetCache().Get(bech32Addr)
	if err != nil {
		return nil, nil, fmt.Errorf("reading cached candidates: %w", err)
	}
	if len(cached) == 0 {
		candidates, err := indexerclient.New(cfg.Indexer.URL).OutputsByAddress(bech32Addr)
		if err != nil {
			return nil, nil, fmt.Errorf("querying indexer: %w", err)
		}
		if err := candidatecache.GetCache().Put(bech32Addr, candidates); err != nil {
			return nil, nil, fmt.Errorf("caching candidates: %w", err)
		}
		cached, err = candidatecache.GetCache().Get(bech32Addr)
		if err != nil {
			return nil, nil, fmt.Errorf("reading cached candidates: %w", err)
		}
	}
	sender, err := iotago.ParseBech32Address(cfg.Params.Bech32HRP, bech32Addr)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing sender address: %w", err)
	}
	return cached, sender, nil
}

// demoSigner derives a fixed in-memory signer from the configured wallet
// mnemonic, for demonstration purposes only.
func demoSigner() *signer.InMemorySigner {
	seed := blake2b.Sum256([]byte(config.GetConfig().Wallet.Mnemonic))
	return signer.NewInMemorySigner(seed[:])
}

// demoEssence stands in for a real transaction essence hash; this example
// only demonstrates wiring the selection result into the signer, not full
// transaction construction.
func demoEssence(selected *inputselection.Selected) []byte {
	h := blake2b.Sum256([]byte(fmt.Sprintf("%d-%d", len(selected.Inputs), len(selected.Outputs))))
	return h[:]
}

func demoAddress(b byte) iotago.Ed25519Address {
	var a iotago.Ed25519Address
	a[0] = b
	return a
}

func demoOutputID(b byte) iotago.OutputID {
	var txID [32]byte
	txID[0] = b
	return iotago.NewOutputID(txID, 0)
}
