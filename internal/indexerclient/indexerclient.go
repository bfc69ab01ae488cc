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

// Package indexerclient discovers an address's unspent outputs by polling a
// node's indexer REST API. The teacher's internal/indexer instead subscribes
// to a chain-sync pipeline and tracks UTxOs incrementally as blocks arrive;
// IOTA nodes expose no equivalent sync protocol to a light client, so this
// package is restructured into a pull-based query issued on demand, with the
// teacher's UTxO bookkeeping handled downstream by candidatecache instead.
package indexerclient

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/iotaledger/iota-client-go/internal/logging"
	"github.com/iotaledger/iota-client-go/iotago"
)

// outputKinds enumerates the indexer sub-resources queried for a given
// address. Treasury outputs are never address-owned and are never queried.
var outputKinds = []struct {
	path string
	kind iotago.OutputKind
}{
	{"basic", iotago.OutputBasic},
	{"alias", iotago.OutputAlias},
	{"nft", iotago.OutputNFT},
	{"foundry", iotago.OutputFoundry},
}

type Client struct {
	url  string
	http *http.Client
}

func New(url string) *Client {
	return &Client{url: url, http: http.DefaultClient}
}

type outputIDsResponse struct {
	Items []string `json:"items"`
}

type outputResponse struct {
	Metadata struct {
		BlockID      string `json:"blockId"`
		TransactionID string `json:"transactionId"`
		OutputIndex  uint16 `json:"outputIndex"`
	} `json:"metadata"`
	Output json.RawMessage `json:"output"`
}

// OutputsByAddress returns every unspent output the indexer currently
// attributes to bech32Addr, wrapped as input signing data the same shape
// the engine and a downstream signer both consume (spec.md §3).
func (c *Client) OutputsByAddress(bech32Addr string) ([]iotago.InputSigningData, error) {
	logger := logging.GetLogger()
	var results []iotago.InputSigningData
	for _, ok := range outputKinds {
		ids, err := c.queryOutputIDs(ok.path, bech32Addr)
		if err != nil {
			return nil, fmt.Errorf("indexerclient: querying %s outputs: %w", ok.path, err)
		}
		logger.Debug("indexer returned candidate outputs", "kind", ok.path, "address", bech32Addr, "count", len(ids))
		for _, outputIDHex := range ids {
			isd, err := c.fetchOutput(outputIDHex, bech32Addr)
			if err != nil {
				return nil, fmt.Errorf("indexerclient: fetching output %s: %w", outputIDHex, err)
			}
			results = append(results, isd)
		}
	}
	return results, nil
}

func (c *Client) queryOutputIDs(kindPath, bech32Addr string) ([]string, error) {
	url := fmt.Sprintf("%s/api/indexer/v2/outputs/%s?address=%s", c.url, kindPath, bech32Addr)
	resp, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %s: %w", url, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response: %s: %d: %s", url, resp.StatusCode, body)
	}
	var parsed outputIDsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse output id list: %w", err)
	}
	return parsed.Items, nil
}

func (c *Client) fetchOutput(outputIDHex, bech32Addr string) (iotago.InputSigningData, error) {
	url := fmt.Sprintf("%s/api/core/v2/outputs/%s", c.url, outputIDHex)
	resp, err := c.http.Get(url)
	if err != nil {
		return iotago.InputSigningData{}, fmt.Errorf("failed to send request: %s: %w", url, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return iotago.InputSigningData{}, fmt.Errorf("failed to read response body: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return iotago.InputSigningData{}, fmt.Errorf("unexpected response: %s: %d: %s", url, resp.StatusCode, body)
	}
	var parsed outputResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return iotago.InputSigningData{}, fmt.Errorf("failed to parse output: %w", err)
	}
	output, err := decodeOutput(parsed.Output)
	if err != nil {
		return iotago.InputSigningData{}, fmt.Errorf("failed to decode output body: %w", err)
	}
	outputIDBytes, err := hex.DecodeString(outputIDHex)
	if err != nil || len(outputIDBytes) != 34 {
		return iotago.InputSigningData{}, fmt.Errorf("malformed output id: %s", outputIDHex)
	}
	var outputID iotago.OutputID
	copy(outputID[:], outputIDBytes)
	return iotago.InputSigningData{
		Output:        output,
		OutputID:      outputID,
		Bech32Address: bech32Addr,
	}, nil
}

// wireOutput is the JSON shape shared by every output kind; unused fields
// for a given kind are left at their zero value.
type wireOutput struct {
	Type          uint8  `json:"type"`
	Amount        string `json:"amount"`
	AliasID       string `json:"aliasId"`
	NFTID         string `json:"nftId"`
	StateIndex    uint32 `json:"stateIndex"`
	StateMetadata string `json:"stateMetadata"`
}

// decodeOutput turns an indexer/node JSON output body into the tagged
// Output union the engine operates over. Only the amount, the identity
// fields and an alias's state index and metadata are decoded; unlock
// conditions, features, native tokens and foundry fields are not, so the
// returned outputs carry none of them.
func decodeOutput(raw json.RawMessage) (iotago.Output, error) {
	var w wireOutput
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	amount, err := parseAmount(w.Amount)
	if err != nil {
		return nil, err
	}
	switch iotago.OutputKind(w.Type) {
	case iotago.OutputBasic:
		return &iotago.BasicOutput{OutputAmount: amount}, nil
	case iotago.OutputAlias:
		var aliasID iotago.AliasID
		if w.AliasID != "" {
			b, err := hex.DecodeString(w.AliasID)
			if err != nil {
				return nil, err
			}
			copy(aliasID[:], b)
		}
		return &iotago.AliasOutput{
			OutputAmount:  amount,
			AliasID:       aliasID,
			StateIndex:    w.StateIndex,
			StateMetadata: []byte(w.StateMetadata),
		}, nil
	case iotago.OutputNFT:
		var nftID iotago.NFTID
		if w.NFTID != "" {
			b, err := hex.DecodeString(w.NFTID)
			if err != nil {
				return nil, err
			}
			copy(nftID[:], b)
		}
		return &iotago.NFTOutput{OutputAmount: amount, NFTID: nftID}, nil
	case iotago.OutputFoundry:
		return &iotago.FoundryOutput{OutputAmount: amount}, nil
	default:
		return nil, fmt.Errorf("unsupported output type: %d", w.Type)
	}
}

func parseAmount(s string) (uint64, error) {
	var amount uint64
	if _, err := fmt.Sscanf(s, "%d", &amount); err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", s, err)
	}
	return amount, nil
}
