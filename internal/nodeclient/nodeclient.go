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

// Package nodeclient talks to one or more IOTA node REST endpoints to fetch
// protocol parameters and submit finished blocks, the way the teacher's
// txsubmit package POSTs a finished transaction to a Cardano submit API.
package nodeclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/iotaledger/iota-client-go/internal/logging"
	"github.com/iotaledger/iota-client-go/iotago"
)

// Client queries a set of node URLs for protocol parameters and submits
// signed blocks to them. More than one URL lets Info reach quorum agreement
// instead of trusting a single node's view of the network.
type Client struct {
	urls []string
	http *http.Client
}

func New(urls []string) *Client {
	return &Client{
		urls: urls,
		http: http.DefaultClient,
	}
}

// infoResponse mirrors the subset of a node's /api/core/v2/info body this
// client cares about.
type infoResponse struct {
	Protocol struct {
		NetworkName   string `json:"networkName"`
		Bech32HRP     string `json:"bech32Hrp"`
		MinPoWScore   float64 `json:"minPowScore"`
		BelowMaxDepth uint8  `json:"belowMaxDepth"`
		RentStructure struct {
			VByteCost       uint32 `json:"vByteCost"`
			VByteFactorKey  uint8  `json:"vByteFactorKey"`
			VByteFactorData uint8  `json:"vByteFactorData"`
		} `json:"rentStructure"`
		TokenSupply uint64 `json:"tokenSupply"`
	} `json:"protocol"`
}

// Info fetches protocol parameters from every configured node and requires
// every node that answers to agree before returning, guarding a caller that
// selects inputs against acting on a single stale or misconfigured node's
// view. Nodes that fail to answer are logged and skipped.
func (c *Client) Info() (iotago.ProtocolParameters, error) {
	if len(c.urls) == 0 {
		return iotago.ProtocolParameters{}, fmt.Errorf("nodeclient: no node URLs configured")
	}
	logger := logging.GetLogger()
	var quorum iotago.ProtocolParameters
	quorumURL := ""
	for _, url := range c.urls {
		params, err := fetchInfo(c.http, url)
		if err != nil {
			logger.Warn("failed to fetch node info", "url", url, "error", err)
			continue
		}
		if quorumURL == "" {
			quorum, quorumURL = params, url
			continue
		}
		if params != quorum {
			return iotago.ProtocolParameters{}, fmt.Errorf(
				"nodeclient: protocol parameters disagree between %s and %s",
				quorumURL,
				url,
			)
		}
	}
	if quorum.NetworkName == "" {
		return iotago.ProtocolParameters{}, fmt.Errorf("nodeclient: no node returned protocol parameters")
	}
	return quorum, nil
}

func fetchInfo(client *http.Client, url string) (iotago.ProtocolParameters, error) {
	resp, err := client.Get(url + "/api/core/v2/info")
	if err != nil {
		return iotago.ProtocolParameters{}, fmt.Errorf("failed to send request: %s: %w", url, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return iotago.ProtocolParameters{}, fmt.Errorf("failed to read response body: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return iotago.ProtocolParameters{}, fmt.Errorf("unexpected response: %s: %d: %s", url, resp.StatusCode, body)
	}
	var parsed infoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return iotago.ProtocolParameters{}, fmt.Errorf("failed to parse node info: %w", err)
	}
	return iotago.ProtocolParameters{
		NetworkName:   parsed.Protocol.NetworkName,
		Bech32HRP:     parsed.Protocol.Bech32HRP,
		MinPoWScore:   parsed.Protocol.MinPoWScore,
		BelowMaxDepth: parsed.Protocol.BelowMaxDepth,
		RentStructure: iotago.RentStructure{
			VByteCost:       parsed.Protocol.RentStructure.VByteCost,
			VByteFactorKey:  parsed.Protocol.RentStructure.VByteFactorKey,
			VByteFactorData: parsed.Protocol.RentStructure.VByteFactorData,
		},
		TokenSupply: parsed.Protocol.TokenSupply,
	}, nil
}

// SubmitBlock POSTs a finished, signed block to the first node that accepts
// it, trying the rest of the configured URLs in order on failure.
func (c *Client) SubmitBlock(blockBytes []byte) (blockID string, err error) {
	if len(c.urls) == 0 {
		return "", fmt.Errorf("nodeclient: no node URLs configured")
	}
	logger := logging.GetLogger()
	var lastErr error
	for _, url := range c.urls {
		id, err := submitBlock(c.http, url, blockBytes)
		if err != nil {
			logger.Warn("failed to submit block", "url", url, "error", err)
			lastErr = err
			continue
		}
		return id, nil
	}
	return "", fmt.Errorf("nodeclient: all nodes rejected submission: %w", lastErr)
}

func submitBlock(client *http.Client, url string, blockBytes []byte) (string, error) {
	req, err := http.NewRequest(http.MethodPost, url+"/api/core/v2/blocks", bytes.NewBuffer(blockBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("Content-Type", "application/vnd.iota.serializer-v2")
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %s: %w", url, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected response: %s: %d: %s", url, resp.StatusCode, body)
	}
	var parsed struct {
		Data struct {
			BlockID string `json:"blockId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse submission response: %w", err)
	}
	return parsed.Data.BlockID, nil
}
