// Copyright © 2020 AMIS Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package record looks up Euclidea's published world-record digit counts,
// backing the CLI's --check-wr/--try-wr flags. It is a thin client: one
// GET request, optional gzip decompression, one JSON decode.
package record

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/getamis/sirius/log"
)

const apiBase = "http://www.euclidea.xyz/api/v1/game/numbers/solutions/records"

// Client fetches world records from the Euclidea API.
type Client struct {
	HTTPClient *http.Client
	// BaseURL overrides apiBase; left empty, NewClient's default is used.
	// Tests point this at an httptest.Server.
	BaseURL string
	log      log.Logger
}

// NewClient builds a Client using http.DefaultClient.
func NewClient() *Client {
	return &Client{HTTPClient: http.DefaultClient, BaseURL: apiBase, log: log.Discard()}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return apiBase
}

// SetLogger overrides the client's logger.
func (c *Client) SetLogger(l log.Logger) { c.log = l }

type recordsResponse struct {
	Records []struct {
		Target      string `json:"target"`
		Digits      string `json:"digits"`
		DigitsCount string `json:"digits_count"`
	} `json:"records"`
}

// SingleRecord returns the published minimum digit count for (target,
// digit), or ok=false if no record exists.
func (c *Client) SingleRecord(ctx context.Context, target int64, digit uint64) (count int, ok bool, err error) {
	url := fmt.Sprintf("%s?query=[%d,%d]", c.baseURL(), target, digit)
	resp, err := c.fetch(ctx, url)
	if err != nil {
		return 0, false, err
	}
	if len(resp.Records) == 0 {
		return 0, false, nil
	}
	var n int
	if _, err := fmt.Sscanf(resp.Records[0].DigitsCount, "%d", &n); err != nil {
		return 0, false, err
	}
	return n, true, nil
}

// NumberRecords returns the published record, per digit, for a single
// target.
func (c *Client) NumberRecords(ctx context.Context, target int64) (map[uint64]int, error) {
	url := fmt.Sprintf("%s?query=%d", c.baseURL(), target)
	resp, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	out := map[uint64]int{}
	for _, r := range resp.Records {
		var rtarget int64
		var digit uint64
		var count int
		if _, err := fmt.Sscanf(r.Target, "%d", &rtarget); err != nil {
			continue
		}
		if rtarget != target {
			continue
		}
		if _, err := fmt.Sscanf(r.Digits, "%d", &digit); err != nil {
			continue
		}
		if _, err := fmt.Sscanf(r.DigitsCount, "%d", &count); err != nil {
			continue
		}
		out[digit] = count
	}
	return out, nil
}

// BatchRecords returns the published record, per digit, for every target
// in [start, end], seeded with the trivial repunit records the API itself
// omits (a run of n's is always its own record).
func (c *Client) BatchRecords(ctx context.Context, start, end int64) (map[uint64]map[int64]int, error) {
	url := fmt.Sprintf("%s?query={gte:%d,lte:%d}", c.baseURL(), start, end)
	resp, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]map[int64]int, 9)
	for digit := uint64(1); digit <= 9; digit++ {
		out[digit] = map[int64]int{}
	}
	for _, r := range resp.Records {
		var target int64
		var digit uint64
		var count int
		if _, err := fmt.Sscanf(r.Target, "%d", &target); err != nil {
			continue
		}
		if _, err := fmt.Sscanf(r.Digits, "%d", &digit); err != nil {
			continue
		}
		if _, err := fmt.Sscanf(r.DigitsCount, "%d", &count); err != nil {
			continue
		}
		if target < 1 || target > 999999999 || digit < 1 || digit > 9 {
			continue
		}
		out[digit][target] = count
	}
	for digit := uint64(1); digit <= 9; digit++ {
		for length := int64(1); length <= 9; length++ {
			target := repunit(digit, length)
			if target < start || target > end {
				continue
			}
			if _, ok := out[digit][target]; !ok {
				out[digit][target] = int(length)
			}
		}
	}
	return out, nil
}

func repunit(digit uint64, length int64) int64 {
	var v int64
	for i := int64(0); i < length; i++ {
		v = v*10 + int64(digit)
	}
	return v
}

func (c *Client) fetch(ctx context.Context, url string) (*recordsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	c.log.Debug("fetching world record", "url", url)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body := resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	var out recordsResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
