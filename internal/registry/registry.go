// Package registry talks to the REC registry to verify captured panel serial
// numbers against the official record and the CEC approved-product list.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SerialResult is the per-serial outcome of a registry check.
type SerialResult struct {
	SerialNumber     string `json:"serial_number"`
	ExistsInRegistry bool   `json:"exists_in_registry"`
	AlreadyClaimed   bool   `json:"already_claimed"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	Model            string `json:"model,omitempty"`
	CECApproved      bool   `json:"cec_approved"`
	Wattage          *int32 `json:"wattage,omitempty"`
}

// Valid reports whether the serial passed every check.
func (r SerialResult) Valid() bool {
	return r.ExistsInRegistry && !r.AlreadyClaimed && r.CECApproved
}

// Summary aggregates a batch of results.
type Summary struct {
	Total          int `json:"total"`
	Valid          int `json:"valid"`
	Duplicates     int `json:"duplicates"`
	Invalid        int `json:"invalid"`
	NotCECApproved int `json:"not_cec_approved"`
}

func Summarize(results []SerialResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Valid() {
			s.Valid++
		}
		if r.AlreadyClaimed {
			s.Duplicates++
		}
		if !r.ExistsInRegistry {
			s.Invalid++
		}
		if !r.CECApproved {
			s.NotCECApproved++
		}
	}
	return s
}

// Verifier checks a batch of panel serial numbers with the registry.
type Verifier interface {
	Verify(ctx context.Context, serials []string) ([]SerialResult, error)
}

// Client is the HTTP verifier for a real registry endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Verify(ctx context.Context, serials []string) ([]SerialResult, error) {
	if len(serials) == 0 {
		return nil, fmt.Errorf("serial numbers are required")
	}

	body, err := json.Marshal(map[string][]string{"serial_numbers": serials})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/serials/verify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []SerialResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode registry response: %w", err)
	}
	return payload.Results, nil
}
