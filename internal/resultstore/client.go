// Package resultstore is the HTTP client for the external analysis
// result store. It keeps the frozen detected-points snapshot, the
// findings, and the computed score per document hash. The store is the
// only persistence layer; overviews are rebuilt from it on demand.
package resultstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dnordby/reportscan/internal/points"
	"github.com/dnordby/reportscan/internal/score"
)

// ErrNoSnapshot is returned when no detected-points snapshot exists
// for a document hash.
var ErrNoSnapshot = errors.New("resultstore: no snapshot for document")

// Client communicates with the result store HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Snapshot is the frozen detection result for one document hash. Once
// written it is never regenerated for the same hash.
type Snapshot struct {
	DocHash   string                 `json:"doc_hash"`
	Title     string                 `json:"title,omitempty"`
	Points    []points.DetectedPoint `json:"points"`
	CreatedAt time.Time              `json:"created_at"`
}

// PutSnapshot stores the frozen detected-points snapshot.
func (c *Client) PutSnapshot(ctx context.Context, snap Snapshot) error {
	return c.put(ctx, "/documents/"+snap.DocHash+"/snapshot", snap)
}

// GetSnapshot fetches the snapshot for a document hash. Returns
// ErrNoSnapshot when the document has never been analyzed.
func (c *Client) GetSnapshot(ctx context.Context, docHash string) (*Snapshot, error) {
	var snap Snapshot
	found, err := c.get(ctx, "/documents/"+docHash+"/snapshot", &snap)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoSnapshot
	}
	return &snap, nil
}

// PutFindings stores the findings produced for a document hash.
func (c *Client) PutFindings(ctx context.Context, docHash string, findings []points.Finding) error {
	return c.put(ctx, "/documents/"+docHash+"/findings", findings)
}

// GetFindings fetches findings for a document hash. A document with a
// snapshot but no stored findings yields an empty slice.
func (c *Client) GetFindings(ctx context.Context, docHash string) ([]points.Finding, error) {
	var findings []points.Finding
	found, err := c.get(ctx, "/documents/"+docHash+"/findings", &findings)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return findings, nil
}

// PutScore stores the computed safety score.
func (c *Client) PutScore(ctx context.Context, docHash string, result score.Result) error {
	return c.put(ctx, "/documents/"+docHash+"/score", result)
}

// GetScore fetches the stored score. Returns (nil, nil) when no score
// has been computed yet.
func (c *Client) GetScore(ctx context.Context, docHash string) (*score.Result, error) {
	var result score.Result
	found, err := c.get(ctx, "/documents/"+docHash+"/score", &result)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}

// Delete removes all stored results for a document hash.
func (c *Client) Delete(ctx context.Context, docHash string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/documents/"+docHash, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("delete document %s: status %d: %s", docHash, resp.StatusCode, string(respBody))
	}
	return nil
}

func (c *Client) put(ctx context.Context, path string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	return nil
}

// get decodes into v and reports whether the resource existed.
func (c *Client) get(ctx context.Context, path string, v any) (bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("get %s: status %d: %s", path, resp.StatusCode, string(respBody))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
