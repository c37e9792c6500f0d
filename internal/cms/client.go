// Package cms is the read-only client for the hosted content backend.
// It translates the site's fixed set of read patterns into queries
// against the backend's HTTP query API and decodes each content kind
// into its typed shape at this boundary, so nothing downstream handles
// untyped payloads.
//
// Failure contract: any transport, status or decode error is logged
// here and returned alongside the operation's empty default (nil
// pointer, empty slice). Callers treat an error as "render the empty
// state"; nothing in this package panics.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	applog "tenpak/internal/log"
)

const apiVersion = "v2024-01-01"

// Client issues queries against one project/dataset pair.
type Client struct {
	project string
	dataset string
	base    string
	cdn     string
	http    *http.Client
}

// New builds a client for the given project and dataset. baseURL is
// normally empty and derived from the project id; tests and self-hosted
// backends pass an explicit override, which also hosts the asset CDN.
func New(projectID, dataset, baseURL string) *Client {
	c := &Client{
		project: projectID,
		dataset: dataset,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	if baseURL == "" {
		c.base = fmt.Sprintf("https://%s.api.sanity.io", projectID)
		c.cdn = "https://cdn.sanity.io"
	} else {
		c.base = strings.TrimRight(baseURL, "/")
		c.cdn = c.base + "/cdn"
	}
	return c
}

// CDNBase is the asset host prefix; download redirects allow-list
// against it.
func (c *Client) CDNBase() string {
	return c.cdn
}

// fetch runs one query with optional parameters and decodes the result
// envelope into out. Parameters are JSON-encoded the way the backend
// expects ($name=value).
func (c *Client) fetch(ctx context.Context, query string, params map[string]any, out any) error {
	endpoint := fmt.Sprintf("%s/%s/data/query/%s", c.base, apiVersion, url.PathEscape(c.dataset))
	q := url.Values{}
	q.Set("query", query)
	for k, v := range params {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("cms: encode param %s: %w", k, err)
		}
		q.Set("$"+k, string(b))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cms: query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cms: query status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("cms: decode envelope: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil // absent single document; slices keep their empty default
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("cms: decode result: %w", err)
	}
	return nil
}

// query wraps fetch with the boundary logging the failure contract
// requires; every public operation goes through it.
func (c *Client) query(ctx context.Context, op, q string, params map[string]any, out any) error {
	if err := c.fetch(ctx, q, params, out); err != nil {
		applog.Error(nil, "cms."+op+".fail", err, nil)
		return err
	}
	return nil
}
