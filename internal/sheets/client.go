package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const DefaultBaseURL = "https://sheets.googleapis.com/v4"

type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client reads cell ranges through the Sheets v4 values API using an API key.
// It never writes; an API key only grants read access.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, apiKey: cfg.APIKey, httpClient: httpClient}
}

// HasAPIKey reports whether an API key was supplied.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

type valuesResponse struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

// Values returns the raw rows of cellRange. A range with no data yields an
// empty result, not an error.
func (c *Client) Values(ctx context.Context, sheetID, cellRange string) ([][]any, error) {
	if c.apiKey == "" || sheetID == "" {
		return nil, ErrNotConfigured
	}

	body, err := c.get(ctx, c.valuesURL(sheetID, cellRange))
	if err != nil {
		return nil, err
	}

	var resp valuesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if resp.Values == nil {
		return [][]any{}, nil
	}
	return resp.Values, nil
}

// Probe checks that the spreadsheet is reachable and that headerRange has a row.
func (c *Client) Probe(ctx context.Context, sheetID, headerRange string) error {
	if c.apiKey == "" || sheetID == "" {
		return ErrNotConfigured
	}

	if _, err := c.get(ctx, c.spreadsheetURL(sheetID)); err != nil {
		return err
	}

	rows, err := c.Values(ctx, sheetID, headerRange)
	if err != nil {
		return err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return fmt.Errorf("%w in %s", ErrMissingHeaders, headerRange)
	}
	return nil
}

func (c *Client) spreadsheetURL(sheetID string) string {
	return c.baseURL + "/spreadsheets/" + url.PathEscape(sheetID) + "?key=" + url.QueryEscape(c.apiKey)
}

func (c *Client) valuesURL(sheetID, cellRange string) string {
	return c.baseURL + "/spreadsheets/" + url.PathEscape(sheetID) +
		"/values/" + url.PathEscape(cellRange) + "?key=" + url.QueryEscape(c.apiKey)
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrRequestFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// *url.Error carries the request URL, which includes the API key
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &RequestError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrRequestFailed, err)
	}
	return body, nil
}
