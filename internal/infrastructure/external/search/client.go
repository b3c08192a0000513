// Package search talks to the hosted search-and-answer index that serves the
// published meeting documents.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/johnquangdev/meeting-intelligence/errors"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
)

// Client is a minimal client for the index sync and ask endpoints
type Client struct {
	baseURL   string
	accountID string
	indexID   string
	token     string
	client    *http.Client
	logger    *zap.Logger
}

// NewClient creates a search index client
func NewClient(cfg *config.SearchConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accountID: cfg.AccountID,
		indexID:   cfg.IndexID,
		token:     cfg.APIToken,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Errors  []apiError      `json:"errors"`
}

type askRequest struct {
	Query string `json:"query"`
}

type askResult struct {
	Response string `json:"response"`
}

// Sync asks the index to re-ingest the document bucket
func (c *Client) Sync(ctx context.Context) error {
	if err := c.configured(); err != nil {
		return err
	}
	if _, err := c.post(ctx, "sync", nil); err != nil {
		return appErrors.ErrSearchFailed("sync", err)
	}
	if c.logger != nil {
		c.logger.Info("🔄 Search index sync requested", zap.String("index_id", c.indexID))
	}
	return nil
}

// Ask sends a question to the index and returns the generated answer
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	if err := c.configured(); err != nil {
		return "", err
	}
	raw, err := c.post(ctx, "ask", askRequest{Query: query})
	if err != nil {
		return "", appErrors.ErrSearchFailed("ask", err)
	}

	var res askResult
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &res); err != nil {
			return "", appErrors.ErrSearchFailed("ask", fmt.Errorf("decode result: %w", err))
		}
	}
	if strings.TrimSpace(res.Response) == "" {
		return "", appErrors.ErrSearchFailed("ask", fmt.Errorf("empty answer"))
	}
	return res.Response, nil
}

func (c *Client) configured() error {
	switch {
	case c.accountID == "":
		return appErrors.ErrConfigMissing("SEARCH_ACCOUNT_ID")
	case c.indexID == "":
		return appErrors.ErrConfigMissing("SEARCH_INDEX_ID")
	case c.token == "":
		return appErrors.ErrConfigMissing("SEARCH_API_TOKEN")
	}
	return nil
}

func (c *Client) post(ctx context.Context, action string, payload interface{}) (json.RawMessage, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/indexes/%s/%s", c.baseURL, c.accountID, c.indexID, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if !env.Success {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("search request unsuccessful: %s", strings.Join(msgs, "; "))
	}
	return env.Result, nil
}
