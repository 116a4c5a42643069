package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrMalformed reports a 2xx response whose body is missing the expected
// envelope (ok flag false, or no data where data is required).
var ErrMalformed = errors.New("api: malformed response envelope")

// Client talks to the AixDB backend over HTTP JSON.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	OK   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

// QueryRecords fetches one page of conversation records.
func (c *Client) QueryRecords(ctx context.Context, page, pageSize int) (QueryResult, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	env, err := c.get(ctx, "/api/chat/records?"+q.Encode())
	if err != nil {
		return QueryResult{}, err
	}
	if !env.OK || len(env.Data) == 0 {
		return QueryResult{}, ErrMalformed
	}
	var out QueryResult
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return QueryResult{}, fmt.Errorf("parse records: %w", ErrMalformed)
	}
	return out, nil
}

// DeleteRecords bulk-deletes the given conversations.
func (c *Client) DeleteRecords(ctx context.Context, ids []string) error {
	body := map[string]any{"chat_ids": ids}
	env, err := c.post(ctx, "/api/chat/records/delete", body)
	if err != nil {
		return err
	}
	if !env.OK {
		return ErrMalformed
	}
	return nil
}

// Ask submits a composed question and returns the answer text.
func (c *Client) Ask(ctx context.Context, req AskRequest) (string, error) {
	env, err := c.post(ctx, "/api/chat/ask", req)
	if err != nil {
		return "", err
	}
	if !env.OK || len(env.Data) == 0 {
		return "", ErrMalformed
	}
	var out struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return "", fmt.Errorf("parse answer: %w", ErrMalformed)
	}
	return out.Answer, nil
}

func (c *Client) get(ctx context.Context, path string) (envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body any) (envelope, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return envelope{}, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) (envelope, error) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return envelope{}, fmt.Errorf("%s: status %d: %s", req.URL.Path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, fmt.Errorf("%s: %w", req.URL.Path, ErrMalformed)
	}
	return env, nil
}
