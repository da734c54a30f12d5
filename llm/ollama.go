// Package llm talks to a local Ollama-compatible inference backend over its
// blocking generate endpoint. One request type covers both roles the agent
// needs: vision calls attach an encoded image, reasoning calls do not.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultEndpoint is used when the constructor receives an empty endpoint.
const DefaultEndpoint = "http://localhost:11434"

// DefaultTimeout caps a request whose caller did not set one.
const DefaultTimeout = 120 * time.Second

const generatePath = "/api/generate"

// Client is a synchronous client to one inference backend. The endpoint is
// fixed at construction so independent agents can point at different
// backends without sharing process state.
type Client struct {
	Endpoint string

	client *http.Client
	logger *zap.Logger
}

// GenerateRequest describes one blocking completion call.
type GenerateRequest struct {
	Model   string
	Prompt  string
	Images  []string // base64 encoded, usually zero or one
	Timeout time.Duration
}

// Result carries the backend's text alongside a distinguishable failure
// channel. An empty Text with a zero Err is a legitimate empty completion,
// not an error.
type Result struct {
	Text string
	Err  string
}

// Failed reports whether the request itself failed (transport, timeout,
// non-2xx status, or undecodable body).
func (r Result) Failed() bool { return r.Err != "" }

// Sentinel renders the result as forward-propagating text: the response on
// success, or an "Error: …" string on failure. The agent loop feeds this
// text downstream instead of halting.
func (r Result) Sentinel() string {
	if r.Failed() {
		return "Error: " + r.Err
	}
	return r.Text
}

type generatePayload struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Stream bool     `json:"stream"`
	Images []string `json:"images,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// NewClient builds a client for the given endpoint. An empty endpoint falls
// back to the local Ollama default.
func NewClient(endpoint string, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		Endpoint: endpoint,
		client:   &http.Client{},
		logger:   logger,
	}
}

// Generate posts one completion request and blocks until the backend answers
// or the timeout expires. All failures are absorbed into the Result; the
// method never panics and never returns partial state.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) Result {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(generatePayload{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
		Images: req.Images,
	})
	if err != nil {
		return Result{Err: fmt.Sprintf("encode request: %v", err)}
	}
	c.logger.Debug("generate request",
		zap.String("model", req.Model),
		zap.Int("prompt_len", len(req.Prompt)),
		zap.Int("images", len(req.Images)),
		zap.Duration("timeout", timeout))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+generatePath, bytes.NewReader(body))
	if err != nil {
		return Result{Err: fmt.Sprintf("build request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return Result{Err: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		detail := strings.TrimSpace(string(msg))
		if detail != "" {
			return Result{Err: fmt.Sprintf("backend error: %s: %s", resp.Status, truncate(detail, 512))}
		}
		return Result{Err: fmt.Sprintf("backend error: %s", resp.Status)}
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{Err: fmt.Sprintf("decode response: %v", err)}
	}
	c.logger.Debug("generate response", zap.String("model", req.Model), zap.Int("response_len", len(decoded.Response)))
	return Result{Text: decoded.Response}
}

func (c *Client) httpClient() *http.Client {
	if c.client != nil {
		return c.client
	}
	c.client = &http.Client{}
	return c.client
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
