// Package txclient talks to the network-scoped transaction API:
// submit raw transactions, push stored ones to the mempool and delete them.
package txclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mempush/pkg/network"
)

const (
	StatusSuccess   = "success"
	StatusConfirmed = "confirmed"
	StatusPending   = "pending"
)

// Config 客户端配置
// Network 为空时使用单网络路由: /transaction/... (没有网络前缀)
type Config struct {
	BaseURL    string
	Network    network.Network
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	prefix  string
	net     network.Network
	http    *http.Client
}

// Transaction mirrors the server's stored record.
type Transaction struct {
	ID             uint64    `json:"id"`
	Network        string    `json:"network"`
	TxID           string    `json:"txid"`
	RawTx          string    `json:"raw_tx"`
	Status         string    `json:"status"`
	PushAttempts   int       `json:"push_attempts"`
	AnalysisResult string    `json:"analysis_result"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SubmitResult struct {
	TxID string `json:"txid"`
}

type PushResult struct {
	Status         string `json:"status"`
	PushAttempts   int    `json:"push_attempts"`
	AnalysisResult string `json:"analysis_result"`
	Error          string `json:"error"`
}

// raw_tx is always sent, even when empty.
type submitRequest struct {
	RawTx string `json:"raw_tx"`
}

type submitTxIDRequest struct {
	TxID string `json:"txid"`
}

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

type errorBody struct {
	Error          string `json:"error"`
	AnalysisResult string `json:"analysis_result"`
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if cfg.Network != "" && !network.IsValid(string(cfg.Network)) {
		return nil, fmt.Errorf("invalid network: %s", cfg.Network)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	c := &Client{baseURL: base, net: cfg.Network, http: hc}
	if cfg.Network != "" {
		c.prefix = "/" + string(cfg.Network)
	}
	return c, nil
}

// Network returns the configured network, empty for the single-network variant.
func (c *Client) Network() network.Network {
	return c.net
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// DetailPath is the page a browser is sent to after a successful submit.
func (c *Client) DetailPath(txid string) string {
	return c.prefix + "/transaction/" + url.PathEscape(txid)
}

func (c *Client) txPath(txid, action string) string {
	return c.DetailPath(txid) + "/" + action
}

// Submit forwards rawTx unchanged; the server is the only validator.
func (c *Client) Submit(ctx context.Context, rawTx string) (*SubmitResult, error) {
	return c.submit(ctx, submitRequest{RawTx: rawTx})
}

// SubmitTxID asks the server to fetch the raw hex for txid from the explorer.
func (c *Client) SubmitTxID(ctx context.Context, txid string) (*SubmitResult, error) {
	return c.submit(ctx, submitTxIDRequest{TxID: txid})
}

func (c *Client) submit(ctx context.Context, body interface{}) (*SubmitResult, error) {
	var res SubmitResult
	if err := c.do(ctx, "submit", c.prefix+"/transaction/submit", body, &res); err != nil {
		return nil, err
	}
	if res.TxID == "" {
		return nil, &DecodeError{StatusCode: http.StatusOK, Err: errors.New("response carries no txid")}
	}
	return &res, nil
}

// Push asks the server to broadcast a stored transaction. Any status other
// than success or confirmed comes back as a *StatusError together with the
// decoded result.
func (c *Client) Push(ctx context.Context, txid string) (*PushResult, error) {
	var res PushResult
	if err := c.do(ctx, "push", c.txPath(txid, "push"), nil, &res); err != nil {
		return nil, err
	}
	if res.Status == StatusSuccess || res.Status == StatusConfirmed {
		return &res, nil
	}
	return &res, &StatusError{Status: res.Status, Message: firstNonEmpty(res.Error, res.AnalysisResult, "Unknown error")}
}

func (c *Client) Delete(ctx context.Context, txid string) error {
	var res statusResponse
	if err := c.do(ctx, "delete", c.txPath(txid, "delete"), nil, &res); err != nil {
		return err
	}
	if res.Status != StatusSuccess {
		return &StatusError{Status: res.Status, Message: firstNonEmpty(res.Error, "Unknown error")}
	}
	return nil
}

func (c *Client) Get(ctx context.Context, txid string) (*Transaction, error) {
	var tx Transaction
	if err := c.doMethod(ctx, http.MethodGet, "get", c.DetailPath(txid), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) List(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	if err := c.doMethod(ctx, http.MethodGet, "list", c.prefix+"/transactions", nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *Client) do(ctx context.Context, op, path string, body, out interface{}) error {
	return c.doMethod(ctx, http.MethodPost, op, path, body, out)
}

func (c *Client) doMethod(ctx context.Context, method, op, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func newHTTPError(status int, data []byte) *HTTPError {
	fallback := fmt.Sprintf("HTTP error! status: %d", status)
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return &HTTPError{StatusCode: status, Message: fallback}
	}
	return &HTTPError{StatusCode: status, Message: firstNonEmpty(body.Error, body.AnalysisResult, fallback)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsStatusError reports whether err is an application-level failure.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
