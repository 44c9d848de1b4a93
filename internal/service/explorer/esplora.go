// Package explorer talks to the mempool.space (Esplora) REST API of each network.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"mempush/pkg/cache"
	"mempush/pkg/logger"
	"mempush/pkg/monitor"
	"mempush/pkg/network"
)

// ErrNotFound 浏览器不认识该交易 (既不在 mempool 也不在链上)
var ErrNotFound = errors.New("transaction not found")

// TxStatus 交易在链上的状态
type TxStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight int64  `json:"block_height"`
	BlockHash   string `json:"block_hash"`
}

// BroadcastResult 广播结果; Response 为 API 原样返回的文本 (成功时是 txid, 失败时是节点错误信息)
type BroadcastResult struct {
	Accepted   bool
	StatusCode int
	Response   string
}

// Explorer 抽象区块浏览器，便于测试替换
type Explorer interface {
	Status(ctx context.Context, net network.Network, txid string) (*TxStatus, error)
	RawTx(ctx context.Context, net network.Network, txid string) (string, error)
	Broadcast(ctx context.Context, net network.Network, rawTx string) (*BroadcastResult, error)
}

type Option func(*Esplora)

// WithBaseURL 覆盖某个网络的 API 地址 (自建 mempool / esplora 实例)
func WithBaseURL(net network.Network, baseURL string) Option {
	return func(e *Esplora) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		e.baseURLs[net] = baseURL
	}
}

// WithCache 缓存交易 hex; 同一个 txid 的 hex 不会变化
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(e *Esplora) {
		e.cache = c
		e.cacheTTL = ttl
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(e *Esplora) {
		e.http = hc
	}
}

type Esplora struct {
	http     *http.Client
	baseURLs map[network.Network]string
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewEsplora(timeout time.Duration, opts ...Option) *Esplora {
	e := &Esplora{
		http:     &http.Client{Timeout: timeout},
		baseURLs: make(map[network.Network]string),
	}
	for _, n := range network.All {
		e.baseURLs[n] = n.MempoolURL()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Esplora) apiURL(net network.Network, path string) (string, error) {
	base, ok := e.baseURLs[net]
	if !ok {
		return "", fmt.Errorf("no explorer configured for network %q", net)
	}
	return base + "api/" + path, nil
}

// Status GET /api/tx/:txid
func (e *Esplora) Status(ctx context.Context, net network.Network, txid string) (*TxStatus, error) {
	code, body, err := e.request(ctx, net, "status", http.MethodGet, "tx/"+txid, "")
	if err != nil {
		return nil, err
	}
	switch code {
	case http.StatusOK:
		var resp struct {
			Status TxStatus `json:"status"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode tx status: %w", err)
		}
		return &resp.Status, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("explorer returned status %d: %s", code, strings.TrimSpace(string(body)))
	}
}

// RawTx GET /api/tx/:txid/hex
func (e *Esplora) RawTx(ctx context.Context, net network.Network, txid string) (string, error) {
	key := "rawtx:" + string(net) + ":" + txid
	if e.cache != nil {
		var hex string
		if err := e.cache.Get(ctx, key, &hex); err == nil {
			return hex, nil
		}
	}

	code, body, err := e.request(ctx, net, "hex", http.MethodGet, "tx/"+txid+"/hex", "")
	if err != nil {
		return "", err
	}
	if code != http.StatusOK {
		return "", ErrNotFound
	}

	hex := strings.TrimSpace(string(body))
	if e.cache != nil {
		if err := e.cache.Set(ctx, key, hex, e.cacheTTL); err != nil {
			logger.Warn("cache raw tx failed", zap.String("txid", txid), zap.Error(err))
		}
	}
	return hex, nil
}

// Broadcast POST /api/tx (text/plain body)
func (e *Esplora) Broadcast(ctx context.Context, net network.Network, rawTx string) (*BroadcastResult, error) {
	code, body, err := e.request(ctx, net, "broadcast", http.MethodPost, "tx", rawTx)
	if err != nil {
		return nil, err
	}
	return &BroadcastResult{
		Accepted:   code == http.StatusOK,
		StatusCode: code,
		Response:   string(body),
	}, nil
}

func (e *Esplora) request(ctx context.Context, net network.Network, endpoint, method, path, body string) (int, []byte, error) {
	u, err := e.apiURL(net, path)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != "" {
		req.Header.Set("Content-Type", "text/plain")
	}

	resp, err := e.http.Do(req)
	if err != nil {
		monitor.Business.ExplorerRequestsTotal.WithLabelValues(string(net), endpoint, "error").Inc()
		return 0, nil, fmt.Errorf("explorer %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		monitor.Business.ExplorerRequestsTotal.WithLabelValues(string(net), endpoint, "error").Inc()
		return 0, nil, fmt.Errorf("read explorer response: %w", err)
	}

	monitor.Business.ExplorerRequestsTotal.WithLabelValues(string(net), endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()
	return resp.StatusCode, data, nil
}
